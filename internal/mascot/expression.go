package mascot

// Expression is the mascot's emotional cue, independent of its physical
// state. The renderer maps it to a face; the controller decides when it
// changes.
type Expression string

const (
	ExpressionIdle      Expression = "idle"
	ExpressionSurprised Expression = "surprised" // picked up
	ExpressionHappy     Expression = "happy"     // thrown
	ExpressionDizzy     Expression = "dizzy"     // hit a wall
	ExpressionLove      Expression = "love"      // petted
	ExpressionSleeping  Expression = "sleeping"  // resting for a long while
)

// Expressions lists every cue, for renderers and config validation.
func Expressions() []Expression {
	return []Expression{
		ExpressionIdle,
		ExpressionSurprised,
		ExpressionHappy,
		ExpressionDizzy,
		ExpressionLove,
		ExpressionSleeping,
	}
}
