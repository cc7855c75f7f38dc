// Package tui is the interactive playground: it feeds mouse drags into the
// mascot controller, pumps its frame scheduler, and draws the published
// state every tick.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/san-kum/mochi/internal/config"
	"github.com/san-kum/mochi/internal/mascot"
	"github.com/san-kum/mochi/internal/phys"
	"github.com/san-kum/mochi/internal/session"
	"github.com/san-kum/mochi/internal/stats"
)

const (
	headerRows = 2
	footerRows = 3
	sideMargin = 1
)

// Options carries the playground's optional collaborators.
type Options struct {
	Recorder *session.Recorder
	Watcher  *config.Watcher
	Logger   *zap.Logger
}

type model struct {
	ctrl    *mascot.Controller
	sched   *mascot.ManualScheduler
	engine  *phys.Engine
	metrics *stats.Set
	rec     *session.Recorder
	watcher *config.Watcher
	log     *zap.Logger

	frame     time.Duration
	theme     Theme
	trail     *Trail
	showTrail bool
	width     int
	height    int
	ready     bool
}

type tickMsg time.Time

func newModel(cfg *config.Config, opts Options) model {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := phys.NewEngine()
	engine.UpdateConfig(cfg.Physics)

	sched := mascot.NewManualScheduler()
	frame := time.Second / time.Duration(cfg.Playground.FPS)

	m := model{
		sched:     sched,
		engine:    engine,
		metrics:   stats.NewSet(),
		rec:       opts.Recorder,
		watcher:   opts.Watcher,
		log:       log,
		frame:     frame,
		theme:     GetTheme(cfg.Playground.Theme),
		trail:     NewTrail(),
		showTrail: cfg.Playground.Trail,
	}

	m.ctrl = mascot.New(engine, mascot.Config{
		Size:       phys.Size{Width: SpriteWidth, Height: 1},
		StartX:     20,
		StartY:     5,
		ThrowMin:   cfg.Interaction.ThrowMin,
		PetDelay:   time.Duration(cfg.Interaction.PetDelay * float64(time.Second)),
		SleepAfter: time.Duration(cfg.Interaction.SleepAfter * float64(time.Second)),
		Tick:       frame,
		Scheduler:  sched,
		Logger:     log,
		OnThrow: func(vx, vy float64) {
			if m.rec != nil {
				m.rec.RecordThrow(vx, vy)
			}
		},
		OnBounce: func() {
			if m.rec != nil {
				m.rec.RecordBounce()
			}
		},
	})
	m.ctrl.AddObserver(m.metrics)

	return m
}

func (m model) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Init() tea.Cmd {
	return m.tick()
}

func (m model) field() phys.Bounds {
	return phys.Bounds{
		Left:   sideMargin,
		Top:    headerRows,
		Width:  float64(m.width - 2*sideMargin),
		Height: float64(m.height - headerRows - footerRows),
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = m.width > 20 && m.height > 10
		if m.ready {
			m.ctrl.SetBounds(m.field())
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.ctrl.Close()
			return m, tea.Quit
		case "t":
			m.ctrl.Toss()
		case "p":
			m.ctrl.Pet()
			if m.rec != nil {
				m.rec.RecordPet()
			}
		case "r":
			m.ctrl.Reset()
			m.metrics.Reset()
			m.trail.Clear()
		case "g":
			m.showTrail = !m.showTrail
		}
		return m, nil

	case tea.MouseMsg:
		switch msg.Action {
		case tea.MouseActionPress:
			if msg.Button == tea.MouseButtonLeft {
				m.ctrl.DragStart(float64(msg.X), float64(msg.Y))
			}
		case tea.MouseActionMotion:
			m.ctrl.DragMove(float64(msg.X), float64(msg.Y))
		case tea.MouseActionRelease:
			m.ctrl.DragEnd()
		}
		return m, nil

	case tickMsg:
		m.sched.Step()
		m.sched.Advance(m.frame)

		st := m.ctrl.State()
		f := m.field()
		m.trail.Add(st.X-f.Left, st.Y-f.Top)
		if m.rec != nil {
			m.rec.RecordFrame(st)
		}
		if m.watcher != nil {
			select {
			case cfg := <-m.watcher.Configs:
				m.ctrl.UpdatePhysics(cfg.Physics)
			default:
			}
		}
		return m, m.tick()
	}

	return m, nil
}

func (m model) View() string {
	if !m.ready {
		return "\n  terminal too small"
	}

	st := m.ctrl.State()
	f := m.field()
	fw, fh := int(f.Width), int(f.Height)

	rows := make([][]rune, fh)
	for i := range rows {
		rows[i] = make([]rune, fw)
		for j := range rows[i] {
			rows[i][j] = ' '
		}
	}

	var trailGrid [][]rune
	if m.showTrail {
		trailGrid = m.trail.Render(fw, fh)
		for y, row := range trailGrid {
			for x, r := range row {
				if r != 0 {
					rows[y][x] = r
				}
			}
		}
	}

	// Overlay the face.
	face := []rune(Face(st.Expression))
	fx := int(st.X-f.Left) - len(face)/2
	fy := int(st.Y - f.Top)
	if fy >= 0 && fy < fh {
		for i, r := range face {
			if col := fx + i; col >= 0 && col < fw {
				rows[fy][col] = r
			}
		}
	}

	var b strings.Builder

	status := string(st.Expression)
	if st.Dragging {
		status = "held"
	} else if st.Animating {
		status = "flying · " + status
	}
	b.WriteString(" " + m.theme.Accent.Render("m o c h i") + "  " +
		m.theme.Dim.Render(status) + "\n")
	b.WriteString(" " + m.theme.Dimmer.Render(strings.Repeat("─", fw)) + "\n")

	mascotStyle := m.theme.Mascot[st.Expression]
	for y, row := range rows {
		line := string(row)
		// Style the face row separately so the trail stays dim.
		if y == fy && fx < fw && fx+len(face) > 0 {
			start := clamp(fx, 0, fw)
			end := clamp(fx+len(face), 0, fw)
			line = m.theme.TrailFg.Render(string(row[:start])) +
				mascotStyle.Render(string(row[start:end])) +
				m.theme.TrailFg.Render(string(row[end:]))
		} else {
			line = m.theme.TrailFg.Render(line)
		}
		b.WriteString(" " + line + "\n")
	}

	b.WriteString(" " + m.theme.Dimmer.Render(strings.Repeat("─", fw)) + "\n")

	vals := m.metrics.Values()
	body := m.ctrl.Body()
	b.WriteString(" " + m.theme.Dim.Render(fmt.Sprintf(
		"x %.1f  y %.1f  θ %.2f  v %.1f   bounces %.0f  dist %.0f  peak %.1f",
		st.X, st.Y, st.Angle, body.Speed(),
		vals["bounces"], vals["distance"], vals["peak_speed"])) + "\n")
	b.WriteString(" " + m.theme.Dimmer.Render(
		"drag mascot with mouse   t toss   p pet   r reset   g trail   q quit"))

	return b.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Run starts the playground and blocks until the user quits.
func Run(cfg *config.Config, opts Options) error {
	m := newModel(cfg, opts)
	defer m.ctrl.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
