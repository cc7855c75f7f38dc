package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/mochi/internal/config"
	"github.com/san-kum/mochi/internal/phys"
	"github.com/san-kum/mochi/internal/session"
	"github.com/san-kum/mochi/internal/stats"
	"github.com/san-kum/mochi/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool

	// play
	record bool
	watch  bool

	// drop
	dropVX    float64
	dropVY    float64
	dropX     float64
	dropY     float64
	arenaW    float64
	arenaH    float64
	trials    int
	seed      int64
	maxTicks  int

	// sessions plot
	svgOut string
)

// main registers the command tree; with no subcommand the playground opens.
func main() {
	rootCmd := &cobra.Command{
		Use:   "mochi",
		Short: "a desktop pet that lives in your terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, args)
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".mochi", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "physics preset")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "interactive playground",
		RunE:  runPlay,
	}
	playCmd.Flags().BoolVar(&record, "record", false, "record the session")
	playCmd.Flags().BoolVar(&watch, "watch", false, "hot-reload the config file on change")

	dropCmd := &cobra.Command{
		Use:   "drop",
		Short: "headless throw simulation",
		RunE:  runDrop,
	}
	dropCmd.Flags().Float64Var(&dropVX, "vx", 0, "initial horizontal velocity")
	dropCmd.Flags().Float64Var(&dropVY, "vy", 0, "initial vertical velocity (negative is up)")
	dropCmd.Flags().Float64Var(&dropX, "x", 40, "initial x")
	dropCmd.Flags().Float64Var(&dropY, "y", 4, "initial y")
	dropCmd.Flags().Float64Var(&arenaW, "width", 80, "arena width")
	dropCmd.Flags().Float64Var(&arenaH, "height", 24, "arena height")
	dropCmd.Flags().IntVar(&trials, "trials", 0, "run N randomized throws instead of one")
	dropCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	dropCmd.Flags().IntVar(&maxTicks, "max-ticks", 5000, "simulation tick limit")

	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "recorded sessions",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded sessions",
		RunE:  listSessions,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [session_id]",
		Short: "plot a recorded trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  plotSession,
	}
	plotCmd.Flags().StringVar(&svgOut, "svg", "", "also write the trajectory as SVG")

	exportCmd := &cobra.Command{
		Use:   "export [session_id]",
		Short: "export a session as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSession,
	}

	sessionsCmd.AddCommand(listCmd, plotCmd, exportCmd)

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "configuration helpers",
	}

	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "mochi.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			cfg, err := resolveConfig()
			if err != nil {
				return err
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}

	configShowCmd := &cobra.Command{
		Use:   "show",
		Short: "print the effective config",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig()
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list physics presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	configCmd.AddCommand(configInitCmd, configShowCmd, presetsCmd)

	rootCmd.AddCommand(playCmd, dropCmd, sessionsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// resolveConfig layers preset and config file over the defaults. An explicit
// config file wins over a preset.
func resolveConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		if preset != "" {
			// Keep the preset physics where the file doesn't override.
			merged := cfg.Physics
			overlayPatch(&merged, loaded.Physics)
			loaded.Physics = merged
		}
		cfg = loaded
	}
	return cfg, nil
}

func overlayPatch(dst *phys.Patch, src phys.Patch) {
	if src.Gravity != nil {
		dst.Gravity = src.Gravity
	}
	if src.Friction != nil {
		dst.Friction = src.Friction
	}
	if src.AngularFriction != nil {
		dst.AngularFriction = src.AngularFriction
	}
	if src.Restitution != nil {
		dst.Restitution = src.Restitution
	}
	if src.MaxSpeed != nil {
		dst.MaxSpeed = src.MaxSpeed
	}
	if src.RestEpsilon != nil {
		dst.RestEpsilon = src.RestEpsilon
	}
	if src.SpinTransfer != nil {
		dst.SpinTransfer = src.SpinTransfer
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	log := newLogger()
	defer log.Sync()

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	opts := tui.Options{Logger: log}

	if watch {
		if configFile == "" {
			return fmt.Errorf("--watch needs --config")
		}
		w, err := config.Watch(configFile, log)
		if err != nil {
			return fmt.Errorf("watch config: %w", err)
		}
		defer w.Close()
		opts.Watcher = w
	}

	var rec *session.Recorder
	if record {
		rec = session.NewRecorder()
		opts.Recorder = rec
	}

	if err := tui.Run(cfg, opts); err != nil {
		return err
	}

	if rec != nil {
		st := session.NewStore(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		_, events := rec.Snapshot()
		summary := map[string]float64{}
		for _, ev := range events {
			summary[ev.Kind+"s"]++
		}
		id, err := st.Save(rec, summary)
		if err != nil {
			return err
		}
		fmt.Printf("session saved: %s\n", id)
	}
	return nil
}

func runDrop(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	if trials > 0 {
		return runTrials(cfg)
	}

	rng := rand.New(rand.NewSource(seed))
	vx, vy := dropVX, dropVY
	if vx == 0 && vy == 0 {
		vx = (rng.Float64()*2 - 1) * 8
		vy = -(4 + rng.Float64()*8)
	}

	heights, result := simulateThrow(cfg, vx, vy)

	graph := asciigraph.Plot(heights,
		asciigraph.Height(12),
		asciigraph.Width(78),
		asciigraph.Caption("height above floor"),
	)
	fmt.Println(graph)
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TICKS\tBOUNCES\tPEAK SPEED\tDISTANCE")
	fmt.Fprintf(w, "%d\t%.0f\t%.1f\t%.0f\n",
		result.ticks, result.vals["bounces"], result.vals["peak_speed"], result.vals["distance"])
	return w.Flush()
}

type throwResult struct {
	ticks int
	vals  map[string]float64
}

// simulateThrow runs the engine to rest and returns the height trace.
func simulateThrow(cfg *config.Config, vx, vy float64) ([]float64, throwResult) {
	engine := phys.NewEngine()
	engine.UpdateConfig(cfg.Physics)

	bounds := phys.Bounds{Left: 0, Top: 0, Width: arenaW, Height: arenaH}
	size := phys.Size{Width: 5, Height: 1}
	body := phys.Body{X: dropX, Y: dropY}
	engine.Throw(&body, vx, vy)

	set := stats.NewSet()
	heights := make([]float64, 0, 256)

	ticks := 0
	for ; ticks < maxTicks; ticks++ {
		bounced := engine.Step(&body, bounds, size)
		set.OnTick(body, bounced)
		heights = append(heights, math.Max(0, bounds.Bottom()-size.Height/2-body.Y))
		if engine.AtRest(body) {
			break
		}
	}

	return heights, throwResult{ticks: ticks, vals: set.Values()}
}

// runTrials throws concurrently with distinct seeds and prints aggregates.
func runTrials(cfg *config.Config) error {
	results := make([]throwResult, trials)

	var wg sync.WaitGroup
	for i := 0; i < trials; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed + int64(idx)))
			vx := (rng.Float64()*2 - 1) * 8
			vy := -(4 + rng.Float64()*8)
			_, results[idx] = simulateThrow(cfg, vx, vy)
		}(i)
	}
	wg.Wait()

	var ticks, bounces, peak, dist float64
	for _, r := range results {
		ticks += float64(r.ticks)
		bounces += r.vals["bounces"]
		peak = math.Max(peak, r.vals["peak_speed"])
		dist += r.vals["distance"]
	}
	n := float64(trials)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRIALS\tAVG TICKS\tAVG BOUNCES\tMAX SPEED\tAVG DISTANCE")
	fmt.Fprintf(w, "%d\t%.0f\t%.1f\t%.1f\t%.0f\n", trials, ticks/n, bounces/n, peak, dist/n)
	return w.Flush()
}

func listSessions(cmd *cobra.Command, args []string) error {
	st := session.NewStore(dataDir)
	sessions, err := st.List()
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("no sessions found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tFRAMES\tEVENTS\tBOUNCES")
	for _, s := range sessions {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.0f\n",
			s.ID,
			s.Timestamp.Format("2006-01-02 15:04:05"),
			s.Frames,
			len(s.Events),
			s.Stats["bounces"],
		)
	}
	return w.Flush()
}

func plotSession(cmd *cobra.Command, args []string) error {
	st := session.NewStore(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no frames to plot")
	}

	fmt.Printf("session: %s\n", meta.ID)
	fmt.Printf("frames: %d  events: %d\n\n", len(frames), len(meta.Events))

	maxY := frames[0].Y
	for _, f := range frames {
		maxY = math.Max(maxY, f.Y)
	}

	heights := make([]float64, len(frames))
	xs := make([]float64, len(frames))
	for i, f := range frames {
		heights[i] = maxY - f.Y
		xs[i] = f.X
	}

	fmt.Println(asciigraph.Plot(heights,
		asciigraph.Height(10),
		asciigraph.Width(78),
		asciigraph.Caption("height"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(xs,
		asciigraph.Height(10),
		asciigraph.Width(78),
		asciigraph.Caption("horizontal position"),
	))

	if svgOut != "" {
		svg := session.TrajectorySVG(frames, 800, 400, "")
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", svgOut)
	}
	return nil
}

func exportSession(cmd *cobra.Command, args []string) error {
	st := session.NewStore(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	return session.ExportJSON(os.Stdout, meta, frames)
}
