package main

import (
	"flag"
	"log/slog"
	"os"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orrery/config"
	"github.com/pthm-cable/orrery/game"
	"github.com/pthm-cable/orrery/renderer"
	"github.com/pthm-cable/orrery/scenario"
	"github.com/pthm-cable/orrery/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	scenarioPath := flag.String("scenario", "", "Path to a scenario YAML/JSON file")
	mode := flag.String("mode", "solar_system", "Built-in scenario type when -scenario is empty")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	verbose := flag.Bool("v", false, "Debug logging")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	setup := &scenario.Setup{ScenarioType: strings.ToLower(*mode)}
	if *scenarioPath != "" {
		s, err := scenario.Load(*scenarioPath)
		if err != nil {
			slog.Error("failed to load scenario", "error", err)
			os.Exit(1)
		}
		setup = s
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		Config:         cfg,
		Setup:          setup,
	}

	if *headless {
		runHeadless(opts, *maxTicks)
		return
	}
	runWindow(opts, cfg, *maxTicks)
}

// runHeadless steps the simulation at the fixed step with no raylib calls.
func runHeadless(opts game.Options, maxTicks int) {
	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"mode", g.Mode().String(),
		"max_ticks", maxTicks,
	)

	for {
		g.UpdateHeadless()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick(), "bodies", g.BodyCount())
			return
		}
	}
}

func runWindow(opts game.Options, cfg *config.Config, maxTicks int) {
	sw, sh := int32(cfg.Screen.Width), int32(cfg.Screen.Height)
	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(sw, sh, "Orrery")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	stars := renderer.NewBackgroundRenderer(1500, opts.Seed)
	bodyRenderer := renderer.NewBodyRenderer()
	particles := renderer.NewParticleRenderer()

	hud := ui.NewHUD()
	overlays := ui.NewOverlayRegistry()
	panel := ui.NewControlsPanel(10, 10, 200)
	inspector := ui.NewInspector()
	perf := ui.NewPerfPanel(sw-280, sh-260)

	panelBottom := int32(10)
	for !rl.WindowShouldClose() {
		overPanel := panel.Contains(rl.GetMousePosition(), panelBottom)
		act := ui.PollInput(g.Controls(), overlays, overPanel)

		cam := renderer.Camera(g.Camera())
		bodies := g.Bodies()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)

		rl.BeginMode3D(cam)
		if overlays.IsEnabled(ui.OverlayStars) {
			stars.Draw(cam)
		}
		bodyRenderer.Draw(bodies, g.Ambient())
		if overlays.IsEnabled(ui.OverlayEffects) {
			particles.Draw(g.Effects())
		}
		rl.EndMode3D()

		st := g.Status()
		if overlays.IsEnabled(ui.OverlayLabels) {
			hud.DrawLabels(cam, bodies)
		}
		hud.Draw(ui.HUDData{Title: "Orrery", Status: st, FPS: rl.GetFPS(), ScreenWidth: sw, ScreenHeight: sh})
		hud.DrawBanner(sw, st.Banner)
		hud.DrawControls(sw, sh, g.Controls())

		y := panel.Draw(overlays)
		clicked, bottom := panel.DrawButtons(y, st, g.Controls())
		panelBottom = bottom
		act.Merge(clicked)

		if overlays.IsEnabled(ui.OverlayInspector) && st.Following != "" {
			for i := range bodies {
				if strings.EqualFold(bodies[i].Name, st.Following) {
					inspector.Draw(&bodies[i], sw, sh)
					break
				}
			}
		}
		if overlays.IsEnabled(ui.OverlayPerf) {
			perf.Draw(g.PerfStats())
		}
		if overlays.IsEnabled(ui.OverlayHelp) {
			hud.DrawHelp(sw-290, sh-200, overlays)
		}
		rl.EndDrawing()

		if act.TogglePanel {
			panel.Toggle()
		}
		apply(g, act, cam, bodies)
		g.Update(float64(rl.GetFrameTime()))

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			break
		}
	}
}

// apply turns one frame of user intent into game and camera calls.
func apply(g *game.Game, act ui.Actions, cam rl.Camera3D, bodies []game.BodyView) {
	if act.Control != "" {
		g.RunControl(act.Control)
	}
	if act.Next {
		g.NextStep()
	}
	if act.Restart {
		g.Restart()
	}
	if act.TogglePause {
		g.SetPaused(!g.Paused())
	}
	rig := g.Camera()
	if act.Home {
		g.SetFollow("")
		rig.Reset()
	}
	if act.CycleFollow {
		g.SetFollow(nextFollow(bodies, g.Following()))
	}
	if act.Pick {
		if name := renderer.Pick(cam, act.PickAt, bodies); name != "" {
			g.SetFollow(name)
		}
	}
	if act.Yaw != 0 || act.Pitch != 0 {
		rig.Orbit(act.Yaw, act.Pitch)
	}
	if act.Dolly != 1 && act.Dolly != 0 {
		rig.Dolly(act.Dolly)
	}
}

// nextFollow returns the body after current in draw order, wrapping to
// "" (free camera) after the last one.
func nextFollow(bodies []game.BodyView, current string) string {
	if len(bodies) == 0 {
		return ""
	}
	if current == "" {
		return bodies[0].Name
	}
	for i := range bodies {
		if strings.EqualFold(bodies[i].Name, current) {
			if i+1 < len(bodies) {
				return bodies[i+1].Name
			}
			return ""
		}
	}
	return bodies[0].Name
}
