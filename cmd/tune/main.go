// Command tune searches impactor launch parameters so that the first
// impact of a scene happens at a chosen time.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/orrery/config"
	"github.com/pthm-cable/orrery/scenario"
)

// EvalRow is one line of the evaluation log.
type EvalRow struct {
	Eval           int     `csv:"eval"`
	Fitness        float64 `csv:"fitness"`
	SpeedScale     float64 `csv:"speed_scale"`
	VerticalOffset float64 `csv:"vertical_offset"`
	Hit            bool    `csv:"hit"`
	ImpactTime     float64 `csv:"impact_seconds"`
	ClosestGap     float64 `csv:"closest_gap"`
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

// newMethod returns the search method named by name.
func newMethod(name string, dim int) (optimize.Method, error) {
	switch name {
	case "cmaes":
		return &optimize.CmaEsChol{
			InitStepSize: 0.3,
			Population:   4 + 3*dim,
		}, nil
	case "neldermead":
		return &optimize.NelderMead{}, nil
	}
	return nil, fmt.Errorf("unknown method %q (want cmaes or neldermead)", name)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	scenarioPath := flag.String("scenario", "", "Scenario file with an impactor and a primary")
	target := flag.Float64("target-seconds", 5, "Desired time of the first impact")
	maxEvals := flag.Int("max-evals", 60, "Maximum number of evaluations")
	methodName := flag.String("method", "cmaes", "Search method: cmaes or neldermead")
	seed := flag.Int64("seed", 42, "RNG seed for effects")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" || *scenarioPath == "" {
		log.Fatal("--scenario and --output are required")
	}
	if !(*target > 0) {
		log.Fatal("--target-seconds must be positive")
	}

	// Simulation chatter would drown the progress lines
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}
	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	base, err := scenario.Load(*scenarioPath)
	if err != nil {
		log.Fatalf("failed to load scenario: %v", err)
	}
	if _, _, ok := Roles(base.Objects); !ok {
		log.Fatal("scenario needs at least two objects")
	}

	params := NewParamVector()
	evaluator := NewFitnessEvaluator(params, base, config.Cfg(), *target, *seed)

	method, err := newMethod(*methodName, params.Dim())
	if err != nil {
		log.Fatal(err)
	}

	logPath := filepath.Join(*outputDir, "tune_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	evalCount := 0
	bestFitness := math.Inf(1)
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			fitness := evaluator.Evaluate(raw)
			evalCount++

			clamped := params.Clamp(raw)
			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = clamped
			}

			run := evaluator.LastRun()
			row := []EvalRow{{
				Eval:           evalCount,
				Fitness:        fitness,
				SpeedScale:     clamped[0],
				VerticalOffset: clamped[1],
				Hit:            run.Hit,
				ImpactTime:     run.ImpactTime,
				ClosestGap:     run.ClosestGap,
			}}
			var werr error
			if evalCount == 1 {
				werr = gocsv.Marshal(row, logFile)
			} else {
				werr = gocsv.MarshalWithoutHeaders(row, logFile)
			}
			if werr != nil {
				log.Printf("failed to write eval log: %v", werr)
			}

			elapsed := time.Since(startTime)
			remaining := time.Duration(*maxEvals-evalCount) * (elapsed / time.Duration(evalCount))
			status := "miss"
			if run.Hit {
				status = fmt.Sprintf("hit at %.2fs", run.ImpactTime)
			}
			fmt.Printf("Eval %d/%d: %s (best=%.4f) | elapsed: %s, ETA: %s\n",
				evalCount, *maxEvals, status, bestFitness,
				formatDuration(elapsed), formatDuration(remaining))

			return fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // Sequential evaluation
	}

	fmt.Printf("Tuning %s with %s: target first impact at %.2fs, max_evals=%d\n",
		*scenarioPath, *methodName, *target, *maxEvals)

	initX := params.Normalize(params.DefaultVector())
	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		log.Fatal("no evaluation completed")
	}

	fmt.Printf("\nTuning complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best fitness: %.6f\n", bestFitness)
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Name, bestParams[i])
	}

	best := params.Apply(base, bestParams)
	outPath := filepath.Join(*outputDir, "best_scenario.yaml")
	if err := best.WriteYAML(outPath); err != nil {
		log.Printf("failed to write best scenario: %v", err)
	} else {
		fmt.Printf("\nBest scenario saved to: %s\n", outPath)
	}
}
