package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"runtime"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"droidlife/pkg/core"
	"droidlife/pkg/sims/life"

	"golang.org/x/sync/errgroup"
)

type scenario struct {
	rule string
	seed int64
}

type scenarioResult struct {
	scenario
	finalPopulation int
	peakPopulation  int
	settledAt       int
	generations     int
}

func (r scenarioResult) settled() string {
	if r.settledAt < 0 {
		return "-"
	}
	return strconv.Itoa(r.settledAt)
}

var defaultRules = []string{
	"B3/S23",
	"B36/S23",
	"B3678/S34678",
	"B2/S",
	"B1357/S1357",
	"B368/S245",
}

func main() {
	width := flag.Int("w", 96, "grid width in cells")
	height := flag.Int("h", 96, "grid height in cells")
	steps := flag.Int("steps", 500, "generations to simulate per scenario")
	seeds := flag.Int("seeds", 4, "random seeds per rule")
	density := flag.Float64("density", 0.35, "initial live cell density")
	rules := flag.String("rules", strings.Join(defaultRules, ","), "comma-separated rules to sweep")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	flag.Parse()

	factory, ok := core.Sims()["life"]
	if !ok {
		log.Fatal("life sim not registered")
	}

	var jobs []scenario
	for _, r := range strings.Split(*rules, ",") {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		rs, err := life.ParseRuleSet(r)
		if err != nil {
			log.Fatal(err)
		}
		for s := 0; s < *seeds; s++ {
			jobs = append(jobs, scenario{rule: rs.String(), seed: int64(s + 1)})
		}
	}

	fmt.Printf("Sweeping %d scenarios (%d workers, %d steps)\n", len(jobs), *workers, *steps)
	base := factory(map[string]string{
		"w":       strconv.Itoa(*width),
		"h":       strconv.Itoa(*height),
		"density": strconv.FormatFloat(*density, 'f', -1, 64),
	})
	if provider, ok := base.(core.ParameterProvider); ok {
		printParameters(provider.Parameters())
	}

	var (
		mu      sync.Mutex
		results []scenarioResult
	)
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(*workers)

	start := time.Now()
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			cfg := map[string]string{
				"w":       strconv.Itoa(*width),
				"h":       strconv.Itoa(*height),
				"rule":    job.rule,
				"density": strconv.FormatFloat(*density, 'f', -1, 64),
			}
			res, err := runScenario(ctx, factory(cfg), job, *steps)
			if err != nil {
				return err
			}
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].rule != results[j].rule {
			return results[i].rule < results[j].rule
		}
		return results[i].seed < results[j].seed
	})

	fmt.Printf("\n%-14s %5s %6s %8s %8s %8s\n", "rule", "seed", "gens", "final", "peak", "settled")
	for _, r := range results {
		fmt.Printf("%-14s %5d %6d %8d %8d %8s\n", r.rule, r.seed, r.generations, r.finalPopulation, r.peakPopulation, r.settled())
	}
	fmt.Printf("\nelapsed %s\n", time.Since(start).Round(time.Millisecond))
}

// runScenario steps sim until steps generations have run or the grid stops
// changing. A sim that reports a different rule than job asked for is an
// error, since the factory falls back to defaults on values it rejects.
func runScenario(ctx context.Context, sim core.Sim, job scenario, steps int) (scenarioResult, error) {
	stats, ok := sim.(core.StatsProvider)
	if !ok {
		return scenarioResult{}, fmt.Errorf("sim %q does not report statistics", sim.Name())
	}
	if pp, ok := sim.(core.ParameterProvider); ok {
		if p, ok := pp.Parameters().Lookup("rule"); ok && p.Value != job.rule {
			return scenarioResult{}, fmt.Errorf("sim %q runs %s, scenario wants %s", sim.Name(), p.Value, job.rule)
		}
	}
	sim.Reset(job.seed)

	res := scenarioResult{scenario: job, settledAt: -1, peakPopulation: stats.Population()}
	prev := append([]uint8(nil), sim.Cells()...)
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		sim.Step()
		if pop := stats.Population(); pop > res.peakPopulation {
			res.peakPopulation = pop
		}
		if slices.Equal(prev, sim.Cells()) {
			res.settledAt = stats.Generation()
			break
		}
		copy(prev, sim.Cells())
	}
	res.finalPopulation = stats.Population()
	res.generations = stats.Generation()
	return res, nil
}

func printParameters(snap core.ParameterSnapshot) {
	for _, group := range snap.Groups {
		if group.Name == "Rules" {
			continue
		}
		parts := make([]string, 0, len(group.Params))
		for _, p := range group.Params {
			parts = append(parts, p.Label+"="+p.Value)
		}
		fmt.Printf("  %s: %s\n", group.Name, strings.Join(parts, " "))
	}
}
