package wfc

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"tilewave/internal/core"
	"tilewave/internal/tile"
)

// RunResult captures the outcome of one headless engine run.
type RunResult struct {
	Preset string
	Seed   int64
	// Ticks is the number of ticks executed, stopping early once done.
	Ticks int
	Done  bool
	Cells int
	Stats Stats
	// Err is set when the preset could not be built.
	Err error
}

// Coverage returns the fraction of cells that ended up resolved.
func (r RunResult) Coverage() float64 {
	if r.Cells == 0 {
		return 0
	}
	return float64(r.Stats.Resolved) / float64(r.Cells)
}

// Run ticks e until it is done or maxTicks have elapsed.
func Run(e *Engine, maxTicks int) RunResult {
	ticks := 0
	for ticks < maxTicks && !e.Done() {
		e.Tick()
		ticks++
	}
	return RunResult{
		Preset: e.Name(),
		Seed:   e.Seed(),
		Ticks:  ticks,
		Done:   e.Done(),
		Cells:  e.grid.Len(),
		Stats:  e.Stats(),
	}
}

// SweepJob identifies one run in a sweep.
type SweepJob struct {
	Preset string
	Seed   int64
}

// Sweep runs every preset against every seed on a pool of workers. Each run
// owns its engine; only the read-only catalog is shared. Results come back
// ordered by preset and seed.
func Sweep(tiles *tile.Set, size core.Size, presetNames []string, seeds []int64, overrides map[string]string, maxTicks, workers int) []RunResult {
	if workers <= 0 {
		workers = 1
	}
	jobs := make(chan SweepJob)
	results := make(chan RunResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				results <- runJob(tiles, size, job, overrides, maxTicks)
			}
		}()
	}

	go func() {
		for _, name := range presetNames {
			for _, seed := range seeds {
				jobs <- SweepJob{Preset: name, Seed: seed}
			}
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var out []RunResult
	for res := range results {
		Logger().Debug("sweep run finished",
			slog.String("preset", res.Preset), slog.Int64("seed", res.Seed),
			slog.Int("ticks", res.Ticks), slog.Bool("done", res.Done))
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Preset != out[j].Preset {
			return out[i].Preset < out[j].Preset
		}
		return out[i].Seed < out[j].Seed
	})
	return out
}

func runJob(tiles *tile.Set, size core.Size, job SweepJob, overrides map[string]string, maxTicks int) RunResult {
	e, err := NewPreset(job.Preset, tiles, size, overrides)
	if err != nil {
		return RunResult{Preset: job.Preset, Seed: job.Seed, Err: err}
	}
	e.Reset(job.Seed)
	return Run(e, maxTicks)
}

// Summary aggregates the runs of one preset.
type Summary struct {
	Preset         string
	Runs           int
	Failed         int
	Completed      int
	MeanTicks      float64
	MeanCoverage   float64
	Contradictions int
	Restarts       int
}

func (s Summary) String() string {
	return fmt.Sprintf("%-10s runs=%d done=%d failed=%d ticks=%.1f coverage=%.3f contradictions=%d restarts=%d",
		s.Preset, s.Runs, s.Completed, s.Failed, s.MeanTicks, s.MeanCoverage, s.Contradictions, s.Restarts)
}

// Summarize groups results by preset, in preset order.
func Summarize(results []RunResult) []Summary {
	byPreset := map[string]*Summary{}
	var order []string
	for _, r := range results {
		s, ok := byPreset[r.Preset]
		if !ok {
			s = &Summary{Preset: r.Preset}
			byPreset[r.Preset] = s
			order = append(order, r.Preset)
		}
		s.Runs++
		if r.Err != nil {
			s.Failed++
			continue
		}
		if r.Done {
			s.Completed++
		}
		s.MeanTicks += float64(r.Ticks)
		s.MeanCoverage += r.Coverage()
		s.Contradictions += r.Stats.Contradictions
		s.Restarts += r.Stats.Restarts
	}
	sort.Strings(order)
	out := make([]Summary, 0, len(order))
	for _, name := range order {
		s := byPreset[name]
		if ok := s.Runs - s.Failed; ok > 0 {
			s.MeanTicks /= float64(ok)
			s.MeanCoverage /= float64(ok)
		}
		out = append(out, *s)
	}
	return out
}
