package main

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol-rle/engine"
	"github.com/sheikhrachel/go-gol-rle/model"
	"github.com/sheikhrachel/go-gol-rle/rle"
	"github.com/sheikhrachel/go-gol-rle/source"
	"github.com/sheikhrachel/go-gol-rle/utils"
)

// loadPattern fetches and decodes the configured pattern
func loadPattern(ctx context.Context, config utils.Config) (*rle.Pattern, error) {
	blob, err := source.Load(ctx, config.Pattern,
		source.WithTimeout(config.FetchTimeout),
		source.WithMaxBytes(config.MaxPatternBytes),
	)
	if err != nil {
		return nil, err
	}

	pattern, err := rle.DecodeBytes(blob)
	if err != nil {
		return nil, errors.WithMessagef(err, "[loadPattern] failed to decode pattern: %+v", config.Pattern)
	}
	return pattern, nil
}

// engineMode maps the configuration switches to an advance strategy
func engineMode(config utils.Config) engine.Mode {
	switch {
	case config.UseParallel:
		return engine.Parallel
	case config.UseBoundedGrid:
		return engine.Bounded
	}
	return engine.Serial
}

// initializeGame sets up the initial game state
func initializeGame(config utils.Config, pattern *rle.Pattern) (
	*engine.Engine,
	*model.GridPool,
	*model.TerminalRenderer,
	*utils.Stats,
) {
	var pool *model.GridPool
	if config.UseMemoryPool {
		pool = model.NewGridPool()
	}

	eng := engine.New(pattern.Grid, engine.WithMode(engineMode(config)))
	renderer := &model.TerminalRenderer{}
	stats := utils.NewStats()

	return eng, pool, renderer, stats
}

// displayGameInfo shows the initial game information
func displayGameInfo(config utils.Config, pattern *rle.Pattern, eng *engine.Engine) {
	fmt.Printf("Pattern: %s\n", config.Pattern)
	fmt.Printf("Grid: %dx%d | Initial living cells: %d | Mode: %s\n",
		pattern.Columns, pattern.Rows, pattern.Grid.CountLivingCells(), eng.Mode())
	fmt.Println("Press Ctrl+C to exit gracefully")
	fmt.Println()
}

// updateGameState gathers the status of the current generation
func updateGameState(
	grid *model.Grid,
	history *model.History,
	generation int,
	lastFrameTime time.Time,
	stats *utils.Stats,
) (int, float64, string, bool) {
	livingCells := grid.CountLivingCells()
	density := float64(livingCells) / float64(grid.Rows()*grid.Columns()) * 100

	stats.Update(generation, livingCells, time.Since(lastFrameTime))

	// Compare against the recorded states before recording this one
	isStagnant := history.IsStagnant(grid)
	history.Update(grid)

	status := "Active"
	if isStagnant {
		status = "Stable"
	}
	if livingCells == 0 {
		status = "Extinct"
	}

	return livingCells, density, status, isStagnant
}

// displayGameStatus shows the current game status
func displayGameStatus(
	renderer *model.TerminalRenderer,
	generation, livingCells int,
	density float64,
	status string,
	grid *model.Grid,
	stats *utils.Stats,
) {
	renderer.Status("Gen: %d | Living: %d | Density: %.1f%% | Status: %s | Bounding box: %d cells",
		generation, livingCells, density, status, grid.GetBoundingBoxSize())
	renderer.Status("Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs",
		stats.GenerationsPerSecond, stats.AveragePopulation, stats.Elapsed().Seconds())
}

// checkStopConditions determines if the loop should end
func checkStopConditions(livingCells, stagnantCount, generation int, config utils.Config) (bool, string) {
	if config.MaxGenerations > 0 && generation >= config.MaxGenerations {
		return true, fmt.Sprintf("reached maximum generations limit (%d)", config.MaxGenerations)
	}
	if !config.StopWhenStagnant {
		return false, ""
	}
	if livingCells == 0 {
		return true, "extinction"
	}
	if stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	return false, ""
}
