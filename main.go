package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol-rle/model"
	"github.com/sheikhrachel/go-gol-rle/utils"
)

const defaultConfigFile = "config.json"

func main() {
	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig(defaultConfigFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Fatalf("config: %+v", err)
		}
		config = utils.DefaultConfig()
	}
	config.Bind(flag.CommandLine)
	flag.Parse()
	if flag.NArg() > 0 {
		config.Pattern = flag.Arg(0)
	}
	if err = config.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pattern, err := loadPattern(ctx, config)
	if err != nil {
		log.Fatalf("load pattern: %v", err)
	}

	eng, pool, renderer, stats := initializeGame(config, pattern)
	displayGameInfo(config, pattern, eng)

	var (
		history       model.History
		stagnantCount = 0
		lastFrameTime = time.Now()
	)

	for {
		frameStart := time.Now()
		generation := eng.Generation()

		// The display side only ever sees a copy taken between steps
		snapshot := eng.Snapshot(pool)
		livingCells, density, status, isStagnant := updateGameState(snapshot, &history, generation, lastFrameTime, stats)
		lastFrameTime = frameStart
		if isStagnant {
			stagnantCount++
		} else {
			stagnantCount = 0
		}

		renderer.Clear()
		displayGameStatus(renderer, generation, livingCells, density, status, snapshot, stats)
		if err := renderer.Display(snapshot); err != nil {
			log.Fatalf("display: %v", err)
		}
		model.GridToPool(snapshot, pool)

		if done, reason := checkStopConditions(livingCells, stagnantCount, generation, config); done {
			fmt.Printf("\nStopping: %s\n", reason)
			break
		}

		select {
		case <-ctx.Done():
			fmt.Println("\nShutting down gracefully...")
			fmt.Printf("Final stats: %d generations in %.1f seconds, %.1f avg population\n",
				generation, stats.Elapsed().Seconds(), stats.AveragePopulation)
			return
		case <-time.After(config.FrameRate):
		}

		eng.Step()
	}
}
