package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/cfoust/acp/pkg/config"
	"github.com/cfoust/acp/pkg/pausableticker"
	"github.com/cfoust/acp/pkg/scenario"
	"github.com/cfoust/acp/pkg/telemetry"

	"github.com/rs/zerolog/log"
)

type runOptions struct {
	Configs  []string
	Ticks    int
	Record   string
	Realtime bool
}

// tickerClock paces ticks with the ticker. SIGUSR1 toggles a pause.
func tickerClock(ctx context.Context, ticker *pausableticker.Ticker) scenario.Clock {
	toggle := make(chan os.Signal, 1)
	signal.Notify(toggle, syscall.SIGUSR1)

	go func() {
		for {
			select {
			case <-ctx.Done():
				signal.Stop(toggle)
				return
			case <-toggle:
				if ticker.Paused() {
					log.Info().Msg("resuming")
					ticker.Resume()
				} else {
					log.Info().Msg("pausing")
					ticker.Pause()
				}
			}
		}
	}()

	return func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			return nil
		}
	}
}

// logProgress reports the car once per simulated second.
func logProgress(subscriber *telemetry.Subscriber, tickRate int) {
	for sample := range subscriber.Recv() {
		if tickRate <= 0 || sample.Tick%uint64(tickRate) != 0 {
			continue
		}

		log.Debug().
			Uint64("tick", sample.Tick).
			Str("mode", sample.Mode).
			Float64("speed", sample.Speed).
			Bool("grounded", sample.Grounded).
			Floats64("position", sample.Position[:]).
			Msg("progress")
	}
}

func runCommand(options runOptions) error {
	cfg, err := config.Process(options.Configs)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	runner, err := scenario.New(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if options.Record != "" {
		file, err := os.Create(options.Record)
		if err != nil {
			return fmt.Errorf("could not create telemetry file: %w", err)
		}
		defer file.Close()

		recorder := telemetry.NewRecorder(file)
		runner.Recorder = recorder
		defer func() {
			log.Info().
				Int("samples", recorder.Count()).
				Str("path", options.Record).
				Msg("wrote telemetry")
		}()
	}

	if options.Realtime {
		period := time.Duration(cfg.Scenario.TickDuration() * float64(time.Second))
		ticker := pausableticker.New(period)
		defer ticker.Stop()
		runner.Clock = tickerClock(ctx, ticker)
	}

	feed := telemetry.NewFeed()
	runner.Feed = feed

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logProgress(feed.Subscribe(cfg.Scenario.TickRate), cfg.Scenario.TickRate)
	}()
	defer wg.Wait()
	defer feed.Close()

	log.Info().
		Int("segments", len(cfg.Scenario.Segments)).
		Int("ticks", cfg.Scenario.TotalTicks()).
		Int("tickRate", cfg.Scenario.TickRate).
		Msg("starting scenario")

	return runner.Run(ctx, options.Ticks)
}
