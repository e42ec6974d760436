// Package scenario drives a simulated car through a scripted list of input
// segments.
package scenario

import (
	"context"
	"errors"
	"fmt"

	"github.com/cfoust/acp/pkg/config"
	"github.com/cfoust/acp/pkg/input"
	"github.com/cfoust/acp/pkg/respawn"
	"github.com/cfoust/acp/pkg/sim"
	"github.com/cfoust/acp/pkg/telemetry"
	"github.com/cfoust/acp/pkg/vehicle"

	"github.com/rs/zerolog/log"
)

// Clock blocks until the next tick may run. A nil Clock runs ticks back to
// back.
type Clock func(ctx context.Context) error

type Runner struct {
	World      *sim.World
	Car        *sim.Car
	Controller *vehicle.Controller
	Input      *input.Fixed
	Respawn    *respawn.Manager
	Recorder   *telemetry.Recorder
	// Observers of every tick, published after the recorder has the sample
	Feed       *telemetry.Feed
	Clock      Clock

	settings config.ScenarioSettings
	// Ticks with a failed update
	failures int
}

// New builds the world, the car and its controller from a configuration.
// It fails if the vehicle could never be driven.
func New(cfg *config.Config) (*Runner, error) {
	world := sim.NewWorld()

	spawn := cfg.SpawnPose()
	car := sim.NewCar(world, cfg.Body.Mass, spawn, cfg.WheelSpecs())
	car.Body.Drag = cfg.Body.Drag
	car.Body.RollingResistance = cfg.Body.RollingResistance
	car.Body.Anchor = car.Body.Pose().Position

	controller := vehicle.New(car.Body, car.Bindings, cfg.VehicleConfig())
	if err := controller.Validate(); err != nil {
		return nil, fmt.Errorf("vehicle cannot be driven: %w", err)
	}

	fixed := input.NewFixed(0, 0)
	controller.SetInputSource(fixed)
	world.Attach(controller)

	manager := respawn.NewManager()
	manager.Register(controller, car.Body)

	return &Runner{
		World:      world,
		Car:        car,
		Controller: controller,
		Input:      fixed,
		Respawn:    manager,
		settings:   cfg.Scenario,
	}, nil
}

func (r *Runner) Failures() int { return r.failures }

// Step advances the world by one tick and records the result.
func (r *Runner) Step(ctx context.Context) error {
	if r.Clock != nil {
		if err := r.Clock(ctx); err != nil {
			return err
		}
	}

	if err := r.World.Step(r.settings.TickDuration()); err != nil {
		r.failures++
		log.Debug().Err(err).Uint64("tick", r.World.Tick()).Msg("update failed")
	}

	if r.Recorder == nil && r.Feed == nil {
		return nil
	}

	sample := telemetry.NewSample(
		r.World.Tick(),
		r.Controller.State(),
		r.Car.Body.Pose(),
	)

	if r.Recorder != nil {
		if err := r.Recorder.Record(sample); err != nil {
			return err
		}
	}

	if r.Feed != nil {
		r.Feed.Publish(sample)
	}

	return nil
}

// Segment applies a segment's input and runs it to completion.
func (r *Runner) Segment(ctx context.Context, segment config.Segment) error {
	if segment.Reset {
		count := r.Respawn.ResetAll()
		log.Info().Int("vehicles", count).Msg("respawned")
	}

	r.Input.Set(segment.Throttle, segment.Steer)
	r.Controller.SetDrift(segment.Drift)

	for i := 0; i < segment.Ticks; i++ {
		if err := r.Step(ctx); err != nil {
			return err
		}
	}

	state := r.Controller.State()
	position := r.Car.Body.Pose().Position
	log.Info().
		Uint64("tick", r.World.Tick()).
		Str("mode", state.Mode.String()).
		Float64("speed", state.Speed).
		Float64("steering", state.Steering).
		Floats64("position", position[:]).
		Msg("segment finished")

	return nil
}

// Run plays every segment in order. Without segments the car idles for the
// given number of ticks.
func (r *Runner) Run(ctx context.Context, idleTicks int) error {
	segments := r.settings.Segments
	if len(segments) == 0 {
		log.Warn().Int("ticks", idleTicks).Msg("scenario has no segments, idling")
		segments = []config.Segment{{Ticks: idleTicks}}
	}

	for _, segment := range segments {
		err := r.Segment(ctx, segment)
		if errors.Is(err, context.Canceled) {
			log.Info().Uint64("tick", r.World.Tick()).Msg("scenario interrupted")
			return nil
		}
		if err != nil {
			return err
		}
	}

	if r.failures > 0 {
		log.Warn().Int("ticks", r.failures).Msg("some updates failed")
	}

	return nil
}
