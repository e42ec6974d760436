package sim

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Updater runs once per tick after wheel contacts are sampled and before
// forces are integrated. vehicle.Controller satisfies it.
type Updater interface {
	Update(tick uint64) error
}

type World struct {
	Gravity mgl64.Vec3
	// Height of the ground plane
	Ground float64

	tick     uint64
	bodies   []*Body
	updaters []Updater
}

func NewWorld() *World {
	return &World{
		Gravity: mgl64.Vec3{0, -9.81, 0},
	}
}

func (w *World) AddBody(body *Body) {
	w.bodies = append(w.bodies, body)
	body.settle(w.Ground)
	for _, wheel := range body.wheels {
		wheel.sample(w.Ground)
	}
}

func (w *World) Attach(updater Updater) {
	w.updaters = append(w.updaters, updater)
}

// Tick is the index of the last completed step.
func (w *World) Tick() uint64 { return w.tick }

// Step advances the world by dt seconds. Updater errors do not stop the step;
// they are collected and returned together.
func (w *World) Step(dt float64) error {
	w.tick++

	for _, body := range w.bodies {
		for _, wheel := range body.wheels {
			wheel.sample(w.Ground)
		}
	}

	var errs []error
	for i, updater := range w.updaters {
		if err := updater.Update(w.tick); err != nil {
			errs = append(errs, fmt.Errorf("updater %d: %w", i, err))
		}
	}

	for _, body := range w.bodies {
		if !body.active {
			continue
		}
		for _, wheel := range body.wheels {
			wheel.apply(dt)
		}
		body.Step(dt, w.Gravity)
		body.settle(w.Ground)
	}

	return errors.Join(errs...)
}
