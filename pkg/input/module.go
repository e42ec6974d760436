// Package input provides sources for the raw control axes a vehicle reads
// once per tick.
package input

import (
	"github.com/cfoust/acp/pkg/vehicle"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sasha-s/go-deadlock"
)

const (
	AxisVertical   = "Vertical"
	AxisHorizontal = "Horizontal"
)

var (
	_ vehicle.InputSource = &Fixed{}
	_ vehicle.InputSource = Func(nil)
	_ vehicle.InputSource = &Touch{}
)

// Func adapts a function to an input source.
type Func func() (throttle, steer float64)

func (f Func) ReadAxes() (float64, float64) {
	return f()
}

// Fixed holds a pair of axes until they are changed. It is safe to update
// from another goroutine while a vehicle polls it.
type Fixed struct {
	mutex    deadlock.Mutex
	throttle float64
	steer    float64
}

func NewFixed(throttle, steer float64) *Fixed {
	f := &Fixed{}
	f.Set(throttle, steer)
	return f
}

// Set stores both axes, clamped to [-1, 1].
func (f *Fixed) Set(throttle, steer float64) {
	f.mutex.Lock()
	f.throttle = mgl64.Clamp(throttle, -1, 1)
	f.steer = mgl64.Clamp(steer, -1, 1)
	f.mutex.Unlock()
}

func (f *Fixed) ReadAxes() (float64, float64) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.throttle, f.steer
}
