package input

import (
	"github.com/rs/zerolog/log"
	"github.com/sasha-s/go-deadlock"
)

// Button is an on-screen control that contributes a fixed value to a named
// axis while it is held down.
type Button struct {
	Axis  string
	Value float64
}

// Touch aggregates the buttons currently held down into axis values. UI code
// registers a button on pointer down and unregisters it on pointer up.
type Touch struct {
	// Axis names read for throttle and steering
	ThrottleAxis string
	SteerAxis    string

	mutex   deadlock.Mutex
	pressed []*Button
}

func NewTouch() *Touch {
	return &Touch{
		ThrottleAxis: AxisVertical,
		SteerAxis:    AxisHorizontal,
	}
}

// Register marks a button as held. Registering the same button twice has no
// effect.
func (t *Touch) Register(button *Button) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	for _, other := range t.pressed {
		if other == button {
			return
		}
	}

	log.Debug().Str("axis", button.Axis).Float64("value", button.Value).Msg("register button")
	t.pressed = append(t.pressed, button)
}

// Unregister releases a button. Unknown buttons are ignored.
func (t *Touch) Unregister(button *Button) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	for i, other := range t.pressed {
		if other != button {
			continue
		}

		log.Debug().Str("axis", button.Axis).Float64("value", button.Value).Msg("unregister button")
		t.pressed = append(t.pressed[:i], t.pressed[i+1:]...)
		return
	}
}

// Axis sums the values of every held button bound to the named axis. The sum
// is not clamped; vehicles clamp when they shape their input.
func (t *Touch) Axis(name string) float64 {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	var result float64
	for _, button := range t.pressed {
		if button.Axis == name {
			result += button.Value
		}
	}
	return result
}

// Pressed returns the number of buttons currently held.
func (t *Touch) Pressed() int {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return len(t.pressed)
}

func (t *Touch) ReadAxes() (float64, float64) {
	return t.Axis(t.ThrottleAxis), t.Axis(t.SteerAxis)
}
