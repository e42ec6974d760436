package vehicle

import (
	"github.com/cfoust/acp/pkg/curve"

	"github.com/go-gl/mathgl/mgl64"
)

// InputSource provides the raw control axes once per tick. Both axes are
// nominally in [-1, 1].
type InputSource interface {
	ReadAxes() (throttle, steer float64)
}

// InputShaper turns raw axes into control commands.
type InputShaper struct {
	TurnCurve  curve.Curve
	SteerAngle float64
}

// ShapeSteering maps a raw steering axis through the response curve and
// returns a steering command in degrees within [-SteerAngle, SteerAngle].
func (s InputShaper) ShapeSteering(raw float64) float64 {
	raw = mgl64.Clamp(raw, -1, 1)
	return clampSteering(s.TurnCurve.Evaluate(raw)*s.SteerAngle, s.SteerAngle)
}

// ShapeThrottle passes the throttle through, clamped to [-1, 1].
func (s InputShaper) ShapeThrottle(raw float64) float64 {
	return mgl64.Clamp(raw, -1, 1)
}

func clampSteering(degrees, steerAngle float64) float64 {
	limit := mgl64.Abs(steerAngle)
	return mgl64.Clamp(degrees, -limit, limit)
}
