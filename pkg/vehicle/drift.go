package vehicle

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	driftForceDivisor = 7.0
	driftYawFactor    = 0.1
)

// DriftController computes the extra lateral force and yaw impulse injected
// while the car is drifting.
type DriftController struct {
	SteerAngle float64
	Intensity  float64
}

// Compute returns the world-space force and velocity-change torque for one
// tick. steering is the command in degrees.
func (d DriftController) Compute(pose Pose, mass, speedKmh, throttle, steering float64) (force, torque mgl64.Vec3, err error) {
	if d.SteerAngle == 0 {
		return mgl64.Vec3{}, mgl64.Vec3{}, ErrZeroSteerAngle
	}

	bias := steering / d.SteerAngle

	lateral := pose.Right().Mul(-1)
	lateral[1] = 0
	if length := lateral.Len(); length > 1e-9 {
		lateral = lateral.Mul(1 / length)
	} else {
		// Right axis is vertical, there is no horizontal drift direction.
		lateral = mgl64.Vec3{}
	}

	if steering != 0 {
		lateral = lateral.Mul(mass * speedKmh / driftForceDivisor * throttle * bias)
	}

	yaw := pose.Up().Mul(driftYawFactor * bias)

	force = lateral.Mul(d.Intensity)
	torque = yaw.Mul(d.Intensity)
	if !finite(force) || !finite(torque) {
		return mgl64.Vec3{}, mgl64.Vec3{}, &ConfigurationError{Reason: "non-finite drift force"}
	}
	return force, torque, nil
}

func finite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
