package vehicle

import (
	"github.com/cfoust/acp/pkg/curve"
)

// TorqueModel turns a throttle command into per-wheel motor torque.
type TorqueModel struct {
	Curve       curve.Curve
	DiffGearing float64
}

// EvaluateTorque samples the motor torque curve at the signed speed.
func (m TorqueModel) EvaluateTorque(speedKmh float64) float64 {
	return m.Curve.Evaluate(speedKmh)
}

// GearedTorque splits the geared motor torque evenly between the drive
// wheels.
func (m TorqueModel) GearedTorque(throttle, speedKmh float64, driveWheels int) (float64, error) {
	if throttle == 0 {
		return 0, nil
	}
	if driveWheels <= 0 {
		return 0, ErrNoDriveWheels
	}
	return throttle * m.EvaluateTorque(speedKmh) * m.DiffGearing / float64(driveWheels), nil
}
