package vehicle

import (
	"fmt"
	"math"
)

const (
	// IdleMotorTorque is written instead of zero because some wheel solvers
	// stop spinning a wheel entirely when its motor torque is exactly zero.
	IdleMotorTorque = 0.0001

	// Below this speed (km/h) throttle against the direction of motion
	// drives instead of braking, so a stopped car can reverse.
	ReverseThreshold = 4.0
)

type DriveMode uint8

const (
	ModeIdle DriveMode = iota
	ModeDrive
	ModeBrake
)

func (m DriveMode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeDrive:
		return "drive"
	case ModeBrake:
		return "brake"
	}
	return fmt.Sprintf("DriveMode(%d)", uint8(m))
}

// sign follows the engine convention where sign(0) is 1.
func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// SelectMode decides whether the wheels are driven or braked this tick.
func SelectMode(speedKmh, throttle float64) DriveMode {
	switch {
	case throttle == 0:
		return ModeIdle
	case math.Abs(speedKmh) < ReverseThreshold, sign(speedKmh) == sign(throttle):
		return ModeDrive
	default:
		return ModeBrake
	}
}

// DriveController applies the drive decision to the wheel actuators.
type DriveController struct {
	Torque TorqueModel
	Wheels Wheels
}

// Reset puts every wheel back to idle motor torque and no brake.
func (d DriveController) Reset() {
	for _, wheel := range d.Wheels.All {
		wheel.SetMotorTorque(IdleMotorTorque)
		wheel.SetBrakeTorque(0)
	}
}

// Apply selects the drive mode and writes motor or brake torque. If the
// geared torque cannot be computed the wheels are left idle and the error is
// returned.
func (d DriveController) Apply(speedKmh, throttle float64) (DriveMode, error) {
	mode := SelectMode(speedKmh, throttle)

	switch mode {
	case ModeDrive:
		torque, err := d.Torque.GearedTorque(throttle, speedKmh, len(d.Wheels.Drive))
		if err != nil {
			return mode, err
		}
		if math.IsNaN(torque) || math.IsInf(torque, 0) {
			return mode, &ConfigurationError{
				Reason: fmt.Sprintf("non-finite motor torque at %.2f km/h", speedKmh),
			}
		}
		for _, wheel := range d.Wheels.Drive {
			wheel.SetMotorTorque(torque)
		}
	case ModeBrake:
		brake := math.Abs(throttle)
		for _, wheel := range d.Wheels.All {
			wheel.SetBrakeTorque(brake)
		}
	}

	return mode, nil
}

// Steer moves every steerable wheel a fraction of the way toward the
// steering command.
func (d DriveController) Steer(command, steerSpeed float64) {
	for _, wheel := range d.Wheels.Steer {
		wheel.SetSteerAngle(lerp(wheel.SteerAngle(), command, steerSpeed))
	}
}

func lerp(from, to, t float64) float64 {
	t = math.Max(0, math.Min(1, t))
	return from + (to-from)*t
}
