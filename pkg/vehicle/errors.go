package vehicle

import (
	"fmt"
)

// ConfigurationError describes a vehicle setup that cannot produce finite
// forces, such as torque gearing without any drive wheels.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("vehicle configuration: %s", e.Reason)
}

var (
	ErrNoDriveWheels  = &ConfigurationError{Reason: "throttle applied with no drive wheels"}
	ErrZeroSteerAngle = &ConfigurationError{Reason: "drift requires a nonzero max steer angle"}
)
