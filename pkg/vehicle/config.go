package vehicle

import (
	"github.com/cfoust/acp/pkg/curve"

	"github.com/go-gl/mathgl/mgl64"
)

// Documented ranges for the tunable parameters. Setters and Config.Clamp
// silently clamp into these.
const (
	MinDiffGearing    = 2.0
	MaxDiffGearing    = 16.0
	MinSteerAngle     = 0.0
	MaxSteerAngle     = 50.0
	MinSteerSpeed     = 0.001
	MaxSteerSpeed     = 1.0
	MinDriftIntensity = 0.0
	MaxDriftIntensity = 2.0
	MinDownforce      = 0.5
	MaxDownforce      = 10.0
)

type Config struct {
	// Differential gearing ratio
	DiffGearing float64
	// Max steering angle in degrees, usually higher for drift cars
	SteerAngle float64
	// Interpolation factor used to move the wheels toward the steering
	// command each tick. 1 snaps instantly.
	SteerSpeed     float64
	DriftIntensity float64
	// Downward force per km/h of forward speed
	Downforce  float64
	AllowDrift bool

	// MotorTorque maps speed in km/h to motor torque. It should start
	// positive at 0 and cross zero past the top speed.
	MotorTorque curve.Curve
	// TurnInputCurve shapes the raw steering axis, usually an odd function
	// through (-1, -1), (0, 0) and (1, 1).
	TurnInputCurve curve.Curve
}

func DefaultMotorTorque() curve.Curve {
	return curve.New(
		curve.Key(0, 200),
		curve.Key(50, 300),
		curve.Key(200, 0),
	)
}

func DefaultConfig() Config {
	return Config{
		DiffGearing:    4.0,
		SteerAngle:     30.0,
		SteerSpeed:     0.2,
		DriftIntensity: 1.0,
		Downforce:      1.0,
		AllowDrift:     true,
		MotorTorque:    DefaultMotorTorque(),
		TurnInputCurve: curve.Linear(-1, -1, 1, 1),
	}
}

// Clamp returns a copy of the configuration with every parameter inside its
// documented range.
func (c Config) Clamp() Config {
	c.DiffGearing = mgl64.Clamp(c.DiffGearing, MinDiffGearing, MaxDiffGearing)
	c.SteerAngle = mgl64.Clamp(c.SteerAngle, MinSteerAngle, MaxSteerAngle)
	c.SteerSpeed = mgl64.Clamp(c.SteerSpeed, MinSteerSpeed, MaxSteerSpeed)
	c.DriftIntensity = mgl64.Clamp(c.DriftIntensity, MinDriftIntensity, MaxDriftIntensity)
	c.Downforce = mgl64.Clamp(c.Downforce, MinDownforce, MaxDownforce)
	return c
}
