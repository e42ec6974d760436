package config

import (
	"github.com/cfoust/acp/pkg/curve"
	"github.com/cfoust/acp/pkg/sim"
	"github.com/cfoust/acp/pkg/vehicle"

	fp "github.com/repeale/fp-go"

	"github.com/go-gl/mathgl/mgl64"
)

type Keyframe struct {
	Time       float64
	Value      float64
	InTangent  float64
	OutTangent float64
}

type VehicleSettings struct {
	DiffGearing    float64
	SteerAngle     float64
	SteerSpeed     float64
	DriftIntensity float64
	Downforce      float64
	AllowDrift     bool
	MotorTorque    []Keyframe
	TurnInputCurve []Keyframe
}

type BodySettings struct {
	Mass     float64
	Position [3]float64
	// Heading around the up axis, in degrees
	Yaw               float64
	Drag              float64
	RollingResistance float64
}

type WheelSettings struct {
	Name     string
	Position [3]float64
	Radius   float64
	Steer    bool
	Drive    bool
	Active   bool
}

// Segment holds a constant input for a number of ticks.
type Segment struct {
	Ticks    int
	Throttle float64
	Steer    float64
	Drift    bool
	// Respawn the vehicle before the segment starts
	Reset bool
}

type ScenarioSettings struct {
	TickRate int
	Segments []Segment
}

type Config struct {
	Vehicle  VehicleSettings
	Body     BodySettings
	Wheels   []WheelSettings
	Scenario ScenarioSettings
}

func toCurve(keys []Keyframe) curve.Curve {
	return curve.New(fp.Map(func(k Keyframe) curve.Keyframe {
		return curve.Keyframe{
			Time:       k.Time,
			Value:      k.Value,
			InTangent:  k.InTangent,
			OutTangent: k.OutTangent,
		}
	})(keys)...)
}

func (c *Config) VehicleConfig() vehicle.Config {
	v := c.Vehicle
	return vehicle.Config{
		DiffGearing:    v.DiffGearing,
		SteerAngle:     v.SteerAngle,
		SteerSpeed:     v.SteerSpeed,
		DriftIntensity: v.DriftIntensity,
		Downforce:      v.Downforce,
		AllowDrift:     v.AllowDrift,
		MotorTorque:    toCurve(v.MotorTorque),
		TurnInputCurve: toCurve(v.TurnInputCurve),
	}.Clamp()
}

func (c *Config) SpawnPose() vehicle.Pose {
	return vehicle.Pose{
		Position: c.Body.Position,
		Rotation: mgl64.QuatRotate(mgl64.DegToRad(c.Body.Yaw), vehicle.LocalUp),
	}
}

func (c *Config) WheelSpecs() []sim.WheelSpec {
	return fp.Map(func(w WheelSettings) sim.WheelSpec {
		return sim.WheelSpec{
			Name:   w.Name,
			Mount:  w.Position,
			Radius: w.Radius,
			Steer:  w.Steer,
			Drive:  w.Drive,
			Active: w.Active,
		}
	})(c.Wheels)
}

// TickDuration is the fixed step in seconds.
func (s ScenarioSettings) TickDuration() float64 {
	if s.TickRate <= 0 {
		return 1.0 / 50
	}
	return 1 / float64(s.TickRate)
}

// TotalTicks is the length of the scripted scenario.
func (s ScenarioSettings) TotalTicks() int {
	total := 0
	for _, segment := range s.Segments {
		total += segment.Ticks
	}
	return total
}
