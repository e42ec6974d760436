// Package vehicle implements an arcade car controller. Once per physics tick
// it turns throttle and steering input into wheel steer angles, motor and
// brake torque, drift forces and downforce on a host-owned rigid body.
package vehicle

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog/log"
	"github.com/sasha-s/go-deadlock"
	"golang.org/x/time/rate"
)

// MetersPerSecondToKmh converts body velocity into the speed unit used by
// the torque curve.
const MetersPerSecondToKmh = 3.6

// State is a snapshot of a controller's runtime state.
type State struct {
	// Signed forward speed in km/h
	Speed float64
	// Steering command in degrees
	Steering float64
	Throttle float64
	Drift    bool
	Mode     DriveMode

	Grounded     bool
	GroundedTick uint64

	Spawn Pose
}

type Controller struct {
	body    RigidBodyHandle
	wheels  Wheels
	contact *ContactSampler
	// Limits how often mid-tick configuration errors are logged
	diagnostics *rate.Limiter

	mutex  deadlock.Mutex
	config Config
	input  InputSource
	spawn  Pose

	speed    float64
	steering float64
	throttle float64
	drift    bool
	mode     DriveMode
}

// New binds a controller to a body and its wheels. The body's current pose
// becomes the spawn pose used by ResetPosition.
func New(body RigidBodyHandle, wheels Wheels, config Config) *Controller {
	wheels = wheels.normalize()

	c := &Controller{
		body:        body,
		wheels:      wheels,
		contact:     NewContactSampler(wheels.All),
		diagnostics: rate.NewLimiter(rate.Every(time.Second), 1),
		config:      config.Clamp(),
		spawn:       body.Pose(),
	}

	for _, wheel := range wheels.All {
		wheel.SetMotorTorque(IdleMotorTorque)
	}

	return c
}

// SetInputSource switches the controller to live input. A nil source makes
// the controller externally driven through SetThrottle and SetSteering.
func (c *Controller) SetInputSource(source InputSource) {
	c.mutex.Lock()
	c.input = source
	c.mutex.Unlock()
}

func (c *Controller) IsPlayer() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.input != nil
}

// Validate reports setups that cannot produce finite forces.
func (c *Controller) Validate() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	var errs []error
	if len(c.wheels.Drive) == 0 {
		errs = append(errs, ErrNoDriveWheels)
	}
	if c.config.AllowDrift && c.config.SteerAngle == 0 {
		errs = append(errs, ErrZeroSteerAngle)
	}
	return errors.Join(errs...)
}

// Update runs the control law for one physics tick. The returned error is a
// diagnostic: the offending force was skipped and the rest of the tick still
// ran.
func (c *Controller) Update(tick uint64) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	pose := c.body.Pose()
	c.speed = c.body.Velocity().Dot(pose.Forward()) * MetersPerSecondToKmh

	if c.input != nil {
		shaper := InputShaper{
			TurnCurve:  c.config.TurnInputCurve,
			SteerAngle: c.config.SteerAngle,
		}
		throttle, steer := c.input.ReadAxes()
		c.throttle = shaper.ShapeThrottle(throttle)
		c.steering = shaper.ShapeSteering(steer)
	}

	drive := DriveController{
		Torque: TorqueModel{
			Curve:       c.config.MotorTorque,
			DiffGearing: c.config.DiffGearing,
		},
		Wheels: c.wheels,
	}

	drive.Steer(c.steering, c.config.SteerSpeed)
	drive.Reset()

	var errs []error

	mode, err := drive.Apply(c.speed, c.throttle)
	c.mode = mode
	if err != nil {
		errs = append(errs, fmt.Errorf("drive torque: %w", err))
	}

	if c.drift && c.config.AllowDrift {
		drift := DriftController{
			SteerAngle: c.config.SteerAngle,
			Intensity:  c.config.DriftIntensity,
		}
		force, torque, err := drift.Compute(pose, c.body.Mass(), c.speed, c.throttle, c.steering)
		if err != nil {
			errs = append(errs, fmt.Errorf("drift: %w", err))
		} else {
			c.body.AddForce(force)
			c.body.AddVelocityChangeTorque(torque)
		}
	}

	// Proportional to signed speed, so reversing pulls the body up.
	c.body.AddForce(pose.Up().Mul(-c.speed * c.config.Downforce))

	err = errors.Join(errs...)
	if err != nil && c.diagnostics.Allow() {
		log.Warn().
			Err(err).
			Uint64("tick", tick).
			Float64("speed", c.speed).
			Float64("throttle", c.throttle).
			Msg("vehicle skipped force computation")
	}
	return err
}

// IsGrounded reports whether every wheel touched the ground on the given
// tick. The result is cached per tick.
func (c *Controller) IsGrounded(tick uint64) bool {
	return c.contact.IsGrounded(tick)
}

// ResetPosition puts the body back at its spawn pose and stops it. Throttle
// and steering commands are kept.
func (c *Controller) ResetPosition() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.body.SetPose(c.spawn)
	c.body.SetVelocity(mgl64.Vec3{})
	c.body.SetAngularVelocity(mgl64.Vec3{})
}

func (c *Controller) SpawnPose() Pose {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.spawn
}

func (c *Controller) State() State {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	grounded, tick, _ := c.contact.LastSample()
	return State{
		Speed:        c.speed,
		Steering:     c.steering,
		Throttle:     c.throttle,
		Drift:        c.drift,
		Mode:         c.mode,
		Grounded:     grounded,
		GroundedTick: tick,
		Spawn:        c.spawn,
	}
}

// Speed is the signed forward speed in km/h measured on the last tick.
func (c *Controller) Speed() float64 {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.speed
}

func (c *Controller) Config() Config {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.config
}

// SetConfig replaces the tuning parameters, clamping them into range. The
// current steering command is re-clamped to the new steer angle.
func (c *Controller) SetConfig(config Config) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.config = config.Clamp()
	c.steering = clampSteering(c.steering, c.config.SteerAngle)
}

func (c *Controller) Throttle() float64 {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.throttle
}

// SetThrottle sets the throttle used while the controller has no input
// source.
func (c *Controller) SetThrottle(value float64) float64 {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.throttle = mgl64.Clamp(value, -1, 1)
	return c.throttle
}

func (c *Controller) Steering() float64 {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.steering
}

// SetSteering sets the steering command in degrees used while the
// controller has no input source.
func (c *Controller) SetSteering(degrees float64) float64 {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.steering = clampSteering(degrees, c.config.SteerAngle)
	return c.steering
}

func (c *Controller) Drift() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.drift
}

func (c *Controller) SetDrift(drift bool) {
	c.mutex.Lock()
	c.drift = drift
	c.mutex.Unlock()
}

func (c *Controller) AllowDrift() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.config.AllowDrift
}

func (c *Controller) SetAllowDrift(allow bool) {
	c.mutex.Lock()
	c.config.AllowDrift = allow
	c.mutex.Unlock()
}

func (c *Controller) DiffGearing() float64 {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.config.DiffGearing
}

func (c *Controller) SetDiffGearing(value float64) float64 {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.config.DiffGearing = mgl64.Clamp(value, MinDiffGearing, MaxDiffGearing)
	return c.config.DiffGearing
}

func (c *Controller) SteerAngle() float64 {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.config.SteerAngle
}

func (c *Controller) SetSteerAngle(value float64) float64 {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.config.SteerAngle = mgl64.Clamp(value, MinSteerAngle, MaxSteerAngle)
	c.steering = clampSteering(c.steering, c.config.SteerAngle)
	return c.config.SteerAngle
}

func (c *Controller) SteerSpeed() float64 {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.config.SteerSpeed
}

func (c *Controller) SetSteerSpeed(value float64) float64 {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.config.SteerSpeed = mgl64.Clamp(value, MinSteerSpeed, MaxSteerSpeed)
	return c.config.SteerSpeed
}

func (c *Controller) DriftIntensity() float64 {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.config.DriftIntensity
}

func (c *Controller) SetDriftIntensity(value float64) float64 {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.config.DriftIntensity = mgl64.Clamp(value, MinDriftIntensity, MaxDriftIntensity)
	return c.config.DriftIntensity
}

func (c *Controller) Downforce() float64 {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.config.Downforce
}

func (c *Controller) SetDownforce(value float64) float64 {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.config.Downforce = mgl64.Clamp(value, MinDownforce, MaxDownforce)
	return c.config.Downforce
}
