package sim

import (
	"math"

	"github.com/cfoust/acp/pkg/vehicle"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultWheelRadius = 0.35
	// Brake force in newtons per unit of brake torque
	DefaultBrakeForce = 2000.0
	// Maximum lateral acceleration a wheel's share of the body can get
	// from grip, in m/s²
	DefaultGrip = 12.0
	// How far above the ground a wheel still counts as touching it
	ContactTolerance = 0.02
)

var (
	_ vehicle.WheelActuatorHandle = &Wheel{}
)

type Wheel struct {
	// Mount is the wheel center in body space.
	Mount      mgl64.Vec3
	Radius     float64
	BrakeForce float64
	Grip       float64

	body     *Body
	active   bool
	grounded bool

	steerAngle  float64
	motorTorque float64
	brakeTorque float64
}

// NewWheel attaches a wheel to the body at the given body-space mount point.
func NewWheel(body *Body, mount mgl64.Vec3, radius float64) *Wheel {
	w := &Wheel{
		Mount:      mount,
		Radius:     radius,
		BrakeForce: DefaultBrakeForce,
		Grip:       DefaultGrip,
		body:       body,
		active:     true,
	}
	body.wheels = append(body.wheels, w)
	return w
}

func (w *Wheel) Active() bool          { return w.active }
func (w *Wheel) SetActive(active bool) { w.active = active }

// Grounded reports the contact state sampled at the start of the tick.
func (w *Wheel) Grounded() bool { return w.grounded }

func (w *Wheel) SteerAngle() float64             { return w.steerAngle }
func (w *Wheel) SetSteerAngle(degrees float64)   { w.steerAngle = degrees }
func (w *Wheel) MotorTorque() float64            { return w.motorTorque }
func (w *Wheel) SetMotorTorque(torque float64)   { w.motorTorque = torque }
func (w *Wheel) BrakeTorque() float64            { return w.brakeTorque }
func (w *Wheel) SetBrakeTorque(torque float64)   { w.brakeTorque = torque }

// offset is the wheel center relative to the body origin in world space.
func (w *Wheel) offset() mgl64.Vec3 {
	return w.body.pose.Rotation.Rotate(w.Mount)
}

func (w *Wheel) bottom() float64 {
	return w.body.pose.Position.Y() + w.offset().Y() - w.Radius
}

func (w *Wheel) sample(ground float64) {
	w.grounded = w.bottom()-ground <= ContactTolerance
}

// apply pushes the body with this wheel's traction, brake and grip forces.
func (w *Wheel) apply(dt float64) {
	if !w.active || !w.grounded || w.Radius <= 0 {
		return
	}

	body := w.body
	offset := w.offset()

	steer := mgl64.QuatRotate(mgl64.DegToRad(w.steerAngle), vehicle.LocalUp)
	heading := body.pose.Rotation.Mul(steer).Rotate(vehicle.LocalForward)
	heading[1] = 0
	if heading.Len() < 1e-9 {
		return
	}
	heading = heading.Normalize()
	side := mgl64.Vec3{heading.Z(), 0, -heading.X()}

	velocity := body.velocity.Add(body.angularVelocity.Cross(offset))
	velocity[1] = 0

	share := body.mass / float64(len(body.wheels))

	force := heading.Mul(w.motorTorque / w.Radius)

	// Neither brakes nor grip may push past a standstill in a single step.
	if along := velocity.Dot(heading); w.brakeTorque > 0 && along != 0 {
		brake := math.Min(w.brakeTorque*w.BrakeForce, math.Abs(along)*share/dt)
		force = force.Sub(heading.Mul(math.Copysign(brake, along)))
	}

	if lateral := velocity.Dot(side); lateral != 0 {
		grip := math.Min(w.Grip*share, math.Abs(lateral)*share/dt)
		force = force.Sub(side.Mul(math.Copysign(grip, lateral)))
	}

	body.AddForceAtPosition(force, offset)
}
