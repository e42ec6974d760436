// Package sim is a small headless host for vehicle controllers: a yaw-only
// rigid body resting on a flat ground plane, and wheels that turn motor and
// brake torque into traction. It is meant for tooling and tests, not as a
// general physics engine.
package sim

import (
	"math"

	"github.com/cfoust/acp/pkg/vehicle"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultDrag              = 0.4257
	DefaultRollingResistance = 12.8
	DefaultAngularDamping    = 2.0
	// Yaw inertia per kilogram of mass
	DefaultInertiaFactor = 1.2
)

var (
	_ vehicle.RigidBodyHandle = &Body{}
)

type Body struct {
	// Aerodynamic drag, applied as -Drag * v * |v|
	Drag float64
	// Rolling resistance, applied as -RollingResistance * v
	RollingResistance float64
	AngularDamping    float64
	// Anchor is the world position of the body's parent. Local positions
	// are relative to it.
	Anchor mgl64.Vec3

	mass    float64
	inertia float64
	active  bool

	pose            vehicle.Pose
	velocity        mgl64.Vec3
	angularVelocity mgl64.Vec3

	force  mgl64.Vec3
	torque mgl64.Vec3

	wheels []*Wheel
}

func NewBody(mass float64, pose vehicle.Pose) *Body {
	if pose.Rotation == (mgl64.Quat{}) {
		pose.Rotation = mgl64.QuatIdent()
	}
	return &Body{
		Drag:              DefaultDrag,
		RollingResistance: DefaultRollingResistance,
		AngularDamping:    DefaultAngularDamping,
		mass:              mass,
		inertia:           mass * DefaultInertiaFactor,
		active:            true,
		pose:              pose,
	}
}

func (b *Body) Mass() float64 { return b.mass }

func (b *Body) Pose() vehicle.Pose     { return b.pose }
func (b *Body) SetPose(p vehicle.Pose) { b.pose = p }

func (b *Body) Velocity() mgl64.Vec3         { return b.velocity }
func (b *Body) SetVelocity(v mgl64.Vec3)     { b.velocity = v }
func (b *Body) AngularVelocity() mgl64.Vec3  { return b.angularVelocity }
func (b *Body) SetAngularVelocity(v mgl64.Vec3) { b.angularVelocity = v }

func (b *Body) AddForce(f mgl64.Vec3) {
	b.force = b.force.Add(f)
}

// AddForceAtPosition applies a force at a world-space offset from the body's
// origin, which also produces a torque.
func (b *Body) AddForceAtPosition(f, offset mgl64.Vec3) {
	b.force = b.force.Add(f)
	b.torque = b.torque.Add(offset.Cross(f))
}

func (b *Body) AddTorque(t mgl64.Vec3) {
	b.torque = b.torque.Add(t)
}

func (b *Body) AddVelocityChangeTorque(t mgl64.Vec3) {
	b.angularVelocity = b.angularVelocity.Add(t)
}

func (b *Body) Wheels() []*Wheel { return b.wheels }

func (b *Body) Active() bool        { return b.active }
func (b *Body) SetActive(active bool) { b.active = active }

func (b *Body) LocalPosition() mgl64.Vec3 {
	return b.pose.Position.Sub(b.Anchor)
}

func (b *Body) SetLocalPosition(p mgl64.Vec3) {
	b.pose.Position = b.Anchor.Add(p)
}

// Step integrates the accumulated forces over dt with semi-implicit Euler
// and clears the accumulators. Only rotation around the world up axis is
// simulated.
func (b *Body) Step(dt float64, gravity mgl64.Vec3) {
	horizontal := mgl64.Vec3{b.velocity.X(), 0, b.velocity.Z()}
	if speed := horizontal.Len(); speed > 0 {
		b.force = b.force.Sub(horizontal.Mul(b.Drag * speed))
		b.force = b.force.Sub(horizontal.Mul(b.RollingResistance))
	}

	acceleration := b.force.Mul(1 / b.mass).Add(gravity)
	b.velocity = b.velocity.Add(acceleration.Mul(dt))
	b.pose.Position = b.pose.Position.Add(b.velocity.Mul(dt))

	yaw := b.angularVelocity.Y() + b.torque.Y()/b.inertia*dt
	yaw *= math.Max(0, 1-b.AngularDamping*dt)
	b.angularVelocity = mgl64.Vec3{0, yaw, 0}
	b.pose.Rotation = mgl64.QuatRotate(yaw*dt, vehicle.LocalUp).
		Mul(b.pose.Rotation).
		Normalize()

	b.force = mgl64.Vec3{}
	b.torque = mgl64.Vec3{}
}

// settle keeps the body on top of the ground plane.
func (b *Body) settle(ground float64) {
	penetration := ground - b.pose.Position.Y()
	if len(b.wheels) > 0 {
		penetration = math.Inf(-1)
		for _, wheel := range b.wheels {
			penetration = math.Max(penetration, ground-wheel.bottom())
		}
	}
	if penetration <= 0 {
		return
	}

	b.pose.Position[1] += penetration
	if b.velocity.Y() < 0 {
		b.velocity[1] = 0
	}
}
