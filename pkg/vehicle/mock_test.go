package vehicle

import (
	"github.com/go-gl/mathgl/mgl64"
)

var (
	_ RigidBodyHandle     = &mockBody{}
	_ WheelActuatorHandle = &mockWheel{}
)

type mockBody struct {
	mass            float64
	pose            Pose
	velocity        mgl64.Vec3
	angularVelocity mgl64.Vec3

	forces  []mgl64.Vec3
	torques []mgl64.Vec3
}

func newMockBody() *mockBody {
	return &mockBody{
		mass: 1000,
		pose: Pose{Rotation: mgl64.QuatIdent()},
	}
}

func (b *mockBody) Mass() float64                        { return b.mass }
func (b *mockBody) Pose() Pose                           { return b.pose }
func (b *mockBody) SetPose(p Pose)                       { b.pose = p }
func (b *mockBody) Velocity() mgl64.Vec3                 { return b.velocity }
func (b *mockBody) SetVelocity(v mgl64.Vec3)             { b.velocity = v }
func (b *mockBody) AngularVelocity() mgl64.Vec3          { return b.angularVelocity }
func (b *mockBody) SetAngularVelocity(v mgl64.Vec3)      { b.angularVelocity = v }
func (b *mockBody) AddForce(f mgl64.Vec3)                { b.forces = append(b.forces, f) }
func (b *mockBody) AddVelocityChangeTorque(t mgl64.Vec3) { b.torques = append(b.torques, t) }

// setSpeed gives the body a forward velocity in km/h.
func (b *mockBody) setSpeed(kmh float64) {
	b.velocity = b.pose.Forward().Mul(kmh / MetersPerSecondToKmh)
}

func (b *mockBody) totalForce() mgl64.Vec3 {
	var sum mgl64.Vec3
	for _, f := range b.forces {
		sum = sum.Add(f)
	}
	return sum
}

type mockWheel struct {
	active   bool
	grounded bool

	steerAngle  float64
	motorTorque float64
	brakeTorque float64

	groundedCalls int
}

func newMockWheel() *mockWheel {
	return &mockWheel{active: true, grounded: true}
}

func (w *mockWheel) Active() bool { return w.active }

func (w *mockWheel) Grounded() bool {
	w.groundedCalls++
	return w.grounded
}

func (w *mockWheel) SteerAngle() float64         { return w.steerAngle }
func (w *mockWheel) SetSteerAngle(d float64)     { w.steerAngle = d }
func (w *mockWheel) SetMotorTorque(t float64)    { w.motorTorque = t }
func (w *mockWheel) SetBrakeTorque(t float64)    { w.brakeTorque = t }

type mockInput struct {
	throttle, steer float64
}

func (i *mockInput) ReadAxes() (float64, float64) { return i.throttle, i.steer }

// fourWheels is a front-steer, rear-drive layout.
func fourWheels() (Wheels, []*mockWheel) {
	fl, fr, rl, rr := newMockWheel(), newMockWheel(), newMockWheel(), newMockWheel()
	return Wheels{
		All:   []WheelActuatorHandle{fl, fr, rl, rr},
		Steer: []WheelActuatorHandle{fl, fr},
		Drive: []WheelActuatorHandle{rl, rr},
	}, []*mockWheel{fl, fr, rl, rr}
}
