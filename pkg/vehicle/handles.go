package vehicle

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Local body axes. The body looks down +Z with +X to its right and +Y up.
var (
	LocalForward = mgl64.Vec3{0, 0, 1}
	LocalRight   = mgl64.Vec3{1, 0, 0}
	LocalUp      = mgl64.Vec3{0, 1, 0}
)

type Pose struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

func (p Pose) Forward() mgl64.Vec3 { return p.Rotation.Rotate(LocalForward) }
func (p Pose) Right() mgl64.Vec3   { return p.Rotation.Rotate(LocalRight) }
func (p Pose) Up() mgl64.Vec3      { return p.Rotation.Rotate(LocalUp) }

// RigidBodyHandle is the host's rigid body. The controller only reads its
// kinematic state and queues forces on it; integration belongs to the host.
type RigidBodyHandle interface {
	Mass() float64

	Pose() Pose
	SetPose(Pose)

	// Velocity is the linear velocity in world space, in m/s.
	Velocity() mgl64.Vec3
	SetVelocity(mgl64.Vec3)
	AngularVelocity() mgl64.Vec3
	SetAngularVelocity(mgl64.Vec3)

	// AddForce accumulates a world-space force for the current step.
	AddForce(mgl64.Vec3)
	// AddVelocityChangeTorque changes the angular velocity immediately,
	// ignoring the body's inertia.
	AddVelocityChangeTorque(mgl64.Vec3)
}

// WheelActuatorHandle is one of the host's wheel colliders. Implementations
// must be comparable (usually a pointer) so wheel sets can be deduplicated.
type WheelActuatorHandle interface {
	// Active reports whether the wheel's host object is enabled.
	Active() bool
	Grounded() bool

	SteerAngle() float64
	SetSteerAngle(degrees float64)
	SetMotorTorque(float64)
	SetBrakeTorque(float64)
}

// Wheels binds a vehicle to its wheel actuators. Steer and Drive are subsets
// of All and may overlap. When All is empty it is the union of the subsets.
type Wheels struct {
	All   []WheelActuatorHandle
	Steer []WheelActuatorHandle
	Drive []WheelActuatorHandle
}

func (w Wheels) normalize() Wheels {
	seen := make(map[WheelActuatorHandle]struct{})
	all := make([]WheelActuatorHandle, 0, len(w.All)+len(w.Steer)+len(w.Drive))

	add := func(wheels []WheelActuatorHandle) {
		for _, wheel := range wheels {
			if wheel == nil {
				continue
			}
			if _, ok := seen[wheel]; ok {
				continue
			}
			seen[wheel] = struct{}{}
			all = append(all, wheel)
		}
	}

	add(w.All)
	if len(w.All) == 0 {
		add(w.Steer)
		add(w.Drive)
	}

	return Wheels{
		All:   all,
		Steer: compact(w.Steer),
		Drive: compact(w.Drive),
	}
}

func compact(wheels []WheelActuatorHandle) []WheelActuatorHandle {
	out := make([]WheelActuatorHandle, 0, len(wheels))
	for _, wheel := range wheels {
		if wheel != nil {
			out = append(out, wheel)
		}
	}
	return out
}
