package vehicle

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identityPose() Pose {
	return Pose{Rotation: mgl64.QuatIdent()}
}

func TestDriftForce(t *testing.T) {
	drift := DriftController{SteerAngle: 30, Intensity: 1}

	force, torque, err := drift.Compute(identityPose(), 700, 70, 1, 15)
	require.NoError(t, err)

	// -right scaled by 700 * 70 / 7 * 1 * 0.5
	assert.InDelta(t, -3500, force.X(), 1e-9)
	assert.InDelta(t, 0, force.Y(), 1e-9)
	assert.InDelta(t, 0, force.Z(), 1e-9)

	assert.InDelta(t, 0.05, torque.Y(), 1e-12)
	assert.InDelta(t, 0, torque.X(), 1e-12)
}

func TestDriftDirectionFlips(t *testing.T) {
	drift := DriftController{SteerAngle: 30, Intensity: 1}

	left, leftTorque, err := drift.Compute(identityPose(), 700, 70, 1, -15)
	require.NoError(t, err)
	right, rightTorque, err := drift.Compute(identityPose(), 700, 70, 1, 15)
	require.NoError(t, err)

	assert.True(t, left.ApproxEqual(right.Mul(-1)))
	assert.True(t, leftTorque.ApproxEqual(rightTorque.Mul(-1)))
}

func TestDriftIntensity(t *testing.T) {
	base := DriftController{SteerAngle: 30, Intensity: 1}
	double := DriftController{SteerAngle: 30, Intensity: 2}

	f1, t1, err := base.Compute(identityPose(), 1000, 40, 0.5, 10)
	require.NoError(t, err)
	f2, t2, err := double.Compute(identityPose(), 1000, 40, 0.5, 10)
	require.NoError(t, err)

	assert.True(t, f2.ApproxEqual(f1.Mul(2)))
	assert.True(t, t2.ApproxEqual(t1.Mul(2)))
}

func TestDriftWithoutSteering(t *testing.T) {
	drift := DriftController{SteerAngle: 30, Intensity: 1}

	// Without steering the flattened lateral axis is applied unscaled
	force, torque, err := drift.Compute(identityPose(), 1000, 100, 1, 0)
	require.NoError(t, err)
	assert.True(t, force.ApproxEqual(mgl64.Vec3{-1, 0, 0}))
	assert.True(t, torque.ApproxEqual(mgl64.Vec3{}))
}

func TestDriftFlattensLateralAxis(t *testing.T) {
	drift := DriftController{SteerAngle: 30, Intensity: 1}

	// Rolled 30 degrees around the forward axis
	pose := Pose{Rotation: mgl64.QuatRotate(math.Pi/6, LocalForward)}
	force, _, err := drift.Compute(pose, 1000, 100, 1, 0)
	require.NoError(t, err)

	assert.InDelta(t, 0, force.Y(), 1e-9)
	assert.InDelta(t, 1, force.Len(), 1e-9)
}

func TestDriftZeroSteerAngle(t *testing.T) {
	drift := DriftController{SteerAngle: 0, Intensity: 1}

	force, torque, err := drift.Compute(identityPose(), 1000, 100, 1, 0)
	assert.True(t, errors.Is(err, ErrZeroSteerAngle))
	assert.Equal(t, mgl64.Vec3{}, force)
	assert.Equal(t, mgl64.Vec3{}, torque)
}
