package vehicle

import (
	"errors"
	"testing"

	"github.com/cfoust/acp/pkg/curve"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateTorque(t *testing.T) {
	model := TorqueModel{Curve: DefaultMotorTorque(), DiffGearing: 4}

	assert.Equal(t, 200.0, model.EvaluateTorque(0))
	assert.Equal(t, 300.0, model.EvaluateTorque(50))
	assert.Equal(t, 0.0, model.EvaluateTorque(200))
	// Signed speed is sampled as is
	assert.Equal(t, 200.0, model.EvaluateTorque(-20))
}

func TestGearedTorqueScaling(t *testing.T) {
	model := TorqueModel{Curve: curve.New(curve.Key(0, 100)), DiffGearing: 4}

	base, err := model.GearedTorque(1, 0, 2)
	require.NoError(t, err)
	assert.InDelta(t, 200, base, 1e-9)

	model.DiffGearing = 8
	doubled, err := model.GearedTorque(1, 0, 2)
	require.NoError(t, err)
	assert.InDelta(t, 2*base, doubled, 1e-9)

	model.DiffGearing = 4
	halved, err := model.GearedTorque(1, 0, 4)
	require.NoError(t, err)
	assert.InDelta(t, base/2, halved, 1e-9)

	partial, err := model.GearedTorque(-0.5, 0, 2)
	require.NoError(t, err)
	assert.InDelta(t, -base/2, partial, 1e-9)
}

func TestGearedTorqueNoDriveWheels(t *testing.T) {
	model := TorqueModel{Curve: DefaultMotorTorque(), DiffGearing: 4}

	_, err := model.GearedTorque(1, 0, 0)
	assert.True(t, errors.Is(err, ErrNoDriveWheels))

	var configErr *ConfigurationError
	assert.True(t, errors.As(err, &configErr))

	torque, err := model.GearedTorque(0, 0, 0)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, torque)
}
