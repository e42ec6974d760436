package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcess(t *testing.T) {
	// Default config
	config, err := Process([]string{})
	require.NoError(t, err)
	assert.Equal(t, 4.0, config.Vehicle.DiffGearing)
	assert.Len(t, config.Wheels, 4)
	assert.Len(t, config.Vehicle.MotorTorque, 3)
	assert.NotEmpty(t, config.Scenario.Segments)

	dir := t.TempDir()

	// yaml config
	{
		yaml := filepath.Join(dir, "config.yaml")
		err = os.WriteFile(yaml, []byte(`
vehicle:
  diffGearing: 8
  steerAngle: 45
`), 0644)
		require.NoError(t, err)
		config, err = Process([]string{yaml})
		require.NoError(t, err)
		assert.Equal(t, 8.0, config.Vehicle.DiffGearing)
		assert.Equal(t, 45.0, config.Vehicle.SteerAngle)

		// Everything else comes from the schema defaults
		assert.Equal(t, 0.2, config.Vehicle.SteerSpeed)
		assert.Equal(t, 1200.0, config.Body.Mass)
		assert.Equal(t, 50, config.Scenario.TickRate)
		assert.Empty(t, config.Scenario.Segments)
		require.Len(t, config.Wheels, 4)
		assert.True(t, config.Wheels[0].Active)
		assert.Equal(t, 0.35, config.Wheels[0].Radius)
	}

	// json config
	{
		json := filepath.Join(dir, "config.json")
		err = os.WriteFile(json, []byte(`{
  "vehicle": {
    "downforce": 3.5
  },
  "scenario": {
    "segments": [{"ticks": 10, "throttle": 1}]
  }
}`), 0644)
		require.NoError(t, err)
		config, err = Process([]string{json})
		require.NoError(t, err)
		assert.Equal(t, 3.5, config.Vehicle.Downforce)
		require.Len(t, config.Scenario.Segments, 1)
		assert.Equal(t, 10, config.Scenario.Segments[0].Ticks)
		assert.Equal(t, 1.0, config.Scenario.Segments[0].Throttle)
	}

	// multiple yaml
	{
		yaml1 := filepath.Join(dir, "config1.yaml")
		err = os.WriteFile(yaml1, []byte(`
vehicle:
  steerSpeed: 0.5
`), 0644)
		require.NoError(t, err)

		yaml2 := filepath.Join(dir, "config2.yaml")
		err = os.WriteFile(yaml2, []byte(`
wheels:
  - name: front
    position: [0, 0, 1]
    steer: true
  - name: back
    position: [0, 0, -1]
    drive: true
    radius: 0.4
`), 0644)
		require.NoError(t, err)
		config, err = Process([]string{yaml1, yaml2})
		require.NoError(t, err)
		assert.Equal(t, 0.5, config.Vehicle.SteerSpeed)
		require.Len(t, config.Wheels, 2)
		assert.Equal(t, "back", config.Wheels[1].Name)
		assert.Equal(t, 0.4, config.Wheels[1].Radius)
		assert.True(t, config.Wheels[1].Drive)
	}
}

func TestProcessRejectsOutOfRange(t *testing.T) {
	dir := t.TempDir()

	for name, body := range map[string]string{
		"gearing":   "vehicle:\n  diffGearing: 20\n",
		"steer":     "vehicle:\n  steerAngle: -1\n",
		"downforce": "vehicle:\n  downforce: 0.1\n",
		"segment":   "scenario:\n  segments:\n    - ticks: 0\n",
		"throttle":  "scenario:\n  segments:\n    - ticks: 5\n      throttle: 2\n",
	} {
		path := filepath.Join(dir, name+".yaml")
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))

		_, err := Process([]string{path})
		assert.Error(t, err, name)
	}
}

func TestProcessBadFiles(t *testing.T) {
	dir := t.TempDir()

	_, err := Process([]string{filepath.Join(dir, "missing.yaml")})
	assert.Error(t, err)

	txt := filepath.Join(dir, "config.txt")
	require.NoError(t, os.WriteFile(txt, []byte("vehicle: {}"), 0644))
	_, err = Process([]string{txt})
	assert.Error(t, err)
}

func TestConversion(t *testing.T) {
	config, err := Process([]string{})
	require.NoError(t, err)

	vc := config.VehicleConfig()
	assert.Equal(t, 30.0, vc.SteerAngle)
	assert.True(t, vc.AllowDrift)
	assert.Equal(t, 200.0, vc.MotorTorque.Evaluate(0))
	assert.InDelta(t, 0.5, vc.TurnInputCurve.Evaluate(0.5), 1e-9)

	pose := config.SpawnPose()
	assert.Equal(t, 0.35, pose.Position.Y())
	assert.InDelta(t, 1, pose.Forward().Z(), 1e-9)

	specs := config.WheelSpecs()
	require.Len(t, specs, 4)
	assert.True(t, specs[0].Steer)
	assert.True(t, specs[3].Drive)
	assert.Equal(t, -1.3, specs[3].Mount.Z())

	assert.Equal(t, 0.02, config.Scenario.TickDuration())
	assert.Equal(t, 451, config.Scenario.TotalTicks())
}
