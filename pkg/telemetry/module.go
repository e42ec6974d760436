// Package telemetry records a vehicle's per-tick state as a stream of CBOR
// values, one per tick.
package telemetry

import (
	"errors"
	"fmt"
	"io"

	"github.com/cfoust/acp/pkg/vehicle"

	"github.com/fxamacker/cbor/v2"
	"github.com/go-gl/mathgl/mgl64"
)

type Sample struct {
	Tick     uint64     `cbor:"tick"`
	Speed    float64    `cbor:"speed"`
	Throttle float64    `cbor:"throttle"`
	Steering float64    `cbor:"steering"`
	Drift    bool       `cbor:"drift"`
	Mode     string     `cbor:"mode"`
	Grounded bool       `cbor:"grounded"`
	Position [3]float64 `cbor:"position"`
	Heading  [3]float64 `cbor:"heading"`
}

// NewSample captures a controller state together with the body pose.
func NewSample(tick uint64, state vehicle.State, pose vehicle.Pose) Sample {
	return Sample{
		Tick:     tick,
		Speed:    state.Speed,
		Throttle: state.Throttle,
		Steering: state.Steering,
		Drift:    state.Drift,
		Mode:     state.Mode.String(),
		Grounded: state.Grounded,
		Position: pose.Position,
		Heading:  pose.Forward(),
	}
}

func (s Sample) PositionVec() mgl64.Vec3 { return mgl64.Vec3(s.Position) }

type Recorder struct {
	encoder *cbor.Encoder
	count   int
}

func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{encoder: cbor.NewEncoder(w)}
}

func (r *Recorder) Record(sample Sample) error {
	if err := r.encoder.Encode(sample); err != nil {
		return fmt.Errorf("could not encode sample for tick %d: %w", sample.Tick, err)
	}
	r.count++
	return nil
}

// Count is the number of samples written so far.
func (r *Recorder) Count() int { return r.count }

// Read decodes every sample in a recorded stream.
func Read(reader io.Reader) ([]Sample, error) {
	decoder := cbor.NewDecoder(reader)

	var samples []Sample
	for {
		var sample Sample
		err := decoder.Decode(&sample)
		if errors.Is(err, io.EOF) {
			return samples, nil
		}
		if err != nil {
			return samples, fmt.Errorf("could not decode sample %d: %w", len(samples), err)
		}
		samples = append(samples, sample)
	}
}
