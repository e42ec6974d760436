package vehicle

import (
	"github.com/sasha-s/go-deadlock"
)

// ContactSampler answers whether every wheel of a vehicle touches the ground.
// The answer is computed at most once per tick; later queries within the same
// tick return the cached value even if the wheels changed in between.
type ContactSampler struct {
	wheels []WheelActuatorHandle

	mutex    deadlock.Mutex
	sampled  bool
	lastTick uint64
	grounded bool
}

func NewContactSampler(wheels []WheelActuatorHandle) *ContactSampler {
	return &ContactSampler{wheels: wheels}
}

// IsGrounded is true when all wheels are active and grounded. A sampler
// without wheels is vacuously grounded.
func (s *ContactSampler) IsGrounded(tick uint64) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.sampled && s.lastTick == tick {
		return s.grounded
	}

	s.sampled = true
	s.lastTick = tick
	s.grounded = true
	for _, wheel := range s.wheels {
		if !wheel.Active() || !wheel.Grounded() {
			s.grounded = false
			break
		}
	}

	return s.grounded
}

// LastSample returns the cached result and the tick it was taken on.
func (s *ContactSampler) LastSample() (grounded bool, tick uint64, ok bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.grounded, s.lastTick, s.sampled
}
