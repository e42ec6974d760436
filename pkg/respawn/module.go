// Package respawn resets every active vehicle in a scene at once, for
// example when the tracked anchor they are parented to moves.
package respawn

import (
	fp "github.com/repeale/fp-go"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog/log"
	"github.com/sasha-s/go-deadlock"
)

// Vehicle is anything that can be put back at its spawn pose.
type Vehicle interface {
	ResetPosition()
}

// Node is the vehicle's scene node under its parent anchor.
type Node interface {
	Active() bool
	SetLocalPosition(mgl64.Vec3)
}

type entry struct {
	vehicle Vehicle
	node    Node
}

func (e entry) active() bool {
	return e.node == nil || e.node.Active()
}

type Manager struct {
	mutex   deadlock.Mutex
	entries []entry
}

func NewManager() *Manager {
	return &Manager{}
}

// Register adds a vehicle. node may be nil for vehicles without a scene
// node; they are always considered active.
func (m *Manager) Register(vehicle Vehicle, node Node) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for i, e := range m.entries {
		if e.vehicle == vehicle {
			m.entries[i].node = node
			return
		}
	}
	m.entries = append(m.entries, entry{vehicle: vehicle, node: node})
}

func (m *Manager) Unregister(vehicle Vehicle) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.entries = fp.Filter(func(e entry) bool { return e.vehicle != vehicle })(m.entries)
}

// Active returns the registered vehicles whose node is enabled.
func (m *Manager) Active() []Vehicle {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return fp.Map(func(e entry) Vehicle { return e.vehicle })(
		fp.Filter(entry.active)(m.entries),
	)
}

// ResetAll respawns every active vehicle and recentres it on its parent. It
// returns the number of vehicles reset.
func (m *Manager) ResetAll() int {
	m.mutex.Lock()
	entries := fp.Filter(entry.active)(m.entries)
	m.mutex.Unlock()

	for _, e := range entries {
		e.vehicle.ResetPosition()
		if e.node != nil {
			e.node.SetLocalPosition(mgl64.Vec3{})
		}
	}

	log.Debug().Int("vehicles", len(entries)).Msg("reset vehicles")
	return len(entries)
}
