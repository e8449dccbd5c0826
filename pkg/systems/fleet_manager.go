package systems

import (
	"log"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/config"
)

// TickReport summarizes one FleetManager.Tick.
type TickReport struct {
	// Explosions 本 tick 爆炸的烟花数量
	Explosions int
	// Retired 本 tick 移除的烟花数量（0 或 1）
	Retired int
	// Active 本 tick 结束后仍在队列中的烟花数量
	Active int
}

// FleetManager owns the ordered list of active fireworks.
//
// Insertion order is launch order. Retirement is FIFO: only the front
// firework is checked each tick, on the assumption that fireworks expire in
// the order they were launched.
//
// The manager is not safe for concurrent use; the game loop drives it from
// a single goroutine.
type FleetManager struct {
	cfg       *config.FireworkConfig
	simulator *FireworkSystem
	fireworks []*components.Firework
}

// NewFleetManager creates an empty fleet driven by simulator.
func NewFleetManager(cfg *config.FireworkConfig, simulator *FireworkSystem) *FleetManager {
	return &FleetManager{
		cfg:       cfg,
		simulator: simulator,
		fireworks: make([]*components.Firework, 0),
	}
}

// Enqueue appends fw to the back of the fleet. The fleet takes ownership.
func (fm *FleetManager) Enqueue(fw *components.Firework) {
	fm.fireworks = append(fm.fireworks, fw)
	log.Printf("[FleetManager] Launched %s (smile=%v, particles=%d), active=%d",
		fw.ID, fw.Smile, len(fw.Particles), len(fm.fireworks))
}

// Tick advances every firework in launch order and retires the oldest one
// once its lead particle is older than fleet.retireAge.
func (fm *FleetManager) Tick() TickReport {
	var report TickReport

	for _, fw := range fm.fireworks {
		if fm.simulator.Advance(fw) {
			report.Explosions++
		}
	}

	if len(fm.fireworks) > 0 {
		front := fm.fireworks[0]
		if lead := front.Lead(); lead == nil || lead.Age > fm.cfg.Fleet.RetireAge {
			fm.fireworks[0] = nil
			fm.fireworks = fm.fireworks[1:]
			report.Retired = 1
			log.Printf("[FleetManager] Retired %s, active=%d", front.ID, len(fm.fireworks))
		}
	}

	report.Active = len(fm.fireworks)
	return report
}

// Flatten returns copies of every particle, in fleet order and burst order.
func (fm *FleetManager) Flatten() []components.Particle {
	return fm.AppendParticles(nil)
}

// AppendParticles appends copies of every particle to dst and returns the
// extended slice. Render loops pass dst[:0] to reuse the backing array.
func (fm *FleetManager) AppendParticles(dst []components.Particle) []components.Particle {
	for _, fw := range fm.fireworks {
		dst = append(dst, fw.Particles...)
	}
	if dst == nil {
		dst = []components.Particle{}
	}
	return dst
}

// Len returns the number of active fireworks.
func (fm *FleetManager) Len() int {
	return len(fm.fireworks)
}

// ParticleCount returns the number of particles across the fleet.
func (fm *FleetManager) ParticleCount() int {
	n := 0
	for _, fw := range fm.fireworks {
		n += len(fw.Particles)
	}
	return n
}

// Fireworks returns a snapshot of the fleet order. The fireworks themselves
// are still owned by the manager and must not be mutated.
func (fm *FleetManager) Fireworks() []*components.Firework {
	out := make([]*components.Firework, len(fm.fireworks))
	copy(out, fm.fireworks)
	return out
}

// Newest returns the most recently launched firework, or nil when the fleet is empty.
func (fm *FleetManager) Newest() *components.Firework {
	if len(fm.fireworks) == 0 {
		return nil
	}
	return fm.fireworks[len(fm.fireworks)-1]
}

// Clear drops every active firework.
func (fm *FleetManager) Clear() {
	log.Printf("[FleetManager] Cleared %d fireworks", len(fm.fireworks))
	clear(fm.fireworks)
	fm.fireworks = fm.fireworks[:0]
}
