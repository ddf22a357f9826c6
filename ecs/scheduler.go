package ecs

import "time"

// DefaultStep is the fixed simulation step.
const DefaultStep = time.Second / 60

type Scheduler struct {
	systems []System
	step    time.Duration
}

func NewScheduler(systems ...System) *Scheduler {
	copied := append([]System(nil), systems...)
	return &Scheduler{systems: copied, step: DefaultStep}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// SetStep changes the fixed step; non-positive values are ignored.
func (s *Scheduler) SetStep(step time.Duration) {
	if step <= 0 {
		return
	}
	s.step = step
}

func (s *Scheduler) Step() time.Duration {
	return s.step
}

// Update advances the world clock by one step and runs every system in
// order. Cues not drained since the previous tick are dropped first.
func (s *Scheduler) Update(w *World) {
	if w == nil {
		return
	}
	w.events.flush()
	w.Advance(s.step)
	for _, system := range s.systems {
		system.Update(w)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
