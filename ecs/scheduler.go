package ecs

type System interface {
	Update(w *World)
}

// Scheduler runs one fixed tick: every system in insertion order, then the
// event queue is cleared so events live exactly one tick.
type Scheduler struct {
	systems []System
	ticks   uint64
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

// Add appends a system. Nil systems are dropped.
func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(w *World) {
	if w == nil {
		return
	}
	for _, system := range s.systems {
		system.Update(w)
	}
	w.events.flush()
	s.ticks++
}

// Ticks is the number of completed Update calls.
func (s *Scheduler) Ticks() uint64 {
	return s.ticks
}

func (s *Scheduler) Systems() []System {
	return append([]System(nil), s.systems...)
}
