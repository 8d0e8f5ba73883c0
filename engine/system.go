package engine

// System is one update pass run once per tick over the entities that qualify
// for it. Systems run strictly sequentially in priority order; a system may
// create entities (visible from the next tick) or kill them (visible
// immediately) during its pass.
type System interface {
	Update(w *World, dt float64)
	Priority() int // lower runs first
}
