package core

// Entity is a handle to an entity slot in the world. It pairs the slot index
// with a generation counter so that a handle held across the referent's death
// is detected as stale instead of silently aliasing a recycled slot.
type Entity struct {
	ID  uint32
	Gen uint32
}

// NilEntity is the zero handle. It never resolves to a live entity.
var NilEntity = Entity{}

// IsNil reports whether e is the zero handle.
func (e Entity) IsNil() bool {
	return e == NilEntity
}
