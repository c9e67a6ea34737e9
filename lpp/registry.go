package lpp

// Registry maps 8-bit type identifiers to field descriptors. A registry
// is created preloaded with the standard Cayenne LPP v1 table; standard
// entries are never removed or overwritten for the lifetime of the
// registry. Only custom entries may be added or removed.
//
// A Registry is plain mutable state. Concurrent Register/Unregister calls
// require external synchronization; concurrent reads against a registry
// that is not being mutated are safe.
type Registry struct {
	types map[byte]DataType
}

// NewRegistry creates a registry preloaded with the standard type table.
func NewRegistry() *Registry {
	r := &Registry{
		types: make(map[byte]DataType),
	}
	for _, dt := range standardTypes() {
		r.types[dt.ID] = dt
	}
	return r
}

// Register inserts a custom descriptor. It fails without mutation if the
// id is already taken (standard or custom), fn is nil, or size is not at
// least 1. The name is not required to be unique or non-empty.
func (r *Registry) Register(id byte, name string, size int, fn DecodeFunc) bool {
	if _, exists := r.types[id]; exists {
		return false
	}
	if fn == nil {
		return false
	}
	if size < 1 {
		return false
	}

	r.types[id] = DataType{
		ID:       id,
		Name:     name,
		Size:     size,
		Standard: false,
		Decode:   fn,
	}
	return true
}

// Unregister removes a custom descriptor. It fails without mutation if
// the id is absent or belongs to a standard type.
func (r *Registry) Unregister(id byte) bool {
	dt, exists := r.types[id]
	if !exists {
		return false
	}
	if dt.Standard {
		return false
	}

	delete(r.types, id)
	return true
}

// Contains reports whether any descriptor, standard or custom, is
// registered for id.
func (r *Registry) Contains(id byte) bool {
	_, exists := r.types[id]
	return exists
}

// Lookup resolves id to its descriptor.
func (r *Registry) Lookup(id byte) (DataType, bool) {
	dt, exists := r.types[id]
	return dt, exists
}

// Types returns all registered descriptors in ascending id order.
func (r *Registry) Types() []DataType {
	out := make([]DataType, 0, len(r.types))
	for id := 0; id <= 0xFF; id++ {
		if dt, exists := r.types[byte(id)]; exists {
			out = append(out, dt)
		}
	}
	return out
}
