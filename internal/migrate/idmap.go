package migrate

// IDMap is the per-run translation table from a legacy primary key to the
// target-store id assigned on insert.
//
// An IDMap is always entity-scoped: one instance per entity type, built fresh
// for each migration run and never persisted. Dependent migrators receive the
// maps they need as explicit parameters; there is no shared global namespace.
// Entries are recorded incrementally and never removed.
type IDMap struct {
	entity string
	ids    map[string]string
}

// NewIDMap creates an empty mapping for the named entity.
func NewIDMap(entity string) *IDMap {
	return &IDMap{entity: entity, ids: make(map[string]string)}
}

// Entity returns the entity type this mapping is scoped to.
func (m *IDMap) Entity() string {
	return m.entity
}

// Record stores the pair (oldID, newID).
func (m *IDMap) Record(oldID, newID string) {
	m.ids[oldID] = newID
}

// Resolve looks up the target id assigned to oldID.
func (m *IDMap) Resolve(oldID string) (string, bool) {
	newID, ok := m.ids[oldID]
	return newID, ok
}

// Len returns the number of recorded pairs.
func (m *IDMap) Len() int {
	return len(m.ids)
}

// Pairs returns a copy of the mapping for reporting.
func (m *IDMap) Pairs() map[string]string {
	pairs := make(map[string]string, len(m.ids))
	for oldID, newID := range m.ids {
		pairs[oldID] = newID
	}
	return pairs
}
