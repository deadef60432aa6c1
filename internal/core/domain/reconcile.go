package domain

// ReconciliationSet is the set of primary identifiers already present in
// one destination collection. It is built fresh per run and never persisted.
type ReconciliationSet struct {
	ids map[string]struct{}

	// Skipped counts catalog items without a database id identifier.
	Skipped int
}

// NewReconciliationSet creates a set holding the given identifiers.
func NewReconciliationSet(ids ...string) *ReconciliationSet {
	s := &ReconciliationSet{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts an identifier.
func (s *ReconciliationSet) Add(id string) {
	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}
	s.ids[id] = struct{}{}
}

// Contains reports whether the identifier is present.
func (s *ReconciliationSet) Contains(id string) bool {
	if s == nil {
		return false
	}
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of identifiers.
func (s *ReconciliationSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}
