package network

// IDSource hands out monotonically increasing point identities.
// It is owned by a Simulation and survives regeneration of the point list.
type IDSource struct {
	next int
}

// Next returns the next unused id.
func (s *IDSource) Next() int {
	id := s.next
	s.next++
	return id
}

// Peek returns the id Next would return without consuming it.
func (s *IDSource) Peek() int {
	return s.next
}
