package favorites

// Set is an insertion-ordered set of restaurant names.
type Set struct {
	names []string
	index map[string]struct{}
}

func NewSet(names ...string) *Set {
	s := &Set{index: make(map[string]struct{}, len(names))}
	for _, n := range names {
		s.add(n)
	}
	return s
}

func (s *Set) add(name string) {
	if _, ok := s.index[name]; ok {
		return
	}
	s.index[name] = struct{}{}
	s.names = append(s.names, name)
}

func (s *Set) remove(name string) {
	if _, ok := s.index[name]; !ok {
		return
	}
	delete(s.index, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
}

func (s *Set) Contains(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[name]
	return ok
}

// Toggle adds name if absent and removes it if present. It reports whether
// name is in the set afterwards.
func (s *Set) Toggle(name string) bool {
	if s.Contains(name) {
		s.remove(name)
		return false
	}
	s.add(name)
	return true
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// Names returns the members in insertion order.
func (s *Set) Names() []string {
	if s == nil {
		return []string{}
	}
	return append([]string{}, s.names...)
}
