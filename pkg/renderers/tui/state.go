package tui

// State tracks collected answers in prompt order along with server-provided
// errors keyed by parameter id.
type State struct {
	order  []string
	values map[string]any
	errors map[string][]string
}

// NewState seeds the state with prefilled values and errors.
func NewState(prefill map[string]any, errs map[string][]string) *State {
	s := &State{
		values: make(map[string]any, len(prefill)),
		errors: make(map[string][]string, len(errs)),
	}
	for key, value := range prefill {
		s.values[key] = value
	}
	for key, messages := range errs {
		s.errors[key] = append([]string(nil), messages...)
	}
	return s
}

// Values returns a copy of the collected values.
func (s *State) Values() map[string]any {
	if s == nil {
		return nil
	}
	out := make(map[string]any, len(s.values))
	for key, value := range s.values {
		out[key] = value
	}
	return out
}

// Order lists the answered fields in prompt order.
func (s *State) Order() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.order...)
}

// ErrorsFor returns the errors attached to a field.
func (s *State) ErrorsFor(name string) []string {
	if s == nil {
		return nil
	}
	return s.errors[name]
}

// Value returns the prefilled or collected value for a field.
func (s *State) Value(name string) (any, bool) {
	if s == nil {
		return nil, false
	}
	value, ok := s.values[name]
	return value, ok
}

// Set records an answer and clears any error attached to the field.
func (s *State) Set(name string, value any) {
	if !s.answered(name) {
		s.order = append(s.order, name)
	}
	s.values[name] = value
	delete(s.errors, name)
}

func (s *State) answered(name string) bool {
	for _, existing := range s.order {
		if existing == name {
			return true
		}
	}
	return false
}
