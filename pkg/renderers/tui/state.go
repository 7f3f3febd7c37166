package tui

import "github.com/goliatone/go-hotelconfig/pkg/generator"

// State tracks what the last generate produced: the field marks of a failed
// run and the text of the last successful one. Marks are replaced wholesale
// on every generate.
type State struct {
	marks  map[string][]string
	output *generator.Output
}

// NewState returns an empty state.
func NewState() *State {
	return &State{marks: make(map[string][]string)}
}

// Apply records the outcome of a generate run. A failed run keeps the
// previous output so it can still be exported.
func (s *State) Apply(out generator.Output, err error) {
	if s == nil {
		return
	}
	s.marks = out.Validation.Fields()
	if s.marks == nil {
		s.marks = make(map[string][]string)
	}
	if err == nil && len(out.JSON) > 0 {
		copied := out
		s.output = &copied
	}
}

// Marked reports whether path was rejected by the last generate.
func (s *State) Marked(path string) bool {
	if s == nil {
		return false
	}
	return len(s.marks[path]) > 0
}

// MarksFor returns the messages attached to path.
func (s *State) MarksFor(path string) []string {
	if s == nil {
		return nil
	}
	return s.marks[path]
}

// Clear drops the mark on path, typically after the field was edited.
func (s *State) Clear(path string) {
	if s == nil {
		return
	}
	delete(s.marks, path)
}

// Output returns the last generated JSON and whether one exists.
func (s *State) Output() (string, bool) {
	if s == nil || s.output == nil {
		return "", false
	}
	return string(s.output.JSON), true
}
