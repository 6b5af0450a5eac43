package checker

import "classcify/internal/types"

// Scope is one frame of the symbol table: a flat map of bindings local
// to this frame, chained to its enclosing frame. Frames are pushed on
// entering a constructor/method/top-level block and discarded when the
// type checker finishes with it — there is no frame per nested
// if/while, matching the front end's block model.
type Scope struct {
	parent *Scope
	vars   map[string]types.Type
}

// NewScope opens a frame nested inside parent (nil for the outermost).
func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, vars: make(map[string]types.Type)}
}

// Declare introduces name into this frame and reports whether it did.
// It returns false when name is already bound in this same frame
// (redeclaration), leaving the existing binding untouched.
func (s *Scope) Declare(name string, t types.Type) bool {
	if _, exists := s.vars[name]; exists {
		return false
	}
	s.vars[name] = t
	return true
}

// Lookup walks outward from this frame to find name's type.
func (s *Scope) Lookup(name string) (types.Type, bool) {
	for f := s; f != nil; f = f.parent {
		if t, ok := f.vars[name]; ok {
			return t, true
		}
	}
	return types.Type{}, false
}
