package loader

import (
	"fmt"

	"github.com/panyam/flowres/decl"
)

// LoadError is a problem in a tree file.
type LoadError struct {
	File string
	Pos  decl.Location
	Msg  string
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%s: %s", e.File, e.Pos.LineColStr(), e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Msg)
}
