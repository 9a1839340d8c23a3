package ml

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownCategory is returned when an identifier was not seen during fitting
var ErrUnknownCategory = errors.New("ml: unknown category")

// Encoder is a fitted bijection from string identifiers to dense integer
// codes. The category set is fixed at fitting time; identifiers outside it
// are rejected with ErrUnknownCategory rather than coerced to a default.
type Encoder struct {
	Classes []string

	index map[string]int
}

// FitEncoder learns the category set from the given identifiers.
// Classes are sorted, so fitting does not depend on input order.
func FitEncoder(ids []string) *Encoder {
	uniq := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		uniq[id] = struct{}{}
	}
	classes := make([]string, 0, len(uniq))
	for id := range uniq {
		classes = append(classes, id)
	}
	sort.Strings(classes)

	e := &Encoder{Classes: classes}
	e.reindex()
	return e
}

// reindex rebuilds the lookup map from Classes, needed after decoding
// a persisted encoder
func (e *Encoder) reindex() {
	e.index = make(map[string]int, len(e.Classes))
	for i, c := range e.Classes {
		e.index[c] = i
	}
}

// Transform returns the code for an identifier
func (e *Encoder) Transform(id string) (int, error) {
	code, ok := e.index[id]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, id)
	}
	return code, nil
}

// InverseTransform returns the identifier for a code
func (e *Encoder) InverseTransform(code int) (string, error) {
	if code < 0 || code >= len(e.Classes) {
		return "", fmt.Errorf("ml: code %d out of range [0,%d)", code, len(e.Classes))
	}
	return e.Classes[code], nil
}

// Contains reports whether the identifier was seen during fitting
func (e *Encoder) Contains(id string) bool {
	_, ok := e.index[id]
	return ok
}

// Len returns the number of known categories
func (e *Encoder) Len() int {
	return len(e.Classes)
}
