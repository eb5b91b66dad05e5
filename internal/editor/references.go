package editor

import (
	"fmt"

	"github.com/google/uuid"
)

// ReferenceType is a semantic hint attached to a reference image. The tags
// steer the inference call; the core never enforces them.
type ReferenceType string

const (
	ReferenceStyle      ReferenceType = "style"
	ReferenceObject     ReferenceType = "object"
	ReferenceLighting   ReferenceType = "lighting"
	ReferenceBackground ReferenceType = "background"
)

// ParseReferenceTypes validates a set of type labels. Order is irrelevant and
// duplicates are dropped.
func ParseReferenceTypes(labels []string) ([]ReferenceType, error) {
	seen := make(map[ReferenceType]bool)
	var types []ReferenceType
	for _, label := range labels {
		t := ReferenceType(label)
		switch t {
		case ReferenceStyle, ReferenceObject, ReferenceLighting, ReferenceBackground:
		default:
			return nil, fmt.Errorf("unknown reference type %q", label)
		}
		if !seen[t] {
			seen[t] = true
			types = append(types, t)
		}
	}
	return types, nil
}

// ReferenceImage is an auxiliary image attached to the editing session. It is
// session-scoped: never persisted as part of committed history.
type ReferenceImage struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Types []ReferenceType `json:"types"`
	Image Image           `json:"-"`
}
