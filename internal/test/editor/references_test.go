package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"ktirio-backend/internal/editor"
)

func TestParseReferenceTypes_Valid(t *testing.T) {
	types, err := editor.ParseReferenceTypes([]string{"style", "object", "lighting", "background"})

	assert.NoError(t, err)
	assert.Equal(t, []editor.ReferenceType{
		editor.ReferenceStyle,
		editor.ReferenceObject,
		editor.ReferenceLighting,
		editor.ReferenceBackground,
	}, types)
}

func TestParseReferenceTypes_DropsDuplicates(t *testing.T) {
	types, err := editor.ParseReferenceTypes([]string{"style", "style", "object"})

	assert.NoError(t, err)
	assert.Equal(t, []editor.ReferenceType{editor.ReferenceStyle, editor.ReferenceObject}, types)
}

func TestParseReferenceTypes_RejectsUnknown(t *testing.T) {
	_, err := editor.ParseReferenceTypes([]string{"style", "texture"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "texture")
}
