package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"ktirio-backend/internal/editor"
)

func testRefs(names ...string) []editor.ReferenceImage {
	refs := make([]editor.ReferenceImage, len(names))
	for i, name := range names {
		refs[i].Name = name
	}
	return refs
}

func TestComplete_InactiveWithoutSlash(t *testing.T) {
	c := editor.Complete("adicionar um sofá", 10, testRefs("sofa-azul"))

	assert.False(t, c.Active)
}

func TestComplete_FindsTokenBeforeCursor(t *testing.T) {
	text := "usar /so aqui"
	c := editor.Complete(text, 8, testRefs("sofa-azul", "mesa", "tapete"))

	assert.True(t, c.Active)
	assert.Equal(t, "so", c.Query)
	assert.Equal(t, 5, c.Start)
	assert.Equal(t, 8, c.End)
	assert.Equal(t, []string{"sofa-azul"}, c.Candidates)
}

func TestComplete_CaseInsensitiveSubstring(t *testing.T) {
	c := editor.Complete("/AZ", 3, testRefs("sofa-azul", "mesa"))

	assert.True(t, c.Active)
	assert.Equal(t, []string{"sofa-azul"}, c.Candidates)
}

func TestComplete_WhitespaceBreaksToken(t *testing.T) {
	// The slash is before a space, so the cursor is not inside a token.
	c := editor.Complete("/sofa aqui", 8, testRefs("sofa-azul"))

	assert.False(t, c.Active)
}

func TestComplete_EmptyQueryListsAll(t *testing.T) {
	c := editor.Complete("usar /", 6, testRefs("sofa-azul", "mesa"))

	assert.True(t, c.Active)
	assert.Equal(t, []string{"sofa-azul", "mesa"}, c.Candidates)
}

func TestComplete_CursorOutOfRange(t *testing.T) {
	c := editor.Complete("/so", 10, testRefs("sofa-azul"))

	assert.False(t, c.Active)
}

func TestSplice_ReplacesToken(t *testing.T) {
	text, cursor := editor.Splice("usar /so aqui", 8, "sofa-azul")

	assert.Equal(t, "usar sofa-azul  aqui", text)
	assert.Equal(t, 15, cursor)
}

func TestSplice_NoTokenLeavesTextAlone(t *testing.T) {
	text, cursor := editor.Splice("sem comando", 5, "sofa-azul")

	assert.Equal(t, "sem comando", text)
	assert.Equal(t, 5, cursor)
}
