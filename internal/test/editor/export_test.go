package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"ktirio-backend/internal/editor"
)

func TestExportFilename(t *testing.T) {
	tests := []struct {
		name     string
		project  string
		expected string
	}{
		{"spaces become underscores", "Sala de Estar", "Sala_de_Estar.png"},
		{"empty name falls back", "", "ktirio-image.png"},
		{"unsafe characters dropped", "Sala/../etc", "Sala..etc.png"},
		{"only unsafe characters falls back", "///", "ktirio-image.png"},
		{"leading dots trimmed", "..hidden", "hidden.png"},
		{"keeps digits and dashes", "Projeto-2 v1", "Projeto-2_v1.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, editor.ExportFilename(tt.project))
		})
	}
}
