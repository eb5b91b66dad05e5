package editor

import "strings"

const defaultExportName = "ktirio-image"

// ExportFilename builds the download filename from a project name: spaces
// become underscores and characters unsafe in filenames are dropped.
func ExportFilename(projectName string) string {
	name := strings.ReplaceAll(strings.TrimSpace(projectName), " ", "_")

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '_' || r == '-' || r == '.':
			b.WriteRune(r)
		}
	}

	cleaned := strings.Trim(b.String(), ".")
	if cleaned == "" {
		cleaned = defaultExportName
	}
	return cleaned + ".png"
}
