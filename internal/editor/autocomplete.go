package editor

import (
	"strings"
	"unicode"
)

// Completion is the result of a slash-command lookup in the prompt textarea.
// Start/End delimit the "/query" token in the original text.
type Completion struct {
	Active     bool     `json:"active"`
	Query      string   `json:"query"`
	Candidates []string `json:"candidates"`
	Start      int      `json:"start"`
	End        int      `json:"end"`
}

// Complete inspects the prompt text around the cursor for a slash-command and
// filters the reference image names by case-insensitive substring match. The
// token runs from the nearest "/" before the cursor, provided no whitespace
// intervenes.
func Complete(text string, cursor int, refs []ReferenceImage) Completion {
	if cursor < 0 || cursor > len(text) {
		return Completion{}
	}

	start := -1
	for i := cursor - 1; i >= 0; i-- {
		r := rune(text[i])
		if r == '/' {
			start = i
			break
		}
		if unicode.IsSpace(r) {
			break
		}
	}
	if start == -1 {
		return Completion{}
	}

	query := text[start+1 : cursor]
	lower := strings.ToLower(query)

	var candidates []string
	for _, ref := range refs {
		if strings.Contains(strings.ToLower(ref.Name), lower) {
			candidates = append(candidates, ref.Name)
		}
	}

	return Completion{
		Active:     true,
		Query:      query,
		Candidates: candidates,
		Start:      start,
		End:        cursor,
	}
}

// Splice replaces the slash-command token at the cursor with the chosen
// reference name and a trailing space, returning the new text and cursor
// position. When no token is active the text is returned unchanged.
func Splice(text string, cursor int, name string) (string, int) {
	c := Complete(text, cursor, nil)
	if !c.Active {
		return text, cursor
	}
	replaced := text[:c.Start] + name + " " + text[c.End:]
	return replaced, c.Start + len(name) + 1
}
