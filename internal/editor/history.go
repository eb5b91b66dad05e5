package editor

import "fmt"

// OriginalVersion is the sentinel index for "no generated image yet": the
// current view is the raw upload. It is always selectable and always distinct
// from index 0, which is the first AI-generated result.
const OriginalVersion = -1

// History is the append-only, per-project ordered sequence of generated
// images. Selecting a past version never truncates; new generations always
// append at the end, so the full flat timeline survives.
type History struct {
	entries []Image
	current int
}

// NewHistory seeds the store from a project's persisted history. The current
// pointer starts at the latest entry, or at the original sentinel when the
// project has no generated versions yet.
func NewHistory(entries []Image) *History {
	h := &History{entries: append([]Image(nil), entries...)}
	h.current = len(h.entries) - 1
	return h
}

// Len returns the number of generated versions.
func (h *History) Len() int {
	return len(h.entries)
}

// Current returns the index of the active version, OriginalVersion when the
// raw upload is active.
func (h *History) Current() int {
	return h.current
}

// Entry returns the version at index.
func (h *History) Entry(index int) (Image, error) {
	if index < 0 || index >= len(h.entries) {
		return Image{}, fmt.Errorf("version %d out of range", index)
	}
	return h.entries[index], nil
}

// Append pushes a new version to the end and makes it current. History length
// only ever grows through here.
func (h *History) Append(img Image) {
	h.entries = append(h.entries, img)
	h.current = len(h.entries) - 1
}

// Select moves the current pointer to an existing entry or to the original
// sentinel. It never mutates the entry list.
func (h *History) Select(index int) error {
	if index == OriginalVersion {
		h.current = OriginalVersion
		return nil
	}
	if index < 0 || index >= len(h.entries) {
		return fmt.Errorf("version %d out of range", index)
	}
	h.current = index
	return nil
}

// Reset discards all versions; used when a new base image replaces the
// project's contents.
func (h *History) Reset() {
	h.entries = nil
	h.current = OriginalVersion
}
