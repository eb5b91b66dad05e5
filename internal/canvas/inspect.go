package canvas

import (
	"bytes"
	"fmt"
	"image/png"
)

// Empty reports whether the overlay holds no selection at all. The semantic
// check is "any non-zero alpha anywhere", but since draw mode only ever writes
// fully-populated pixels and erase zeroes whole pixels, scanning the packed
// buffer for any non-zero byte is equivalent and cheaper.
func (m *MaskEngine) Empty() bool {
	for _, b := range m.overlay.Pix {
		if b != 0 {
			return false
		}
	}
	return true
}

// EncodePNG serializes the overlay for transport to the inference service.
// The encoded mask has exactly the overlay's pixel dimensions, which by
// construction match the working image's canvas dimensions; the inference
// collaborator aligns mask and image pixel-for-pixel.
func (m *MaskEngine) EncodePNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, m.overlay); err != nil {
		return nil, fmt.Errorf("failed to encode mask: %w", err)
	}
	return buf.Bytes(), nil
}
