package editor

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"

	xdraw "golang.org/x/image/draw"
)

// Image is an in-memory raster payload. The editing core works entirely on
// embedded bytes; turning these into storage URLs is the persistence
// collaborator's job.
type Image struct {
	Data []byte
	Mime string
}

// Empty reports whether the payload is absent.
func (i Image) Empty() bool {
	return len(i.Data) == 0
}

// Dimensions decodes just the image header.
func (i Image) Dimensions() (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(i.Data))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image header: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// FitToCanvas re-encodes the image at exactly width x height, scaling with
// bilinear interpolation when the source dimensions differ. The mask and the
// working image must stay pixel-congruent, so every image entering the canvas
// passes through here.
func FitToCanvas(img Image, width, height int) (Image, error) {
	src, _, err := image.Decode(bytes.NewReader(img.Data))
	if err != nil {
		return Image{}, fmt.Errorf("failed to decode image: %w", err)
	}

	b := src.Bounds()
	if b.Dx() == width && b.Dy() == height && img.Mime == "image/png" {
		return img, nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return Image{}, fmt.Errorf("failed to encode image: %w", err)
	}
	return Image{Data: buf.Bytes(), Mime: "image/png"}, nil
}

// CanvasSize computes the intrinsic canvas resolution for a base image shown
// inside a container, preserving aspect ratio ("contain" fit). A zero
// container means the image's own dimensions are used.
func CanvasSize(imgW, imgH, containerW, containerH int) (int, int) {
	if containerW <= 0 || containerH <= 0 || imgW <= 0 || imgH <= 0 {
		return imgW, imgH
	}

	containerRatio := float64(containerW) / float64(containerH)
	imageRatio := float64(imgW) / float64(imgH)

	if containerRatio > imageRatio {
		h := containerH
		return int(float64(h) * imageRatio), h
	}
	w := containerW
	return w, int(float64(w) / imageRatio)
}
