package imdb

import (
	"fmt"
	"math"
	"path"
	"strings"
)

// Image is a remote image reference with its known full-size dimensions.
// The zero value means "no image".
type Image struct {
	URL    string `json:"url" yaml:"url"`
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
}

// IsZero reports whether no image is present.
func (img Image) IsZero() bool {
	return img.URL == ""
}

// ThumbnailURL derives the URL of a server-side thumbnail scaled (and
// cropped, when the aspect ratios differ) to the target box. The result
// is a pure function of the image and the box.
func (img Image) ThumbnailURL(targetW, targetH int) string {
	if img.URL == "" || targetW <= 0 || targetH <= 0 {
		return ""
	}
	return insertSizeSuffix(img.URL, thumbSuffix(img.Width, img.Height, targetW, targetH))
}

// thumbSuffix computes the size-parameter fragment IMDb's image CDN
// understands. Matching aspect ratios need only a width scale; anything
// else scales the short side to fill the box and center-crops the rest.
func thumbSuffix(fullW, fullH, targetW, targetH int) string {
	if fullW <= 0 || fullH <= 0 {
		// Source dimensions unknown: scale by width and hope.
		return fmt.Sprintf("QL75_SX%d_", targetW)
	}

	if fullW*targetH == fullH*targetW {
		return fmt.Sprintf("QL75_SX%d_", targetW)
	}

	scaleW := float64(targetW) / float64(fullW)
	scaleH := float64(targetH) / float64(fullH)

	if scaleW > scaleH {
		// Width-driven: the scaled image is too tall, crop vertically.
		scaledH := int(math.Round(float64(fullH) * scaleW))
		cropY := (scaledH - targetH) / 2
		if cropY < 0 {
			cropY = 0
		}
		return fmt.Sprintf("QL75_SX%d_CR0,%d,%d,%d_", targetW, cropY, targetW, targetH)
	}

	// Height-driven: crop horizontally.
	scaledW := int(math.Round(float64(fullW) * scaleH))
	cropX := (scaledW - targetW) / 2
	if cropX < 0 {
		cropX = 0
	}
	return fmt.Sprintf("QL75_SY%d_CR%d,0,%d,%d_", targetH, cropX, targetW, targetH)
}

// insertSizeSuffix splices a size parameter into a media CDN URL.
// "...abc._V1_.jpg" becomes "...abc._V1_QL75_SX190_.jpg"; URLs without
// the _V1 marker get one inserted before the extension.
func insertSizeSuffix(url, suffix string) string {
	ext := path.Ext(url)

	if idx := strings.Index(url, "._V1"); idx >= 0 {
		return url[:idx] + "._V1_" + suffix + ext
	}
	return strings.TrimSuffix(url, ext) + "._V1_" + suffix + ext
}
