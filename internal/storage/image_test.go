package storage

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFitKeepsSmallImages(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 50))

	assert.Same(t, img, Fit(img, 800))
}

func TestFitKeepsAspect(t *testing.T) {
	got := Fit(image.NewRGBA(image.Rect(0, 0, 1600, 400)), 800)
	assert.Equal(t, 800, got.Bounds().Dx())
	assert.Equal(t, 200, got.Bounds().Dy())

	got = Fit(image.NewRGBA(image.Rect(0, 0, 300, 1200)), 800)
	assert.Equal(t, 200, got.Bounds().Dx())
	assert.Equal(t, 800, got.Bounds().Dy())
}

func TestToWebP(t *testing.T) {
	out, err := ToWebP(bytes.NewReader(pngOf(t, 1000, 500)))
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 400, cfg.Height)
}

func TestToWebPRejectsGarbage(t *testing.T) {
	_, err := ToWebP(strings.NewReader("not an image"))

	assert.ErrorIs(t, err, ErrNotAnImage)
}

// pngHeader is a PNG signature plus an IHDR chunk declaring w x h, 8-bit
// grayscale. No pixel data follows.
func pngHeader(w, h uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], w)
	binary.BigEndian.PutUint32(ihdr[4:], h)
	ihdr[8] = 8 // bit depth

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestToWebPRejectsHugeCanvas(t *testing.T) {
	_, err := ToWebP(bytes.NewReader(pngHeader(20000, 20000)))

	assert.ErrorIs(t, err, ErrTooLarge)
}
