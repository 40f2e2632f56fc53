package media

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFromBytes(t *testing.T) {
	t.Run("Image", func(t *testing.T) {
		f := FromBytes("logo.png", pngBytes(t, 4, 4))
		assert.Equal(t, "image/png", f.ContentType)
		assert.True(t, f.IsImage())
	})

	t.Run("Text pretending to be an image", func(t *testing.T) {
		f := FromBytes("logo.png", []byte("hello world"))
		assert.False(t, f.IsImage())
	})
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	t.Run("Success", func(t *testing.T) {
		path := filepath.Join(dir, "phone.png")
		require.NoError(t, os.WriteFile(path, pngBytes(t, 2, 2), 0o644))

		f, err := Open(path)
		require.NoError(t, err)
		assert.Equal(t, "phone.png", f.Name)
		assert.True(t, f.IsImage())
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := Open(filepath.Join(dir, "missing.png"))
		assert.Error(t, err)
	})

	t.Run("Empty", func(t *testing.T) {
		path := filepath.Join(dir, "empty.png")
		require.NoError(t, os.WriteFile(path, nil, 0o644))

		_, err := Open(path)
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("OpenAll stops at first failure", func(t *testing.T) {
		good := filepath.Join(dir, "good.png")
		require.NoError(t, os.WriteFile(good, pngBytes(t, 2, 2), 0o644))

		_, err := OpenAll([]string{good, filepath.Join(dir, "nope.png")})
		assert.Error(t, err)
	})
}

func TestOptimize(t *testing.T) {
	big := FromBytes("big.png", pngBytes(t, 100, 50))

	t.Run("Resizes keeping aspect ratio", func(t *testing.T) {
		out, err := Optimize(big, 40, 80)
		require.NoError(t, err)

		assert.Equal(t, "big.jpg", out.Name)
		assert.Equal(t, "image/jpeg", out.ContentType)

		img, _, err := image.Decode(bytes.NewReader(out.Data))
		require.NoError(t, err)
		assert.Equal(t, 40, img.Bounds().Dx())
		assert.Equal(t, 20, img.Bounds().Dy())
	})

	t.Run("Already small", func(t *testing.T) {
		out, err := Optimize(big, 200, 80)
		require.NoError(t, err)
		assert.Equal(t, big, out)
	})

	t.Run("Disabled", func(t *testing.T) {
		out, err := Optimize(big, 0, 80)
		require.NoError(t, err)
		assert.Equal(t, big, out)
	})

	t.Run("Non image untouched", func(t *testing.T) {
		txt := FromBytes("notes.txt", []byte("plain text"))
		out, err := Optimize(txt, 10, 80)
		require.NoError(t, err)
		assert.Equal(t, txt, out)
	})

	t.Run("Optimizer applies to all", func(t *testing.T) {
		out, err := Optimizer{MaxDimension: 50, Quality: 70}.Apply(big, big)
		require.NoError(t, err)
		assert.Len(t, out, 2)
		assert.Equal(t, "image/jpeg", out[1].ContentType)
	})
}
