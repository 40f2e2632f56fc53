// Package media holds file attachments sent with multipart submissions.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"catalog-admin/internal/logger"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

var (
	ErrEmptyFile = errors.New("file is empty")
	ErrNotImage  = errors.New("only image files are allowed")
)

// File is an in-memory attachment. ContentType is sniffed from the bytes,
// never taken from the file extension.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Open reads path and detects its MIME type.
func Open(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) == 0 {
		return File{}, fmt.Errorf("%s: %w", path, ErrEmptyFile)
	}
	return FromBytes(filepath.Base(path), data), nil
}

// OpenAll opens every path, stopping at the first failure.
func OpenAll(paths []string) ([]File, error) {
	files := make([]File, 0, len(paths))
	for _, p := range paths {
		f, err := Open(p)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

func FromBytes(name string, data []byte) File {
	return File{
		Name:        name,
		ContentType: mimetype.Detect(data).String(),
		Data:        data,
	}
}

func (f File) IsImage() bool {
	return strings.HasPrefix(f.ContentType, "image/")
}

func (f File) Size() int {
	return len(f.Data)
}

// Optimize shrinks images whose longest side exceeds maxDim and re-encodes
// them as JPEG. Non-images, formats imaging cannot decode and images that
// already fit are returned unchanged. maxDim <= 0 disables it.
func Optimize(f File, maxDim, quality int) (File, error) {
	if maxDim <= 0 || !f.IsImage() {
		return f, nil
	}

	log := logger.L().With(zap.String("file", f.Name), zap.String("content_type", f.ContentType))

	img, err := imaging.Decode(bytes.NewReader(f.Data), imaging.AutoOrientation(true))
	if err != nil {
		log.Warn("image not decodable, sending as is", zap.Error(err))
		return f, nil
	}

	bounds := img.Bounds()
	if bounds.Dx() <= maxDim && bounds.Dy() <= maxDim {
		return f, nil
	}

	resized := imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return File{}, fmt.Errorf("failed to encode %s: %w", f.Name, err)
	}

	log.Info("image optimized",
		zap.Int("width", bounds.Dx()),
		zap.Int("height", bounds.Dy()),
		zap.Int("new_width", resized.Bounds().Dx()),
		zap.Int("new_height", resized.Bounds().Dy()),
		zap.Int("bytes", buf.Len()),
	)

	name := strings.TrimSuffix(f.Name, filepath.Ext(f.Name)) + ".jpg"
	return File{Name: name, ContentType: "image/jpeg", Data: buf.Bytes()}, nil
}

// Optimizer applies Optimize with fixed settings.
type Optimizer struct {
	MaxDimension int
	Quality      int
}

func (o Optimizer) Apply(files ...File) ([]File, error) {
	out := make([]File, 0, len(files))
	for _, f := range files {
		opt, err := Optimize(f, o.MaxDimension, o.Quality)
		if err != nil {
			return nil, err
		}
		out = append(out, opt)
	}
	return out, nil
}
