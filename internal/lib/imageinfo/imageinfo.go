// Package imageinfo проверяет, что загруженный файл является изображением, и читает его размеры.
package imageinfo

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var ErrNotImage = errors.New("not an image")

type Info struct {
	Width    int
	Height   int
	MimeType string
}

// Inspect декодирует только заголовок изображения.
// MIME определяется по содержимому, заявленный клиентом тип не используется.
func Inspect(data []byte) (Info, error) {
	if len(data) == 0 {
		return Info{}, ErrNotImage
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return Info{}, ErrNotImage
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, errors.Join(ErrNotImage, err)
	}

	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Info{}, ErrNotImage
	}

	return Info{
		Width:    cfg.Width,
		Height:   cfg.Height,
		MimeType: mt.String(),
	}, nil
}
