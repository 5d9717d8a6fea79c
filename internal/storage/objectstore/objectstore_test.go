package objectstore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewObjectKey(t *testing.T) {
	tests := []struct {
		name     string
		original string
		wantExt  string
	}{
		{name: "jpeg", original: "IMG_001.JPEG", wantExt: ".jpeg"},
		{name: "png", original: "photo.png", wantExt: ".png"},
		{name: "no extension", original: "photo", wantExt: ".jpg"},
		{name: "empty name", original: "", wantExt: ".jpg"},
		{name: "trailing dot", original: "photo.", wantExt: ".jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewObjectKey(tt.original)

			assert.True(t, strings.HasSuffix(key, tt.wantExt), key)
			assert.Len(t, strings.TrimSuffix(key, tt.wantExt), 32)
			assert.NotContains(t, key, "-")
		})
	}

	assert.NotEqual(t, NewObjectKey("a.jpg"), NewObjectKey("a.jpg"))
}

func TestContentTypeByExt(t *testing.T) {
	tests := map[string]string{
		"a.jpg":  "image/jpeg",
		"a.JPEG": "image/jpeg",
		"a.png":  "image/png",
		"a.gif":  "image/gif",
		"a.webp": "image/webp",
		"a.bmp":  "image/jpeg",
		"a":      "image/jpeg",
	}

	for key, want := range tests {
		t.Run(key, func(t *testing.T) {
			assert.Equal(t, want, ContentTypeByExt(key))
		})
	}
}

func TestViewURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8000/api/photos/view/abc.jpg", ViewURL("http://localhost:8000/", "abc.jpg"))
	assert.Equal(t, "/uploads/abc.jpg", StoragePath("abc.jpg"))
}
