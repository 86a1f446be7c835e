package storage

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

var ErrNotImage = errors.New("file is not an image")

// Photos stores uploaded pictures. The content type is sniffed from the
// bytes, never taken from the client.
type Photos struct {
	store    BlobStore
	maxWidth int
}

func NewPhotos(store BlobStore, maxWidth int) *Photos {
	return &Photos{store: store, maxWidth: maxWidth}
}

func (p *Photos) Save(ctx context.Context, prefix, filename string, data []byte) (string, error) {
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotImage
	}
	data = Optimize(data, contentType, p.maxWidth)
	return p.store.Put(ctx, prefix, filename, data, contentType)
}
