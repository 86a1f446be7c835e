// Package storage keeps uploaded photos outside the database. Stores return
// the public URL under which the blob can be fetched.
package storage

import (
	"context"
	"path"
	"strings"

	"github.com/google/uuid"
)

type BlobStore interface {
	Put(ctx context.Context, prefix, filename string, data []byte, contentType string) (string, error)
}

const maxExtLen = 8

// ObjectName builds "<prefix>/<uuid>.<ext>" from the client filename. Only
// the alphanumeric extension survives; anything else is dropped.
func ObjectName(prefix, filename string) string {
	name := uuid.NewString()
	if ext := Extension(filename); ext != "" {
		name += "." + ext
	}
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

func Extension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return ""
	}
	ext := strings.ToLower(filename[idx+1:])
	if len(ext) > maxExtLen {
		return ""
	}
	for _, r := range ext {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
