package archive

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	ErrNotFound   = errors.New("archive not found")
	ErrInvalidKey = errors.New("invalid archive key")
)

// Entry describes one stored snapshot.
type Entry struct {
	Key         string    `json:"key"`
	Size        int64     `json:"size"`
	ContentType string    `json:"contentType"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Archive stores exported collection snapshots.
type Archive interface {
	Save(ctx context.Context, prefix, contentType string, r io.Reader) (key string, err error)
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]Entry, error)
}

func ExtForContentType(contentType string) string {
	switch contentType {
	case ContentTypeXLSX:
		return ".xlsx"
	default:
		return ".json"
	}
}

func ContentTypeForKey(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".xlsx":
		return ContentTypeXLSX
	default:
		return ContentTypeJSON
	}
}
