package openapi

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Loader fetches raw OpenAPI documents from files or an fs.FS.
type Loader struct {
	fs fs.FS
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFileSystem resolves SourceKindFS sources against files.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(l *Loader) {
		l.fs = files
	}
}

// NewLoader constructs a Loader.
func NewLoader(options ...LoaderOption) *Loader {
	l := &Loader{}
	for _, opt := range options {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Load reads the document identified by src.
func (l *Loader) Load(ctx context.Context, src Source) (Document, error) {
	if src == nil {
		return Document{}, errors.New("openapi loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case SourceKindFile:
		data, err = os.ReadFile(src.Location())
	case SourceKindFS:
		if l.fs == nil {
			return Document{}, errors.New("openapi loader: filesystem is not configured")
		}
		data, err = fs.ReadFile(l.fs, src.Location())
	default:
		err = fmt.Errorf("openapi loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return Document{}, fmt.Errorf("openapi loader: %w", err)
	}
	return NewDocument(src, data)
}
