// Package yamlfile provides the YAML implementation of the config.Loader
// interface. YAML declaration files decode straight into schema.Document.
package yamlfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/infinitytest/internal/config"
	"github.com/vk/infinitytest/internal/ctxlog"
	"github.com/vk/infinitytest/internal/schema"
	"gopkg.in/yaml.v3"
)

// Loader is the YAML-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML declaration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and decodes the YAML declaration file at path.
func (l *Loader) Load(ctx context.Context, path string) (config.Declaration, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML file %s: %w", path, err)
	}
	doc, err := l.Document(ctx, data, path)
	if err != nil {
		return nil, err
	}
	return config.FromDocument(doc), nil
}

// Document decodes src into the format-agnostic document. Unknown keys are
// rejected so typos do not go unnoticed.
func (l *Loader) Document(ctx context.Context, src []byte, filename string) (*schema.Document, error) {
	logger := ctxlog.FromContext(ctx)

	doc := &schema.Document{}
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	if err := dec.Decode(doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", filename, err)
	}

	logger.Debug("YAML loading complete.",
		"file", filename,
		"before_hooks", len(doc.Before),
		"after_hooks", len(doc.After),
		"heuristics", len(doc.Heuristics),
		"watches", len(doc.Watch),
		"binaries", len(doc.Binaries),
	)
	return doc, nil
}
