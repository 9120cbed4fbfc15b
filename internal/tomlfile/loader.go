// Package tomlfile provides the TOML implementation of the config.Loader
// interface. TOML declaration files decode straight into schema.Document.
package tomlfile

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/vk/infinitytest/internal/config"
	"github.com/vk/infinitytest/internal/ctxlog"
	"github.com/vk/infinitytest/internal/schema"
)

// Loader is the TOML-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new TOML declaration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and decodes the TOML declaration file at path.
func (l *Loader) Load(ctx context.Context, path string) (config.Declaration, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("TOML loader started.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read TOML file %s: %w", path, err)
	}
	doc, err := l.Document(ctx, data, path)
	if err != nil {
		return nil, err
	}
	return config.FromDocument(doc), nil
}

// Document decodes src into the format-agnostic document. Keys the document
// has no field for are rejected.
func (l *Loader) Document(ctx context.Context, src []byte, filename string) (*schema.Document, error) {
	logger := ctxlog.FromContext(ctx)

	doc := &schema.Document{}
	md, err := toml.Decode(string(src), doc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode TOML file %s: %w", filename, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("failed to decode TOML file %s: unknown keys %s", filename, strings.Join(keys, ", "))
	}

	logger.Debug("TOML loading complete.",
		"file", filename,
		"before_hooks", len(doc.Before),
		"after_hooks", len(doc.After),
		"heuristics", len(doc.Heuristics),
		"watches", len(doc.Watch),
		"binaries", len(doc.Binaries),
	)
	return doc, nil
}
