package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/infinitytest/internal/config"
	"github.com/vk/infinitytest/internal/ctxlog"
	"github.com/vk/infinitytest/internal/schema"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL declaration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the HCL declaration file at path.
func (l *Loader) Load(ctx context.Context, path string) (config.Declaration, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	doc, err := l.decode(ctx, hclFile.Body, path)
	if err != nil {
		return nil, err
	}
	return config.FromDocument(doc), nil
}

// LoadBytes parses src as if it had been read from filename.
func (l *Loader) LoadBytes(ctx context.Context, src []byte, filename string) (config.Declaration, error) {
	doc, err := l.Document(ctx, src, filename)
	if err != nil {
		return nil, err
	}
	return config.FromDocument(doc), nil
}

// Document parses src into the format-agnostic document without wrapping it
// in a Declaration.
func (l *Loader) Document(ctx context.Context, src []byte, filename string) (*schema.Document, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return l.decode(ctx, hclFile.Body, filename)
}

func (l *Loader) decode(ctx context.Context, body hcl.Body, filename string) (*schema.Document, error) {
	logger := ctxlog.FromContext(ctx)

	var file schema.File
	if diags := gohcl.DecodeBody(body, nil, &file); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	doc, diags := translateFile(&file)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid declaration in %s: %w", filename, diags)
	}

	logger.Debug("HCL loading complete.",
		"file", filename,
		"before_hooks", len(doc.Before),
		"after_hooks", len(doc.After),
		"heuristics", len(doc.Heuristics),
		"watches", len(doc.Watch),
		"binaries", len(doc.Binaries),
	)
	return doc, nil
}
