// Package emit serializes the resolved catalog into the generated data
// artifact consumed by the web UI.
package emit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/antigravitymoto/catalog-gen/internal/catalog"
	"github.com/antigravitymoto/catalog-gen/internal/errors"
)

// Format selects the artifact serialization.
type Format string

const (
	// FormatJS emits an ES module with three named exports, the shape the
	// web UI imports directly.
	FormatJS Format = "js"
	// FormatJSON emits one JSON document with brands/categories/bikes keys.
	FormatJSON Format = "json"
)

// ParseFormat validates a format string from config.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJS, FormatJSON:
		return Format(s), nil
	default:
		return "", errors.InvalidSpecf("unknown output format %q (want js or json)", s)
	}
}

// Emitter writes catalog artifacts.
type Emitter struct {
	logger *slog.Logger
}

// NewEmitter creates an emitter.
func NewEmitter(logger *slog.Logger) *Emitter {
	return &Emitter{
		logger: logger,
	}
}

// Write serializes the catalog and replaces the artifact at outPath.
// The write is atomic: a temp file in the target directory is renamed over
// any prior artifact, so a crashed run never leaves a torn file.
func (e *Emitter) Write(cat catalog.Catalog, outPath string, format Format) error {
	data, err := e.Encode(cat, format)
	if err != nil {
		return err
	}

	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Outputf("failed to create output directory: %s", dir).WithCause(err)
	}

	tmp, err := os.CreateTemp(dir, ".catalog-*")
	if err != nil {
		return errors.Output("failed to create temp artifact").WithCause(err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()           //nolint:errcheck // Best-effort cleanup
		os.Remove(tmpName)    //nolint:errcheck // Best-effort cleanup
		return errors.Output("failed to write artifact").WithCause(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName) //nolint:errcheck // Best-effort cleanup
		return errors.Output("failed to close artifact").WithCause(err)
	}

	if err := os.Rename(tmpName, outPath); err != nil {
		os.Remove(tmpName) //nolint:errcheck // Best-effort cleanup
		return errors.Outputf("failed to replace artifact: %s", outPath).WithCause(err)
	}

	e.logger.Info("wrote catalog artifact",
		"path", outPath,
		"format", string(format),
		"bikes", len(cat.Bikes),
		"bytes", len(data),
	)

	return nil
}

// Encode serializes the catalog without touching the filesystem.
// Both formats marshal structs whose field order is fixed by declaration,
// so repeated runs over the same input diff cleanly.
func (e *Emitter) Encode(cat catalog.Catalog, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return e.encodeJSON(cat)
	case FormatJS:
		return e.encodeModule(cat)
	default:
		return nil, errors.Internalf("unhandled output format %q", format)
	}
}

func (e *Emitter) encodeJSON(cat catalog.Catalog) ([]byte, error) {
	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return nil, errors.Output("failed to encode catalog").WithCause(err)
	}
	return append(data, '\n'), nil
}

// encodeModule renders the ES module the UI layer imports:
//
//	export const brands = [...];
//	export const categories = [...];
//	export const bikes = [...];
func (e *Emitter) encodeModule(cat catalog.Catalog) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("// Generated by catalog-gen. Do not edit.\n\n")

	exports := []struct {
		name  string
		value any
	}{
		{"brands", cat.Brands},
		{"categories", cat.Categories},
		{"bikes", cat.Bikes},
	}

	for i, export := range exports {
		data, err := json.MarshalIndent(export.value, "", "  ")
		if err != nil {
			return nil, errors.Outputf("failed to encode %s", export.name).WithCause(err)
		}
		fmt.Fprintf(&buf, "export const %s = %s;\n", export.name, data)
		if i < len(exports)-1 {
			buf.WriteByte('\n')
		}
	}

	return buf.Bytes(), nil
}
