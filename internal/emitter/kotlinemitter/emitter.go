package kotlinemitter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/swagger2retrofit/internal/output"
	genspec "github.com/mark3labs/swagger2retrofit/internal/spec"
)

// Options controls how the Kotlin emitter renders a document.
type Options struct {
	Writer output.Writer // required; receives every generated file
	Logger *slog.Logger  // optional; defaults to a discarding logger
}

// PlannedFile describes a file the emitter produced.
type PlannedFile struct {
	RelPath string
	Size    int
}

// Result lists the written files in write order.
type Result struct {
	Services int
	Models   int
	Planned  []PlannedFile
}

// File is a generated file waiting to be written.
type File struct {
	RelPath string
	Content string
}

// Plan renders every service interface and model declaration of doc without
// writing anything. Services come first, then models in components order.
func Plan(doc *genspec.Document, logger *slog.Logger) (files []File, services, models int) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	m := TypeMapper{Components: doc.Components.Schemas, Logger: logger}

	index := make(map[string]int)
	add := func(f File) {
		if i, dup := index[f.RelPath]; dup {
			logger.Warn("declaration overwritten by a later one at the same path", "path", f.RelPath)
			files[i] = f
			return
		}
		index[f.RelPath] = len(files)
		files = append(files, f)
	}

	for _, group := range GroupPaths(doc.Paths) {
		name := ServiceName(group.Resource)
		logger.Debug("rendering service", "service", name, "resource", group.Resource, "paths", len(group.Paths))
		add(File{RelPath: ServiceFilePath(name), Content: m.RenderService(name, group, doc.Paths)})
		services++
	}

	if doc.Components.Schemas == nil {
		return files, services, models
	}
	for name, schema := range doc.Components.Schemas.All() {
		decls := m.EmitSchema(name, schema)
		logger.Debug("rendering schema", "schema", name, "declarations", len(decls))
		for _, d := range decls {
			add(File{RelPath: d.RelPath(), Content: d.Content})
			models++
		}
	}
	return files, services, models
}

// Emit renders doc and hands every file to opts.Writer. A failed write stops
// the run; files written before it are left in place.
func Emit(ctx context.Context, doc *genspec.Document, opts Options) (*Result, error) {
	if doc == nil {
		return nil, fmt.Errorf("kotlinemitter: nil Document")
	}
	if opts.Writer == nil {
		return nil, fmt.Errorf("kotlinemitter: Writer is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	files, services, models := Plan(doc, logger)
	res := &Result{Services: services, Models: models, Planned: make([]PlannedFile, 0, len(files))}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		logger.Info("writing file", "path", f.RelPath)
		if err := opts.Writer.WriteFile(f.RelPath, []byte(f.Content)); err != nil {
			return nil, fmt.Errorf("write %s: %w", f.RelPath, err)
		}
		res.Planned = append(res.Planned, PlannedFile{RelPath: f.RelPath, Size: len(f.Content)})
	}
	return res, nil
}
