// Package generator assembles the generation context of a run and renders
// the requested layers through a Renderer in dependency order.
package generator

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/protosmith/protosmith/internal/codegen/meta"
)

var (
	// ErrTemplateNotFound means no template exists for a requested layer.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrRenderFailure means a layer template failed to parse or execute.
	ErrRenderFailure = errors.New("render failure")
)

// Renderer turns a layer template and the run context into formatted source.
type Renderer interface {
	Render(templateID string, ctx *meta.Context) (string, error)
}

// WriteFunc persists content at path. It reports written=false, without an
// error, when the file already exists and was left untouched.
type WriteFunc func(path, content string) (written bool, err error)

type Generator struct {
	logger *slog.Logger
	render Renderer
	write  WriteFunc
}

func New(logger *slog.Logger, render Renderer, write WriteFunc) *Generator {
	return &Generator{
		logger: logger,
		render: render,
		write:  write,
	}
}

// Generate renders and writes every requested layer in canonical order and
// returns the paths actually written. Existing files are skipped; the first
// render or write failure stops the run.
func (g *Generator) Generate(ctx *meta.Context) ([]string, error) {
	var written []string
	for _, layer := range meta.Layers {
		if !ctx.Requested(layer) {
			continue
		}
		path := ctx.Paths.Path(layer)
		g.logger.Info("Generating layer", "layer", layer, "path", path)

		text, err := g.render.Render(layer.TemplateID(), ctx)
		if err != nil {
			if !errors.Is(err, ErrTemplateNotFound) && !errors.Is(err, ErrRenderFailure) {
				err = fmt.Errorf("%w: %w", ErrRenderFailure, err)
			}
			g.logger.Error("Failed to render layer", "layer", layer, "error", err)
			return written, fmt.Errorf("generate %s layer: %w", layer, err)
		}

		ok, err := g.write(path, text)
		if err != nil {
			g.logger.Error("Failed to write layer", "layer", layer, "path", path, "error", err)
			return written, fmt.Errorf("write %s layer: %w", layer, err)
		}
		if ok {
			written = append(written, path)
		}
	}

	g.logger.Info("Generation complete", "service", ctx.Schema.Name, "written", len(written))
	return written, nil
}

// ParseLayers converts layer names into canonical order without duplicates.
// Unknown names are logged and ignored; no names at all selects every layer.
func ParseLayers(logger *slog.Logger, names []string) []meta.Layer {
	requested := map[meta.Layer]bool{}
	var named bool
	for _, name := range names {
		if name == "" {
			continue
		}
		named = true
		layer, ok := meta.ParseLayer(name)
		if !ok {
			logger.Warn("Ignoring unknown layer", "layer", name)
			continue
		}
		requested[layer] = true
	}
	if !named {
		return append([]meta.Layer(nil), meta.Layers...)
	}

	var out []meta.Layer
	for _, layer := range meta.Layers {
		if requested[layer] {
			out = append(out, layer)
		}
	}
	return out
}
