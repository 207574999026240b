// Package typescript renders the layer files of a module as TypeScript built
// on protobuf-ts generated clients and message stubs.
package typescript

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"text/template"

	"github.com/protosmith/protosmith/internal/codegen/generator"
	"github.com/protosmith/protosmith/internal/codegen/meta"
)

// TemplateExt is the file extension of override templates.
const TemplateExt = ".tmpl"

var builtinTemplates = map[string]string{
	meta.LayerTransport.TemplateID():  transportTemplate,
	meta.LayerContract.TemplateID():   contractTemplate,
	meta.LayerRepository.TemplateID(): repositoryTemplate,
	meta.LayerService.TemplateID():    serviceTemplate,
	meta.LayerViewModel.TemplateID():  viewModelTemplate,
}

var layersByTemplate = func() map[string]meta.Layer {
	m := make(map[string]meta.Layer, len(meta.Layers))
	for _, l := range meta.Layers {
		m[l.TemplateID()] = l
	}
	return m
}()

// Renderer executes the layer templates. Templates found in templateDir as
// <template-id>.tmpl replace the built-in template of that layer.
type Renderer struct {
	logger      *slog.Logger
	templateDir string
}

func NewRenderer(logger *slog.Logger, templateDir string) *Renderer {
	return &Renderer{logger: logger, templateDir: templateDir}
}

func (r *Renderer) source(templateID string) (string, error) {
	src, ok := builtinTemplates[templateID]
	if !ok {
		return "", fmt.Errorf("%w: %q", generator.ErrTemplateNotFound, templateID)
	}
	if r.templateDir == "" {
		return src, nil
	}

	custom := filepath.Join(r.templateDir, templateID+TemplateExt)
	data, err := os.ReadFile(custom)
	switch {
	case err == nil:
		r.logger.Debug("Using template override", "template", templateID, "path", custom)
		return string(data), nil
	case errors.Is(err, fs.ErrNotExist):
		return src, nil
	default:
		return "", fmt.Errorf("%w: read template %s: %w", generator.ErrRenderFailure, custom, err)
	}
}

// Render executes the template of templateID against ctx and formats the result.
func (r *Renderer) Render(templateID string, ctx *meta.Context) (string, error) {
	src, err := r.source(templateID)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New(templateID).Funcs(funcMap).Parse(src)
	if err != nil {
		return "", fmt.Errorf("%w: parse %s template: %w", generator.ErrRenderFailure, templateID, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newTemplateData(ctx, layersByTemplate[templateID])); err != nil {
		return "", fmt.Errorf("%w: execute %s template: %w", generator.ErrRenderFailure, templateID, err)
	}

	r.logger.Debug("Formatting rendered template", "template", templateID, "bytes", buf.Len())
	return Format(buf.String()), nil
}
