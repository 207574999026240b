package generator

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/protosmith/protosmith/internal/codegen/common"
	"github.com/protosmith/protosmith/internal/codegen/importpath"
	"github.com/protosmith/protosmith/internal/codegen/layout"
	"github.com/protosmith/protosmith/internal/codegen/meta"
	"github.com/protosmith/protosmith/internal/codegen/scanner"
)

// Request carries the caller's inputs for one generation run.
type Request struct {
	Mode       meta.Mode
	Descriptor string
	Service    string
	Module     string
	OutDir     string
	Structure  meta.Structure
	Layers     []meta.Layer
	Overrides  meta.LayoutOverrides
}

// ServiceLoader resolves a service schema from a descriptor set.
type ServiceLoader interface {
	LoadServiceDescriptor(descriptorPath, serviceName string) (*meta.ServiceSchema, error)
}

// DefaultModuleName derives a module name from a service name:
// "acme.v1.CustomerService" -> "customer".
func DefaultModuleName(service string) string {
	if i := strings.LastIndex(service, "."); i >= 0 {
		service = service[i+1:]
	}
	if trimmed := strings.TrimSuffix(service, "Service"); trimmed != "" {
		service = trimmed
	}
	return common.ToKebabCase(service)
}

// BuildContext loads the service schema, resolves the output layout and
// derives every import path, producing the context shared by all layers.
func BuildContext(logger *slog.Logger, loader ServiceLoader, req Request) (*meta.Context, error) {
	descriptorPath, err := scanner.ResolveDescriptorPath(req.Descriptor)
	if err != nil {
		return nil, err
	}

	logger.Info("Loading service descriptor", "descriptor", descriptorPath, "service", req.Service)
	schema, err := loader.LoadServiceDescriptor(descriptorPath, req.Service)
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded service", "service", schema.Name, "methods", len(schema.Methods))

	module := req.Module
	if module == "" {
		module = DefaultModuleName(req.Service)
		logger.Debug("Derived module name", "module", module)
	}
	structure := req.Structure
	if structure == "" {
		structure = meta.StructureClean
	}
	mode := req.Mode
	if mode == "" {
		mode = meta.ModeNonInteractive
	}

	paths := layout.ResolvePaths(layout.Input{
		OutDir:    req.OutDir,
		Module:    module,
		Structure: structure,
		Overrides: req.Overrides,
	})

	// import paths are computed between absolute locations so that a relative
	// output root and an absolute descriptor path still relate correctly
	absPaths := absLayout(paths)
	stubDir := filepath.Dir(descriptorPath)

	version, err := common.GetVersion()
	if err != nil {
		return nil, fmt.Errorf("get version: %w", err)
	}

	ctx := &meta.Context{
		Mode:        mode,
		Module:      module,
		Structure:   structure,
		Descriptor:  scanner.DescriptorBaseName(descriptorPath),
		StubDir:     stubDir,
		Schema:      *schema,
		Paths:       paths,
		ImportPaths: importpath.CalculateImportPaths(absPaths),
		StubImports: importpath.CalculateStubImports(absPaths, absPath(stubDir)),
		Layers:      req.Layers,
		Version:     version,
	}
	for _, l := range meta.Layers {
		logger.Debug("Resolved layer path", "layer", l, "path", paths.Path(l), "stubs", ctx.StubImports[l])
	}
	return ctx, nil
}

func absPath(p string) string {
	abs, err := filepath.Abs(filepath.FromSlash(p))
	if err != nil {
		return p
	}
	return abs
}

func absLayout(o meta.OutputLayout) meta.OutputLayout {
	return meta.OutputLayout{
		Transport:  absPath(o.Transport),
		Contract:   absPath(o.Contract),
		Repository: absPath(o.Repository),
		Service:    absPath(o.Service),
		ViewModel:  absPath(o.ViewModel),
	}
}
