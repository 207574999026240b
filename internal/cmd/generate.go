package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/protosmith/protosmith/internal/codegen/generator"
	"github.com/protosmith/protosmith/internal/codegen/generator/typescript"
	"github.com/protosmith/protosmith/internal/codegen/meta"
	"github.com/protosmith/protosmith/internal/codegen/scanner"
	"github.com/protosmith/protosmith/internal/prompt"
)

var (
	ErrMissingService    = errors.New("no service given; pass --service or use --interactive")
	ErrMissingDescriptor = errors.New("no descriptor given; pass --descriptor or --proto-dir, or use --interactive")
)

// PathOverrides replaces the computed output path of single layers.
type PathOverrides struct {
	Transport  string `help:"Output file of the transport layer" env:"PROTOSMITH_PATH_TRANSPORT"`
	Contract   string `help:"Output file of the contract layer" env:"PROTOSMITH_PATH_CONTRACT"`
	Repository string `help:"Output file of the repository layer" env:"PROTOSMITH_PATH_REPOSITORY"`
	Service    string `help:"Output file of the service layer" env:"PROTOSMITH_PATH_SERVICE"`
	ViewModel  string `help:"Output file of the view-model layer" env:"PROTOSMITH_PATH_VIEW_MODEL"`
}

func (p PathOverrides) layout() meta.LayoutOverrides {
	return meta.LayoutOverrides(p)
}

type Generate struct {
	Service     string        `help:"Service to generate from, short or fully-qualified name" env:"PROTOSMITH_SERVICE"`
	Descriptor  string        `help:"Descriptor set (.binpb, .pb, .protoset, .desc, .json) or the stub next to it" env:"PROTOSMITH_DESCRIPTOR"`
	Module      string        `help:"Module name for output files (default: service name without Service, kebab-cased)" env:"PROTOSMITH_MODULE"`
	ProtoDir    string        `help:"Directory searched for the descriptor declaring --service when --descriptor is omitted" env:"PROTOSMITH_PROTO_DIR"`
	Out         string        `help:"Output root directory" default:"src" env:"PROTOSMITH_OUT"`
	Structure   string        `help:"Output structure: clean, modules or flat" default:"clean" enum:"clean,modules,flat" env:"PROTOSMITH_STRUCTURE"`
	Layers      []string      `help:"Comma separated layers to generate (default: all)" sep:"," env:"PROTOSMITH_LAYERS"`
	Templates   string        `help:"Directory with <layer>.tmpl files replacing the built-in templates" env:"PROTOSMITH_TEMPLATES"`
	Paths       PathOverrides `embed:"" prefix:"path."`
	Interactive bool          `help:"Prompt for every value not given as a flag" env:"PROTOSMITH_INTERACTIVE"`
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(logger *slog.Logger) error {
	logger = logger.With("run", uuid.NewString())

	var p *prompt.Prompter
	if g.Interactive {
		var err error
		if p, err = prompt.NewTerminal(); err != nil {
			return err
		}
	}

	written, err := g.Execute(logger, p)
	if err != nil {
		return err
	}
	printWritten(os.Stdout, written)
	return nil
}

// Execute runs one generation. With a non-nil prompter, missing inputs are
// asked for first.
func (g *Generate) Execute(logger *slog.Logger, p *prompt.Prompter) ([]string, error) {
	logger.Debug("Starting generation", "service", g.Service, "descriptor", g.Descriptor, "out", g.Out, "structure", g.Structure)

	loader, err := scanner.NewLoader(logger, scanner.DefaultCacheSize)
	if err != nil {
		return nil, err
	}

	mode := meta.ModeNonInteractive
	if p != nil {
		mode = meta.ModeInteractive
		if err := g.ask(logger, loader, p); err != nil {
			return nil, err
		}
	}

	if g.Service == "" {
		return nil, ErrMissingService
	}
	descriptor := g.Descriptor
	if descriptor == "" {
		if g.ProtoDir == "" {
			return nil, ErrMissingDescriptor
		}
		if descriptor, err = loader.FindServiceDescriptor(g.ProtoDir, g.Service); err != nil {
			return nil, err
		}
		logger.Info("Detected descriptor", "descriptor", descriptor)
	}

	ctx, err := generator.BuildContext(logger, loader, generator.Request{
		Mode:       mode,
		Descriptor: descriptor,
		Service:    g.Service,
		Module:     g.Module,
		OutDir:     filepath.ToSlash(g.Out),
		Structure:  meta.Structure(g.Structure),
		Layers:     generator.ParseLayers(logger, g.Layers),
		Overrides:  g.Paths.layout(),
	})
	if err != nil {
		return nil, err
	}

	gen := generator.New(logger, typescript.NewRenderer(logger, g.Templates), generator.FileWriter(logger))
	return gen.Generate(ctx)
}

func (g *Generate) ask(logger *slog.Logger, loader *scanner.Loader, p *prompt.Prompter) error {
	if g.Descriptor == "" {
		root := g.ProtoDir
		if root == "" {
			root = "."
		}
		found := scanner.FindDescriptors(root, scanner.DefaultSearchDepth)
		if len(found) == 0 {
			return fmt.Errorf("%w: no descriptor sets under %s; run protosmith compile first", scanner.ErrDescriptorNotLoadable, root)
		}
		choice, err := p.Select("Descriptor set", found, "")
		if err != nil {
			return err
		}
		g.Descriptor = filepath.Join(root, choice)
	}

	if g.Service == "" {
		path, err := scanner.ResolveDescriptorPath(g.Descriptor)
		if err != nil {
			return err
		}
		services, err := loader.ListServices(path)
		if err != nil {
			return err
		}
		if len(services) == 0 {
			return fmt.Errorf("%w: %s declares no services", scanner.ErrServiceNotFound, path)
		}
		if g.Service, err = p.Select("Service", services, ""); err != nil {
			return err
		}
	}

	if g.Module == "" {
		module, err := p.Input("Module name", generator.DefaultModuleName(g.Service))
		if err != nil {
			return err
		}
		g.Module = module
	}

	out, err := p.Select("Output root", outputCandidates(g.Out), g.Out)
	if err != nil {
		return err
	}
	g.Out = out

	structures := []string{string(meta.StructureClean), string(meta.StructureModules), string(meta.StructureFlat)}
	if g.Structure, err = p.Select("Structure", structures, g.Structure); err != nil {
		return err
	}

	if len(g.Layers) == 0 {
		names := make([]string, len(meta.Layers))
		for i, l := range meta.Layers {
			names[i] = l.TemplateID()
		}
		if g.Layers, err = p.MultiSelect("Layers", names); err != nil {
			return err
		}
	}

	logger.Debug("Collected interactive answers", "descriptor", g.Descriptor, "service", g.Service, "module", g.Module, "out", g.Out)
	return nil
}

// outputCandidates offers def plus the usual source roots that exist in the
// working directory.
func outputCandidates(def string) []string {
	out := []string{}
	seen := map[string]bool{}
	add := func(dir string) {
		if dir == "" || seen[dir] {
			return
		}
		seen[dir] = true
		out = append(out, dir)
	}
	add(def)
	for _, dir := range []string{"src", "app", "lib", "client/src"} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			add(dir)
		}
	}
	add(".")
	return out
}

func printWritten(w io.Writer, paths []string) {
	for _, p := range paths {
		fmt.Fprintln(w, p)
	}
}
