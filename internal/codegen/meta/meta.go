// Package meta holds the data model shared between the descriptor scanner,
// the layout and import-path resolvers, and the layer generators.
package meta

import "strings"

// Layer identifies one generated output kind.
type Layer string

const (
	LayerTransport  Layer = "transport"
	LayerContract   Layer = "contract"
	LayerRepository Layer = "repository"
	LayerService    Layer = "service"
	LayerViewModel  Layer = "viewModel"
)

// Layers lists every layer in canonical generation order: lower layers come
// before the layers that import them.
var Layers = []Layer{LayerTransport, LayerContract, LayerRepository, LayerService, LayerViewModel}

// TemplateID returns the template identifier used to render the layer.
func (l Layer) TemplateID() string {
	if l == LayerViewModel {
		return "view-model"
	}
	return string(l)
}

// ParseLayer accepts the canonical layer name, its template id, or a
// case/punctuation variant ("view-model", "viewmodel", "ViewModel").
func ParseLayer(s string) (Layer, bool) {
	norm := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.TrimSpace(s)))
	switch norm {
	case "transport":
		return LayerTransport, true
	case "contract":
		return LayerContract, true
	case "repository", "repo":
		return LayerRepository, true
	case "service":
		return LayerService, true
	case "viewmodel":
		return LayerViewModel, true
	}
	return "", false
}

// Structure is the output directory convention.
type Structure string

const (
	StructureClean   Structure = "clean"
	StructureModules Structure = "modules"
	StructureFlat    Structure = "flat"
)

// Mode discriminates how the generation inputs were collected.
type Mode string

const (
	ModeInteractive    Mode = "interactive"
	ModeNonInteractive Mode = "non-interactive"
)

// Method is one RPC operation of a service.
type Method struct {
	Name         string `json:"name"`         // local camelCase name
	OriginalName string `json:"originalName"` // as declared in the proto
	InputType    string `json:"inputType"`    // short type name
	OutputType   string `json:"outputType"`
	InputSource  string `json:"inputSource"`  // stub base name exporting InputType
	OutputSource string `json:"outputSource"` // stub base name exporting OutputType

	InputFullType  string `json:"inputFullType,omitempty"`
	OutputFullType string `json:"outputFullType,omitempty"`

	ClientStreaming bool   `json:"clientStreaming,omitempty"`
	ServerStreaming bool   `json:"serverStreaming,omitempty"`
	Comment         string `json:"comment,omitempty"`
}

// Unary reports whether the method is a plain request/response call.
func (m Method) Unary() bool { return !m.ClientStreaming && !m.ServerStreaming }

// ServiceSchema is one resolved service; Methods keep declaration order.
type ServiceSchema struct {
	Name     string   `json:"name"`
	FullName string   `json:"fullName,omitempty"`
	Methods  []Method `json:"methods"`
}

// TypeSourceMap maps a short type name to the stub base name exporting it.
type TypeSourceMap map[string]string

// OutputLayout holds one output file path per layer.
type OutputLayout struct {
	Transport  string `json:"transport"`
	Contract   string `json:"contract"`
	Repository string `json:"repository"`
	Service    string `json:"service"`
	ViewModel  string `json:"viewModel"`
}

// Path returns the output path of the given layer.
func (o OutputLayout) Path(l Layer) string {
	switch l {
	case LayerTransport:
		return o.Transport
	case LayerContract:
		return o.Contract
	case LayerRepository:
		return o.Repository
	case LayerService:
		return o.Service
	case LayerViewModel:
		return o.ViewModel
	}
	return ""
}

// LayoutOverrides replaces computed paths per layer; empty fields are ignored.
type LayoutOverrides struct {
	Transport  string `json:"transport,omitempty" yaml:"transport,omitempty"`
	Contract   string `json:"contract,omitempty" yaml:"contract,omitempty"`
	Repository string `json:"repository,omitempty" yaml:"repository,omitempty"`
	Service    string `json:"service,omitempty" yaml:"service,omitempty"`
	ViewModel  string `json:"viewModel,omitempty" yaml:"viewModel,omitempty"`
}

// ImportPathSet holds the relative import expression of every required
// cross-layer edge, each relative to the source layer's directory.
type ImportPathSet struct {
	RepositoryToContract  string `json:"repositoryToContract"`
	RepositoryToTransport string `json:"repositoryToTransport"`
	ServiceToContract     string `json:"serviceToContract"`
	ServiceToRepository   string `json:"serviceToRepository"`
	ViewModelToRepository string `json:"viewModelToRepository"`
}

// StubImports holds, per layer, the relative import of the stub directory.
type StubImports map[Layer]string

// TypeImport groups the types a generated file imports from one stub.
type TypeImport struct {
	Source string
	Types  []string
}

// Context is the sole input of every layer generator. It is built once per
// run and must not be modified afterwards.
type Context struct {
	Mode        Mode
	Module      string
	Structure   Structure
	Descriptor  string // descriptor base name, without extension
	StubDir     string
	Schema      ServiceSchema
	Paths       OutputLayout
	ImportPaths ImportPathSet
	StubImports StubImports
	Layers      []Layer
	Version     string
}

// Requested reports whether l is part of this run.
func (c *Context) Requested(l Layer) bool {
	for _, r := range c.Layers {
		if r == l {
			return true
		}
	}
	return false
}

// IsFlat reports whether all layers share one directory.
func (c *Context) IsFlat() bool { return c.Structure == StructureFlat }

// TypeImports groups every input and output type of the schema by origin
// stub, in first-use order and without duplicates.
func (c *Context) TypeImports() []TypeImport {
	var out []TypeImport
	index := map[string]int{}
	seen := map[string]bool{}
	add := func(typ, source string) {
		if typ == "" {
			return
		}
		key := source + "\x00" + typ
		if seen[key] {
			return
		}
		seen[key] = true
		i, ok := index[source]
		if !ok {
			i = len(out)
			index[source] = i
			out = append(out, TypeImport{Source: source})
		}
		out[i].Types = append(out[i].Types, typ)
	}
	for _, m := range c.Schema.Methods {
		add(m.InputType, m.InputSource)
		add(m.OutputType, m.OutputSource)
	}
	return out
}
