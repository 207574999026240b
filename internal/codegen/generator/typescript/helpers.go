package typescript

import (
	"strings"
	"text/template"

	"github.com/protosmith/protosmith/internal/codegen/common"
	"github.com/protosmith/protosmith/internal/codegen/meta"
)

// templateData is what every layer template executes against: the shared
// run context plus the names and imports derived for the layer being rendered.
type templateData struct {
	*meta.Context
	Layer        meta.Layer
	Name         string // type-name stem, "Customer" for module "customer"
	Client       string // protobuf-ts client class
	ClientSource string // stub exporting the client class
	Stubs        string // import of the stub directory from this layer's file
	Imports      []meta.TypeImport
}

func newTemplateData(ctx *meta.Context, layer meta.Layer) templateData {
	service := ctx.Schema.FullName
	if service == "" {
		service = ctx.Schema.Name
	}
	if i := strings.LastIndex(service, "."); i >= 0 {
		service = service[i+1:]
	}
	stubs := ctx.StubImports[layer]
	if stubs == "" {
		stubs = "."
	}
	return templateData{
		Context:      ctx,
		Layer:        layer,
		Name:         common.Identifier(ctx.Module),
		Client:       service + "Client",
		ClientSource: ctx.Descriptor + ".client",
		Stubs:        stubs,
		Imports:      ctx.TypeImports(),
	}
}

// Stub returns the import of a stub file from the current layer.
func (d templateData) Stub(source string) string {
	return strings.TrimSuffix(d.Stubs, "/") + "/" + source
}

// Streamable lists the methods higher layers expose: unary and server-streaming calls.
func (d templateData) Streamable() []meta.Method {
	var out []meta.Method
	for _, m := range d.Schema.Methods {
		if !m.ClientStreaming {
			out = append(out, m)
		}
	}
	return out
}

// Unary lists the plain request/response methods.
func (d templateData) Unary() []meta.Method {
	var out []meta.Method
	for _, m := range d.Schema.Methods {
		if m.Unary() {
			out = append(out, m)
		}
	}
	return out
}

func writeFileHeaderTS(d templateData) string {
	service := d.Schema.FullName
	if service == "" {
		service = d.Schema.Name
	}
	return "// Generated by protosmith " + d.Version + " from " + d.Descriptor + " (" + service + ").\n" +
		"// Scaffolding only: edit freely, protosmith never overwrites existing files."
}

// jsdoc renders a proto comment as an indented JSDoc block ending in a
// newline, or nothing.
func jsdoc(indent, comment string) string {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(indent + "/**\n")
	for _, line := range strings.Split(comment, "\n") {
		line = strings.TrimRight(strings.TrimSpace(line), " ")
		if line == "" {
			b.WriteString(indent + " *\n")
			continue
		}
		b.WriteString(indent + " * " + line + "\n")
	}
	b.WriteString(indent + " */\n")
	return b.String()
}

// returnType is the TypeScript result of a contract method.
func returnType(m meta.Method) string {
	if m.ServerStreaming {
		return "AsyncIterable<" + m.OutputType + ">"
	}
	return "Promise<" + m.OutputType + ">"
}

var funcMap = template.FuncMap{
	"header":     writeFileHeaderTS,
	"jsdoc":      jsdoc,
	"returnType": returnType,
	"camel":      common.Camel,
	"pascal":     common.Pascal,
	"kebab":      common.ToKebabCase,
	"join":       strings.Join,
}
