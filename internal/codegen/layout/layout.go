// Package layout maps a module name and a structural convention onto the
// output file path of every generated layer.
package layout

import (
	"strings"

	"github.com/protosmith/protosmith/internal/codegen/meta"
)

// Input describes one layout resolution. Paths are composed with '/' separators.
type Input struct {
	OutDir    string
	Module    string
	Structure meta.Structure
	Overrides meta.LayoutOverrides
}

// ResolvePaths computes the output path of every layer. It performs no I/O and
// never fails; an unknown structure resolves like clean.
func ResolvePaths(in Input) meta.OutputLayout {
	base := strings.TrimRight(in.OutDir, `/\`)
	m := in.Module

	var out meta.OutputLayout
	switch in.Structure {
	case meta.StructureFlat:
		dir := modulesBase(base) + "/" + m + "/"
		out = meta.OutputLayout{
			Transport:  dir + m + ".requests.ts",
			Contract:   dir + m + ".contract.ts",
			Repository: dir + m + ".repo.ts",
			Service:    dir + m + ".service.ts",
			ViewModel:  dir + m + ".view-model.ts",
		}
	case meta.StructureModules:
		dir := modulesBase(base) + "/" + m + "/"
		out = meta.OutputLayout{
			Transport:  dir + "requests/" + m + ".requests.ts",
			Contract:   dir + "contracts/" + m + ".contract.ts",
			Repository: dir + "repos/" + m + ".repo.ts",
			Service:    dir + "services/" + m + ".service.ts",
			ViewModel:  dir + "view-models/" + m + ".view-model.ts",
		}
	default:
		out = meta.OutputLayout{
			Transport:  base + "/transport/gateway/gRPC/requests/" + m + ".requests.ts",
			Contract:   base + "/domain/" + m + "/" + m + ".contract.ts",
			Repository: base + "/repository/" + m + "/" + m + ".grpc.repo.ts",
			Service:    base + "/service/" + m + "/" + m + ".service.ts",
			ViewModel:  base + "/presentation/" + m + "/" + m + ".view-model.ts",
		}
	}

	return applyOverrides(out, in.Overrides)
}

// modulesBase appends a "modules" directory unless base already has a
// "modules" path segment.
func modulesBase(base string) string {
	for _, seg := range strings.FieldsFunc(base, func(r rune) bool { return r == '/' || r == '\\' }) {
		if seg == "modules" {
			return base
		}
	}
	return base + "/modules"
}

func applyOverrides(out meta.OutputLayout, o meta.LayoutOverrides) meta.OutputLayout {
	if o.Transport != "" {
		out.Transport = o.Transport
	}
	if o.Contract != "" {
		out.Contract = o.Contract
	}
	if o.Repository != "" {
		out.Repository = o.Repository
	}
	if o.Service != "" {
		out.Service = o.Service
	}
	if o.ViewModel != "" {
		out.ViewModel = o.ViewModel
	}
	return out
}
