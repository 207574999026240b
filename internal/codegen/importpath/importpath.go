// Package importpath computes relative import expressions between generated files.
package importpath

import (
	"path"
	"strings"

	"github.com/protosmith/protosmith/internal/codegen/meta"
)

var sourceExts = map[string]bool{
	".ts":  true,
	".tsx": true,
	".js":  true,
	".jsx": true,
	".mjs": true,
	".cjs": true,
}

// RelativeImportPath returns the import expression that reaches toFile from a
// file located at fromFile: relative to fromFile's directory, without source
// extension, with '/' separators and a "./" prefix unless it starts with "..".
func RelativeImportPath(fromFile, toFile string) string {
	return prefixed(relative(path.Dir(normalize(fromFile)), StripSourceExt(normalize(toFile))))
}

// RelativeDirImport is RelativeImportPath for a directory target; no
// extension is stripped and a same-directory target yields ".".
func RelativeDirImport(fromFile, dir string) string {
	rel := relative(path.Dir(normalize(fromFile)), normalize(dir))
	if rel == "." {
		return rel
	}
	return prefixed(rel)
}

// StripSourceExt removes a trailing JavaScript/TypeScript source extension.
func StripSourceExt(p string) string {
	if ext := path.Ext(p); sourceExts[ext] {
		return strings.TrimSuffix(p, ext)
	}
	return p
}

// CalculateImportPaths derives every required cross-layer edge from a layout.
// Edges are independent of which layers a run actually writes.
func CalculateImportPaths(o meta.OutputLayout) meta.ImportPathSet {
	return meta.ImportPathSet{
		RepositoryToContract:  RelativeImportPath(o.Repository, o.Contract),
		RepositoryToTransport: RelativeImportPath(o.Repository, o.Transport),
		ServiceToContract:     RelativeImportPath(o.Service, o.Contract),
		ServiceToRepository:   RelativeImportPath(o.Service, o.Repository),
		ViewModelToRepository: RelativeImportPath(o.ViewModel, o.Repository),
	}
}

// CalculateStubImports returns, per layer, the import of the stub directory.
func CalculateStubImports(o meta.OutputLayout, stubDir string) meta.StubImports {
	out := make(meta.StubImports, len(meta.Layers))
	for _, l := range meta.Layers {
		out[l] = RelativeDirImport(o.Path(l), stubDir)
	}
	return out
}

func normalize(p string) string {
	return path.Clean(strings.ReplaceAll(p, `\`, "/"))
}

func prefixed(rel string) string {
	if strings.HasPrefix(rel, "..") || path.IsAbs(rel) {
		return rel
	}
	return "./" + rel
}

// relative computes the slash path from dir to target. When no relative path
// exists (absolute vs. relative input, or dir escaping with ".."), the target
// is returned unchanged.
func relative(dir, target string) string {
	if path.IsAbs(dir) != path.IsAbs(target) {
		return target
	}
	from, to := segments(dir), segments(target)

	i := 0
	for i < len(from) && i < len(to) && from[i] == to[i] {
		i++
	}
	parts := make([]string, 0, len(from)-i+len(to)-i)
	for _, seg := range from[i:] {
		if seg == ".." {
			return target
		}
		parts = append(parts, "..")
	}
	parts = append(parts, to[i:]...)
	if len(parts) == 0 {
		return "."
	}
	return strings.Join(parts, "/")
}

func segments(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" || p == "." {
		return nil
	}
	return strings.Split(p, "/")
}
