package scanner

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/protosmith/protosmith/internal/codegen/meta"
)

// Module is the export surface of one compiled stub file.
type Module struct {
	Path    string
	Exports []string
}

var (
	// export [declare] [abstract] [async] <kind> Name
	exportDeclPattern = regexp.MustCompile(`(?m)^[ \t]*export[ \t]+(?:declare[ \t]+)?(?:abstract[ \t]+)?(?:async[ \t]+)?(?:const[ \t]+enum|const|let|var|class|interface|enum|function|type|namespace)(?:[ \t]*\*[ \t]*|[ \t]+)([A-Za-z_$][\w$]*)`)
	// export { A, B as C } [from '...']
	exportListPattern = regexp.MustCompile(`(?m)^[ \t]*export[ \t]+(?:type[ \t]+)?\{([^}]*)\}`)
	// exports.Name = ... (CommonJS output)
	commonJSExportPattern = regexp.MustCompile(`(?m)^[ \t]*(?:module\.)?exports\.([A-Za-z_$][\w$]*)[ \t]*=`)
)

var stubExts = []string{".ts", ".js"}

var excludedStubSuffixes = []string{".client.ts", ".client.js", ".d.ts"}

// IsStubFile reports whether a file name looks like a generated message stub
// (client wrappers and declaration files are not).
func IsStubFile(name string) bool {
	lower := strings.ToLower(name)
	for _, suffix := range excludedStubSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return false
		}
	}
	for _, ext := range stubExts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// StubBaseName strips the stub extension from a file name.
func StubBaseName(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// LoadModule reads a stub file and collects its exported symbol names in
// source order. The default export is not collected.
func LoadModule(path string) (*Module, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stub: %w", err)
	}
	text := string(src)

	mod := &Module{Path: path}
	seen := map[string]bool{}
	add := func(name string) {
		if name == "" || name == "default" || seen[name] {
			return
		}
		seen[name] = true
		mod.Exports = append(mod.Exports, name)
	}

	for _, m := range exportDeclPattern.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	for _, m := range exportListPattern.FindAllStringSubmatch(text, -1) {
		for _, entry := range strings.Split(m[1], ",") {
			add(exportListName(entry))
		}
	}
	for _, m := range commonJSExportPattern.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	return mod, nil
}

// exportListName returns the exported name of one "export { ... }" entry.
func exportListName(entry string) string {
	entry = strings.TrimSpace(entry)
	entry = strings.TrimSpace(strings.TrimPrefix(entry, "type "))
	if i := strings.LastIndex(entry, " as "); i >= 0 {
		entry = strings.TrimSpace(entry[i+len(" as "):])
	}
	return entry
}

func isTypeExport(name string) bool {
	return name != "default" && !strings.HasSuffix(name, "Client")
}

// BuildTypeSourceMap scans the stub files of dir and maps every exported type
// name to the base name of the file exporting it. Files are scanned in
// directory order; when several files export the same name the last one wins.
// Unreadable files or directories only produce warnings.
func BuildTypeSourceMap(logger *slog.Logger, dir string) meta.TypeSourceMap {
	sources := meta.TypeSourceMap{}

	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn("Failed to read stub directory", "dir", dir, "error", err)
		return sources
	}

	var scanned int
	for _, entry := range entries {
		if entry.IsDir() || !IsStubFile(entry.Name()) {
			continue
		}

		mod, err := LoadModule(filepath.Join(dir, entry.Name()))
		if err != nil {
			logger.Warn("Skipping stub file", "file", entry.Name(), "error", err)
			continue
		}
		scanned++

		base := StubBaseName(entry.Name())
		for _, name := range mod.Exports {
			if !isTypeExport(name) {
				continue
			}
			if prev, ok := sources[name]; ok && prev != base {
				logger.Debug("Type exported by multiple stubs, keeping last scanned", "type", name, "previous", prev, "source", base)
			}
			sources[name] = base
		}
		logger.Debug("Scanned stub file", "file", base, "exports", len(mod.Exports))
	}

	logger.Debug("Built type source map", "dir", dir, "files", scanned, "types", len(sources))
	return sources
}
