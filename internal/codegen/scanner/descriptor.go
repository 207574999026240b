package scanner

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/protosmith/protosmith/internal/codegen/common"
	"github.com/protosmith/protosmith/internal/codegen/meta"
)

// DescriptorExts lists the file extensions accepted as descriptor sets, in
// the order they are tried when resolving a stub's sibling descriptor.
var DescriptorExts = []string{".binpb", ".pb", ".protoset", ".desc", ".json"}

// DefaultCacheSize bounds the number of decoded descriptor sets kept by a Loader.
const DefaultCacheSize = 32

// Loader decodes descriptor sets and resolves services from them. Decoded
// sets are cached per path until the file's size or mtime changes.
type Loader struct {
	logger *slog.Logger
	cache  *lru.Cache[string, cachedSet]
}

type cachedSet struct {
	modTime time.Time
	size    int64
	set     *descriptorSet
}

// descriptorSet keeps the linked files of one set in their serialized order.
type descriptorSet struct {
	files []protoreflect.FileDescriptor
}

func NewLoader(logger *slog.Logger, cacheSize int) (*Loader, error) {
	cache, err := lru.New[string, cachedSet](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create descriptor cache: %w", err)
	}
	return &Loader{logger: logger, cache: cache}, nil
}

// ResolveDescriptorPath returns path itself for descriptor sets. For a
// TypeScript/JavaScript stub it returns the first existing sibling descriptor
// set with the same base name.
func ResolveDescriptorPath(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".ts" && ext != ".js" {
		return path, nil
	}
	stem := strings.TrimSuffix(path, filepath.Ext(path))
	for _, dext := range DescriptorExts {
		candidate := stem + dext
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s is a stub file and no sibling descriptor set (%s) exists; %s",
		ErrDescriptorNotLoadable, path, strings.Join(DescriptorExts, ", "), compileHint)
}

// DescriptorBaseName is the descriptor's file name without descriptor
// extensions ("stubs/customer.binpb" -> "customer").
func DescriptorBaseName(path string) string {
	base := filepath.Base(path)
	if strings.HasSuffix(strings.ToLower(base), ".json") {
		base = base[:len(base)-len(".json")]
	}
	for _, ext := range DescriptorExts {
		if strings.HasSuffix(strings.ToLower(base), ext) {
			return base[:len(base)-len(ext)]
		}
	}
	return StubBaseName(base)
}

func (l *Loader) loadSet(path string) (*descriptorSet, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w; %s", ErrDescriptorNotLoadable, path, err, compileHint)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory; %s", ErrDescriptorNotLoadable, path, compileHint)
	}
	if c, ok := l.cache.Get(path); ok && c.modTime.Equal(info.ModTime()) && c.size == info.Size() {
		l.logger.Debug("Using cached descriptor set", "path", path)
		return c.set, nil
	}

	l.logger.Debug("Decoding descriptor set", "path", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDescriptorNotLoadable, path, err)
	}

	var fds descriptorpb.FileDescriptorSet
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = protojson.Unmarshal(data, &fds)
	} else {
		err = proto.Unmarshal(data, &fds)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: decode descriptor set: %w; %s", ErrDescriptorNotLoadable, path, err, compileHint)
	}
	if len(fds.GetFile()) == 0 {
		return nil, fmt.Errorf("%w: %s contains no file descriptors; %s", ErrDescriptorNotLoadable, path, compileHint)
	}

	files, err := protodesc.NewFiles(&fds)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: link descriptors (was it built with --include_imports?): %w",
			ErrDescriptorNotLoadable, path, err)
	}

	set := &descriptorSet{}
	for _, fdp := range fds.GetFile() {
		fd, err := files.FindFileByPath(fdp.GetName())
		if err != nil {
			continue
		}
		set.files = append(set.files, fd)
	}

	l.cache.Add(path, cachedSet{modTime: info.ModTime(), size: info.Size(), set: set})
	l.logger.Debug("Decoded descriptor set", "path", path, "files", len(set.files))
	return set, nil
}

// exports lists every top-level service, message and enum name, sorted.
func (s *descriptorSet) exports() []string {
	seen := map[string]bool{}
	var names []string
	add := func(n protoreflect.Name) {
		if !seen[string(n)] {
			seen[string(n)] = true
			names = append(names, string(n))
		}
	}
	for _, fd := range s.files {
		for i := 0; i < fd.Services().Len(); i++ {
			add(fd.Services().Get(i).Name())
		}
		for i := 0; i < fd.Messages().Len(); i++ {
			add(fd.Messages().Get(i).Name())
		}
		for i := 0; i < fd.Enums().Len(); i++ {
			add(fd.Enums().Get(i).Name())
		}
	}
	sort.Strings(names)
	return names
}

func (s *descriptorSet) findService(name string) (protoreflect.ServiceDescriptor, error) {
	var short []protoreflect.ServiceDescriptor
	for _, fd := range s.files {
		services := fd.Services()
		for i := 0; i < services.Len(); i++ {
			sd := services.Get(i)
			if string(sd.FullName()) == name {
				return sd, nil
			}
			if string(sd.Name()) == name {
				short = append(short, sd)
			}
		}
	}

	switch len(short) {
	case 1:
		return short[0], nil
	case 0:
	default:
		candidates := make([]string, 0, len(short))
		for _, sd := range short {
			candidates = append(candidates, string(sd.FullName()))
		}
		return nil, fmt.Errorf("%w: %q is ambiguous, use one of: %s", ErrServiceNotFound, name, strings.Join(candidates, ", "))
	}

	for _, fd := range s.files {
		for i := 0; i < fd.Messages().Len(); i++ {
			if md := fd.Messages().Get(i); string(md.Name()) == name || string(md.FullName()) == name {
				return nil, fmt.Errorf("%w: %q is a message and has no methods; the descriptor must contain a compiled service", ErrInvalidServiceShape, name)
			}
		}
		for i := 0; i < fd.Enums().Len(); i++ {
			if ed := fd.Enums().Get(i); string(ed.Name()) == name || string(ed.FullName()) == name {
				return nil, fmt.Errorf("%w: %q is an enum and has no methods; the descriptor must contain a compiled service", ErrInvalidServiceShape, name)
			}
		}
	}

	return nil, fmt.Errorf("%w: %q\nAvailable exports: %s", ErrServiceNotFound, name, strings.Join(s.exports(), ", "))
}

// ListServices returns the short names of every service in the descriptor set.
func (l *Loader) ListServices(descriptorPath string) ([]string, error) {
	path, err := ResolveDescriptorPath(descriptorPath)
	if err != nil {
		return nil, err
	}
	set, err := l.loadSet(path)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, fd := range set.files {
		for i := 0; i < fd.Services().Len(); i++ {
			names = append(names, string(fd.Services().Get(i).Name()))
		}
	}
	return names, nil
}

// LoadServiceDescriptor resolves serviceName from the descriptor set at
// descriptorPath into a schema. Every method type is attributed to the stub
// file exporting it, found by scanning the descriptor's directory; types no
// stub exports are attributed to the descriptor's own base name.
func (l *Loader) LoadServiceDescriptor(descriptorPath, serviceName string) (*meta.ServiceSchema, error) {
	path, err := ResolveDescriptorPath(descriptorPath)
	if err != nil {
		return nil, err
	}
	set, err := l.loadSet(path)
	if err != nil {
		return nil, err
	}
	sd, err := set.findService(serviceName)
	if err != nil {
		return nil, err
	}

	l.logger.Debug("Found service", "service", sd.FullName(), "methods", sd.Methods().Len())

	sources := BuildTypeSourceMap(l.logger, filepath.Dir(path))
	fallback := DescriptorBaseName(path)

	schema := &meta.ServiceSchema{
		Name:     serviceName,
		FullName: string(sd.FullName()),
		Methods:  make([]meta.Method, 0, sd.Methods().Len()),
	}
	methods := sd.Methods()
	for i := 0; i < methods.Len(); i++ {
		md := methods.Get(i)
		inName, inSource := l.typeOrigin(md.Input().FullName(), sources, fallback)
		outName, outSource := l.typeOrigin(md.Output().FullName(), sources, fallback)

		m := meta.Method{
			Name:            common.Camel(string(md.Name())),
			OriginalName:    string(md.Name()),
			InputType:       inName,
			OutputType:      outName,
			InputSource:     inSource,
			OutputSource:    outSource,
			InputFullType:   string(md.Input().FullName()),
			OutputFullType:  string(md.Output().FullName()),
			ClientStreaming: md.IsStreamingClient(),
			ServerStreaming: md.IsStreamingServer(),
			Comment:         strings.TrimSpace(md.ParentFile().SourceLocations().ByDescriptor(md).LeadingComments),
		}
		l.logger.Debug("Resolved method", "method", m.Name, "input", m.InputType, "output", m.OutputType)
		schema.Methods = append(schema.Methods, m)
	}
	return schema, nil
}

func (l *Loader) typeOrigin(full protoreflect.FullName, sources meta.TypeSourceMap, fallback string) (name, source string) {
	name = string(full.Name())
	if src, ok := sources[name]; ok {
		l.logger.Debug("Type mapped to source", "type", name, "source", src)
		return name, src
	}
	l.logger.Debug("Type origin unresolved, using descriptor", "type", name, "source", fallback)
	return name, fallback
}

// FindServiceDescriptor returns the first descriptor set under root that
// declares serviceName.
func (l *Loader) FindServiceDescriptor(root, serviceName string) (string, error) {
	for _, rel := range FindDescriptors(root, DefaultSearchDepth) {
		path := filepath.Join(root, rel)
		set, err := l.loadSet(path)
		if err != nil {
			l.logger.Debug("Skipping descriptor", "path", path, "error", err)
			continue
		}
		if _, err := set.findService(serviceName); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %q is not declared by any descriptor set under %s; %s", ErrServiceNotFound, serviceName, root, compileHint)
}
