// Package protoc compiles .proto sources into protobuf-ts stubs and the
// descriptor sets the generator reads.
package protoc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sys/execabs"

	"github.com/protosmith/protosmith/internal/log"
)

var (
	ErrProtoDirNotFound   = errors.New("proto directory not found")
	ErrNoProtoFiles       = errors.New("no .proto files found")
	ErrCompilerInvocation = errors.New("compiler invocation failed")
)

const (
	DefaultProtoc = "protoc"
	DefaultPlugin = "node_modules/.bin/protoc-gen-ts"
	// DescriptorExt is the extension of the descriptor set written next to each stub.
	DescriptorExt = ".binpb"
)

type Options struct {
	ProtoDir         string
	OutDir           string
	OptimizeCodeSize bool
	LongTypeNumber   bool
	Protoc           string
	Plugin           string
}

func (o Options) tsOptions() string {
	var opts []string
	if o.OptimizeCodeSize {
		opts = append(opts, "optimize_code_size")
	}
	if o.LongTypeNumber {
		opts = append(opts, "long_type_number")
	}
	return strings.Join(opts, ",")
}

// Runner executes one external command and returns its captured output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner runs commands found on PATH. Executables in the current
// directory are never picked up implicitly.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := execabs.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

type Compiler struct {
	logger *slog.Logger
	raw    log.RawLogger
	runner Runner
}

func NewCompiler(logger *slog.Logger, raw log.RawLogger, runner Runner) *Compiler {
	if raw == nil {
		raw = log.NewRaw(nil)
	}
	return &Compiler{logger: logger, raw: raw, runner: runner}
}

// Compile runs protoc with the installed protoc binary.
func Compile(ctx context.Context, logger *slog.Logger, raw log.RawLogger, opts Options) ([]string, error) {
	return NewCompiler(logger, raw, ExecRunner{}).Compile(ctx, opts)
}

// Compile generates TypeScript stubs for every .proto file under
// opts.ProtoDir in a single protoc run, then writes one descriptor set per
// proto file (with imports and source info) next to its stub. It returns the
// generated .ts and descriptor files, sorted and relative to the working
// directory when they lie beneath it.
func (c *Compiler) Compile(ctx context.Context, opts Options) ([]string, error) {
	if opts.Protoc == "" {
		opts.Protoc = DefaultProtoc
	}
	if opts.Plugin == "" {
		opts.Plugin = DefaultPlugin
	}

	protoDir, err := filepath.Abs(opts.ProtoDir)
	if err != nil {
		return nil, fmt.Errorf("resolve proto dir: %w", err)
	}
	outDir, err := filepath.Abs(opts.OutDir)
	if err != nil {
		return nil, fmt.Errorf("resolve out dir: %w", err)
	}

	if info, err := os.Stat(protoDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrProtoDirNotFound, protoDir)
	}
	files, err := FindProtoFiles(protoDir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", protoDir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoProtoFiles, protoDir)
	}
	c.logger.Info("Found proto files", "count", len(files), "dir", protoDir)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create out dir %s: %w", outDir, err)
	}
	if _, err := os.Stat(opts.Plugin); err != nil {
		c.logger.Warn("protoc-gen-ts plugin not found; install @protobuf-ts/plugin", "plugin", opts.Plugin)
	}

	args := []string{"-I", protoDir, "--plugin=protoc-gen-ts=" + opts.Plugin}
	if tsOpt := opts.tsOptions(); tsOpt != "" {
		args = append(args, "--ts_opt="+tsOpt)
	}
	args = append(args, "--ts_out="+outDir)
	for _, f := range files {
		args = append(args, filepath.Join(protoDir, f))
	}
	if err := c.run(ctx, opts.Protoc, args); err != nil {
		return nil, err
	}

	for _, f := range files {
		target := filepath.Join(outDir, strings.TrimSuffix(f, ".proto")+DescriptorExt)
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", filepath.Dir(target), err)
		}
		err := c.run(ctx, opts.Protoc, []string{
			"-I", protoDir,
			"--include_imports",
			"--include_source_info",
			"--descriptor_set_out=" + target,
			filepath.Join(protoDir, f),
		})
		if err != nil {
			return nil, err
		}
	}

	generated, err := generatedFiles(outDir)
	if err != nil {
		return nil, err
	}
	c.logger.Info("Compiled proto files", "generated", len(generated), "out", outDir)
	return generated, nil
}

func (c *Compiler) run(ctx context.Context, name string, args []string) error {
	c.logger.Debug("Running compiler", "command", name+" "+strings.Join(args, " "))
	stdout, stderr, err := c.runner.Run(ctx, name, args...)
	c.raw.Log("stdout", stdout)
	c.raw.Log("stderr", stderr)
	msg := strings.TrimSpace(string(stderr))
	if err != nil {
		if msg == "" {
			return fmt.Errorf("%w: %s: %w", ErrCompilerInvocation, name, err)
		}
		return fmt.Errorf("%w: %s: %w: %s", ErrCompilerInvocation, name, err, msg)
	}
	if msg != "" {
		c.logger.Debug("Compiler output", "stderr", msg)
	}
	return nil
}

// FindProtoFiles lists the .proto files under dir, recursively, as sorted
// paths relative to dir.
func FindProtoFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(d.Name()) != ".proto" {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	sort.Strings(files)
	return files, err
}

func generatedFiles(dir string) ([]string, error) {
	cwd, _ := os.Getwd()
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		ext := filepath.Ext(d.Name())
		if d.IsDir() || (ext != ".ts" && ext != DescriptorExt) {
			return nil
		}
		if rel, err := filepath.Rel(cwd, path); err == nil && cwd != "" && !strings.HasPrefix(rel, "..") {
			path = rel
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list generated files in %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}
