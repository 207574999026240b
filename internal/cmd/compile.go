package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/protosmith/protosmith/internal/log"
	"github.com/protosmith/protosmith/internal/protoc"
)

type Compile struct {
	ProtoDir         string `help:"Directory containing .proto files" default:"proto" env:"PROTOSMITH_PROTO_DIR"`
	Out              string `help:"Output directory for stubs and descriptor sets" default:"stubs" env:"PROTOSMITH_STUBS_OUT"`
	OptimizeCodeSize bool   `help:"Pass optimize_code_size to protoc-gen-ts" default:"true" negatable:"" env:"PROTOSMITH_OPTIMIZE_CODE_SIZE"`
	LongTypeNumber   bool   `help:"Pass long_type_number to protoc-gen-ts" default:"true" negatable:"" env:"PROTOSMITH_LONG_TYPE_NUMBER"`
	Protoc           string `help:"protoc executable, looked up on PATH" default:"protoc" env:"PROTOSMITH_PROTOC"`
	Plugin           string `help:"protoc-gen-ts plugin path" default:"node_modules/.bin/protoc-gen-ts" env:"PROTOSMITH_PLUGIN"`
}

func (c *Compile) options() protoc.Options {
	return protoc.Options{
		ProtoDir:         c.ProtoDir,
		OutDir:           c.Out,
		OptimizeCodeSize: c.OptimizeCodeSize,
		LongTypeNumber:   c.LongTypeNumber,
		Protoc:           c.Protoc,
		Plugin:           c.Plugin,
	}
}

// Run is called by Kong when the compile command is executed.
func (c *Compile) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Compiling proto files", "protoDir", c.ProtoDir, "out", c.Out)
	files, err := protoc.Compile(ctx, logger, rawLogger, c.options())
	if err != nil {
		return err
	}
	printWritten(os.Stdout, files)
	return nil
}
