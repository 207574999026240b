// Package config declares the command line of protosmith.
package config

import (
	"github.com/alecthomas/kong"

	"github.com/protosmith/protosmith/internal/cmd"
	"github.com/protosmith/protosmith/internal/log"
)

type LogConfig struct {
	Level   string `help:"Log level" default:"warn" enum:"trace,debug,info,warn,error" env:"PROTOSMITH_LOG_LEVEL"`
	File    string `help:"Also write logs to this file" env:"PROTOSMITH_LOG_FILE"`
	RawFile string `help:"Write raw protoc output to this file" env:"PROTOSMITH_LOG_RAW_FILE"`
}

type CLI struct {
	Log        LogConfig        `embed:"" prefix:"log."`
	Verbose    bool             `help:"Log progress (info level)" env:"PROTOSMITH_VERBOSE"`
	Debug      bool             `help:"Log details (debug level)" env:"PROTOSMITH_DEBUG"`
	ConfigFile string           `name:"config" help:"Config file (.json, .yaml, .yml or .toml)" env:"PROTOSMITH_CONFIG"`
	Version    kong.VersionFlag `help:"Print version and exit"`

	Generate cmd.Generate      `cmd:"" help:"Generate layer files for one service of a compiled descriptor set"`
	Compile  cmd.Compile       `cmd:"" help:"Compile .proto files into protobuf-ts stubs and descriptor sets"`
	Config   cmd.ConfigCommand `cmd:"" help:"Configuration file helpers"`
}

// LogLevel is the level in effect after applying --verbose and --debug.
func (c *CLI) LogLevel() string {
	return log.EffectiveLevel(c.Log.Level, c.Verbose, c.Debug)
}
