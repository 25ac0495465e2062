package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	// Packages
	kong "github.com/alecthomas/kong"
	manager "github.com/mutablelogic/go-fnschema/pkg/manager"
	version "github.com/mutablelogic/go-fnschema/pkg/version"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debugging
	Debug   bool             `name:"debug" help:"Log progress to stderr"`
	Version kong.VersionFlag `name:"version" help:"Print version information and exit"`

	// Context
	ctx     context.Context
	manager *manager.Manager
	log     *log.Logger
}

type CLI struct {
	Globals

	// Commands
	Generate GenerateCmd `cmd:"" default:"withargs" help:"Generate function calling schemas for records"`
	Validate ValidateCmd `cmd:"" help:"Validate tool call arguments against a record"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	configFile = "config.json"
)

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	// Create a cli parser
	cli := CLI{}
	cmd := kong.Parse(&cli,
		kong.Name(execName()),
		kong.Description("Generate function calling schemas from record descriptors"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Configuration(kong.JSON, configPaths()...),
		kong.Vars{
			"version": string(version.JSON(execName())),
		},
	)

	// Create a context
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	cli.Globals.ctx = ctx

	// Create a logger
	cli.Globals.log = log.New(os.Stderr, execName()+": ", 0)

	// Create the manager
	manager, err := manager.NewManager()
	cmd.FatalIfErrorf(err)
	cli.Globals.manager = manager

	// Run the command
	if err := cmd.Run(&cli.Globals); err != nil {
		cmd.FatalIfErrorf(err)
		return
	}
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func execName() string {
	// The name of the executable
	name, err := os.Executable()
	if err != nil {
		panic(err)
	} else {
		return filepath.Base(name)
	}
}

// configPaths returns the configuration files which supply flag defaults,
// later files taking precedence. Missing files are ignored.
func configPaths() []string {
	var result []string
	if path, err := os.UserConfigDir(); err == nil {
		result = append(result, filepath.Join(path, "fnschema", configFile))
	}
	if path := os.Getenv("FNSCHEMA_CONFIG"); path != "" {
		result = append(result, path)
	}
	return result
}

// debugf logs when --debug is set
func (g *Globals) debugf(format string, args ...any) {
	if g.Debug {
		g.log.Printf(format, args...)
	}
}
