package main

import (
	"strings"

	// Packages
	fnschema "github.com/mutablelogic/go-fnschema"
	descriptor "github.com/mutablelogic/go-fnschema/pkg/descriptor"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Input selects where record descriptors are read from
type Input struct {
	InputFile string `name:"input-file" short:"i" type:"existingfile" xor:"input" help:"Descriptor manifest (.yaml, .yml or .json)"`
	InputDir  string `name:"input-dir" short:"d" type:"existingdir" xor:"input" help:"Directory of descriptor manifests"`
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (input *Input) load(globals *Globals) (*descriptor.Manifest, error) {
	file, dir := strings.TrimSpace(input.InputFile), strings.TrimSpace(input.InputDir)
	switch {
	case file != "" && dir != "":
		return nil, fnschema.ErrBadParameter.With("--input-file and --input-dir cannot be used together")
	case file != "":
		globals.debugf("loading %q", file)
		return descriptor.LoadFile(file)
	case dir != "":
		globals.debugf("loading manifests in %q", dir)
		return descriptor.LoadDir(globals.ctx, dir)
	default:
		return nil, fnschema.ErrBadParameter.With("one of --input-file or --input-dir is required")
	}
}
