package main

import (
	"encoding/json"
	"fmt"
	"os"

	// Packages
	fnschema "github.com/mutablelogic/go-fnschema"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type ValidateCmd struct {
	Input `embed:""`
	TypeName string `name:"type-name" short:"t" required:"" help:"Record to validate against"`
	Args     string `arg:"" type:"existingfile" help:"JSON file of tool call arguments"`
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (cmd *ValidateCmd) Run(globals *Globals) error {
	manifest, err := cmd.load(globals)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(cmd.Args)
	if err != nil {
		return err
	}
	if !json.Valid(data) {
		return fnschema.ErrBadParameter.Withf("%s: invalid JSON", cmd.Args)
	}

	if err := globals.manager.Validate(globals.ctx, manifest, cmd.TypeName, json.RawMessage(data)); err != nil {
		return err
	}

	fmt.Printf("%s: valid %s arguments\n", cmd.Args, cmd.TypeName)
	return nil
}
