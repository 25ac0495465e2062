package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	// Packages
	fnschema "github.com/mutablelogic/go-fnschema"
	manager "github.com/mutablelogic/go-fnschema/pkg/manager"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type GenerateCmd struct {
	Input `embed:""`
	TypeName    []string `name:"type-name" short:"t" help:"Record to generate, may be repeated"`
	OutputFile  string   `name:"output-file" short:"o" required:"" type:"path" help:"File to write the schemas to"`
	Format      string   `name:"format" enum:"openai,ollama,gemini" default:"openai" help:"Output dialect (${enum})"`
	PrettyPrint bool     `name:"pretty-print" help:"Indent the output"`
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (cmd *GenerateCmd) Run(globals *Globals) error {
	manifest, err := cmd.load(globals)
	if err != nil {
		return err
	}
	globals.debugf("loaded %d records and %d enums", len(manifest.Records), len(manifest.Enums))

	// Generate the document
	response, err := globals.manager.Generate(globals.ctx, manifest, manager.GenerateRequest{
		Targets: cmd.TypeName,
		Dialect: cmd.Format,
	})
	if err != nil {
		return err
	}
	for _, name := range response.Missing {
		globals.log.Printf("warning: %q not found in descriptors", name)
	}
	globals.debugf("run %s: %d schemas in %s format", response.Run, len(response.Schemas), response.Dialect)

	// Marshal the document
	var data []byte
	if cmd.PrettyPrint {
		data, err = json.MarshalIndent(response.Document, "", "  ")
	} else {
		data, err = json.Marshal(response.Document)
	}
	if err != nil {
		return fnschema.ErrInternalServerError.Withf("marshal output: %v", err)
	}

	// Write the output
	if err := writeFile(cmd.OutputFile, append(data, '\n')); err != nil {
		return err
	}
	globals.debugf("wrote %q", cmd.OutputFile)

	// Return success
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// writeFile writes to a temporary file in the same directory, and renames
// it over the destination once complete
func writeFile(path string, data []byte) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fnschema.ErrBadParameter.With("--output-file is required")
	}
	w, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(w.Name())

	if _, err := w.Write(data); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	if err := os.Chmod(w.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(w.Name(), path)
}
