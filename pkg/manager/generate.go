package manager

import (
	"context"
	"encoding/json"
	"strings"

	// Packages
	uuid "github.com/google/uuid"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	fnschema "github.com/mutablelogic/go-fnschema"
	descriptor "github.com/mutablelogic/go-fnschema/pkg/descriptor"
	generator "github.com/mutablelogic/go-fnschema/pkg/generator"
	jsonvalue "github.com/mutablelogic/go-fnschema/pkg/jsonvalue"
	types "github.com/mutablelogic/go-server/pkg/types"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// GenerateRequest names the records to generate from a manifest, and the
// dialect to format them in. An empty dialect uses the manager's default.
type GenerateRequest struct {
	Targets []string `json:"targets"`
	Dialect string   `json:"dialect,omitempty"`
}

// GenerateResponse is the result of one run
type GenerateResponse struct {
	Run      uuid.UUID           `json:"run"`
	Dialect  string              `json:"dialect"`
	Missing  []string            `json:"missing,omitempty"`
	Schemas  []*generator.Schema `json:"schemas"`
	Document jsonvalue.Value     `json:"document"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Generate selects the requested records from the manifest, generates their
// schemas and formats them. Requested names which are not in the manifest
// are returned in Missing and otherwise ignored. No targets produces an
// empty document.
func (m *Manager) Generate(ctx context.Context, manifest *descriptor.Manifest, req GenerateRequest) (result *GenerateResponse, err error) {
	run := uuid.New()

	// Otel span
	ctx, endSpan := otel.StartSpan(m.tracer, ctx, "Generate",
		attribute.String("run", run.String()),
		attribute.String("dialect", req.Dialect),
		attribute.StringSlice("targets", req.Targets),
	)
	defer func() { endSpan(err) }()

	if manifest == nil {
		return nil, fnschema.ErrBadParameter.With("manifest is required")
	}
	formatter, err := m.formatter(req.Dialect)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Select the targets
	records, missing := manifest.Select(req.Targets...)

	// Generate the schemas for this run
	g, err := generator.New(records, manifest.EnumTable())
	if err != nil {
		return nil, err
	}
	schemas, err := g.Generate()
	if err != nil {
		return nil, err
	}

	// Format the document
	document, err := formatter.Format(schemas)
	if err != nil {
		return nil, err
	}

	// Return success
	return &GenerateResponse{
		Run:      run,
		Dialect:  formatter.Name(),
		Missing:  missing,
		Schemas:  schemas,
		Document: document,
	}, nil
}

// Validate checks tool call arguments against the named record. Every
// record in the manifest may be referenced.
func (m *Manager) Validate(ctx context.Context, manifest *descriptor.Manifest, name string, args json.RawMessage) (err error) {
	// Otel span
	ctx, endSpan := otel.StartSpan(m.tracer, ctx, "Validate",
		attribute.String("name", name),
	)
	defer func() { endSpan(err) }()

	if manifest == nil {
		return fnschema.ErrBadParameter.With("manifest is required")
	}
	if name = strings.TrimSpace(name); name == "" {
		return fnschema.ErrBadParameter.With("type name is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	g, err := generator.New(manifest.Records, manifest.EnumTable())
	if err != nil {
		return err
	}
	components, err := g.Components(name)
	if err != nil {
		return err
	}
	return components.Validate(args)
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r GenerateResponse) String() string {
	return types.Stringify(r)
}
