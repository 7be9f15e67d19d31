package openapi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-inputschema/pkg/model"
)

// Document publishes the schemas of the supplied root inputs as components of
// an OpenAPI 3 document, keyed by input id.
func Document(title, version string, inputs ...model.Input) (*openapi3.T, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("openapi: document title is required")
	}
	if strings.TrimSpace(version) == "" {
		version = "0.0.0"
	}

	schemas := make(openapi3.Schemas, len(inputs))
	for _, input := range inputs {
		if input == nil {
			return nil, errors.New("openapi: input is nil")
		}
		if _, exists := schemas[input.ID()]; exists {
			return nil, fmt.Errorf("openapi: component %q defined twice: %w", input.ID(), model.ErrDuplicateID)
		}
		schema, err := Schema(input)
		if err != nil {
			return nil, err
		}
		schemas[input.ID()] = openapi3.NewSchemaRef("", schema)
	}

	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   title,
			Version: version,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: schemas,
		},
	}, nil
}
