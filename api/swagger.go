package api

import (
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var openapiDocument []byte

// GetSwagger loads the embedded OpenAPI document the request validator checks against.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()

	swagger, err := loader.LoadFromData(openapiDocument)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi document: %w", err)
	}

	err = swagger.Validate(loader.Context)
	if err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}

	return swagger, nil
}
