// Package payloadschema validates API request bodies against embedded JSON
// schemas before they are decoded into Go types.
package payloadschema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const (
	readabilitySchemaName = "readability_request.schema.json"
	translateSchemaName   = "translate_request.schema.json"
)

//go:embed readability_request.schema.json
var readabilitySchemaJSON string

//go:embed translate_request.schema.json
var translateSchemaJSON string

// ErrInvalidPayload marks client errors: malformed JSON or schema violations.
var ErrInvalidPayload = errors.New("invalid payload")

type ReadabilityRequest struct {
	Text string `json:"text"`
	Lang string `json:"lang,omitempty"`
}

type TranslateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang,omitempty"`
	TargetLang string `json:"target_lang"`
}

var (
	compileOnce     sync.Once
	compiledSchemas map[string]*jsonschema.Schema
	compileErr      error
)

func ValidateReadabilityRequest(payload []byte) (*ReadabilityRequest, error) {
	var req ReadabilityRequest
	if err := validateInto(readabilitySchemaName, payload, &req); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("%w: text must not be blank", ErrInvalidPayload)
	}
	return &req, nil
}

func ValidateTranslateRequest(payload []byte) (*TranslateRequest, error) {
	var req TranslateRequest
	if err := validateInto(translateSchemaName, payload, &req); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("%w: text must not be blank", ErrInvalidPayload)
	}
	return &req, nil
}

func validateInto(schemaName string, payload []byte, out any) error {
	value, err := decodeStrictJSON(payload)
	if err != nil {
		return fmt.Errorf("%w: decode payload JSON: %v", ErrInvalidPayload, err)
	}

	schema, err := loadSchema(schemaName)
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}

	if err := schema.Validate(value); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	normalized, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("normalize payload JSON: %w", err)
	}
	if err := json.Unmarshal(normalized, out); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	return nil
}

func loadSchema(name string) (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020

		sources := map[string]string{
			readabilitySchemaName: readabilitySchemaJSON,
			translateSchemaName:   translateSchemaJSON,
		}
		for resource, source := range sources {
			if err := compiler.AddResource(resource, strings.NewReader(source)); err != nil {
				compileErr = fmt.Errorf("add schema resource %s: %w", resource, err)
				return
			}
		}

		schemas := make(map[string]*jsonschema.Schema, len(sources))
		for resource := range sources {
			schema, err := compiler.Compile(resource)
			if err != nil {
				compileErr = fmt.Errorf("compile schema %s: %w", resource, err)
				return
			}
			schemas[resource] = schema
		}
		compiledSchemas = schemas
	})

	if compileErr != nil {
		return nil, compileErr
	}
	schema, ok := compiledSchemas[name]
	if !ok {
		return nil, fmt.Errorf("schema %s not initialized", name)
	}
	return schema, nil
}

func decodeStrictJSON(raw []byte) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("payload is empty")
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}

	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("payload contains trailing content")
	}

	return value, nil
}
