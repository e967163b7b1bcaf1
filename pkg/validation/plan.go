// Package validation checks content plans against the structural schema the
// rendering templates are written for. Absence is always legal (templates
// degrade gracefully); what validation catches is a present field of the
// wrong shape, the kind of drift a model-produced plan can introduce
// silently.
package validation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-docgen/pkg/plan"
)

// Issue represents a validation error with optional location metadata.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// Result captures validation outcomes.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// Validator validates plan documents against the content-plan schema.
type Validator struct {
	schema *openapi3.Schema
}

// New builds a Validator around the canonical content-plan schema.
func New() *Validator {
	return &Validator{schema: planSchema()}
}

// Validate decodes the document payload and checks it structurally.
func (v *Validator) Validate(ctx context.Context, doc plan.Document) Result {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return Result{Issues: []Issue{{Message: err.Error()}}}
	}

	value, err := decodeLoose(doc.Raw())
	if err != nil {
		return Result{Issues: []Issue{{Message: err.Error()}}}
	}

	if err := v.schema.VisitJSON(value, openapi3.MultiErrors()); err != nil {
		return Result{Issues: issuesFromError(err)}
	}
	return Result{Valid: true}
}

// decodeLoose produces the dynamically-typed value VisitJSON expects. JSON
// is tried first; YAML covers the rest since plans may be authored by hand.
func decodeLoose(raw []byte) (any, error) {
	var value any
	if err := json.Unmarshal(raw, &value); err == nil {
		return value, nil
	}
	if err := yaml.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("validation: parse plan: %w", err)
	}
	return value, nil
}

func issuesFromError(err error) []Issue {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		issues := make([]Issue, 0, len(multi))
		for _, item := range multi {
			issues = append(issues, issueFromError(item))
		}
		return issues
	}
	return []Issue{issueFromError(err)}
}

func issueFromError(err error) Issue {
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		return Issue{
			Path:    "/" + strings.Join(schemaErr.JSONPointer(), "/"),
			Message: schemaErr.Reason,
		}
	}
	return Issue{Message: strings.TrimSpace(err.Error())}
}

// planSchema describes the content-plan shape the adapters render. Every
// field is optional; types are strict.
func planSchema() *openapi3.Schema {
	section := objectSchema(map[string]*openapi3.Schema{
		"title":      openapi3.NewStringSchema(),
		"section_id": openapi3.NewStringSchema(),
		"purpose":    openapi3.NewStringSchema(),
		"key_points": stringArray(),
		"examples": arrayOf(objectSchema(map[string]*openapi3.Schema{
			"type":        openapi3.NewStringSchema(),
			"description": openapi3.NewStringSchema(),
		})),
		"visuals": stringArray(),
	})
	// Subsections reuse the section shape one level down; the renderer does
	// not assume a fixed depth, so neither does the schema check beyond the
	// level the upstream planner emits.
	section.WithProperty("subsections", arrayOf(objectSchema(map[string]*openapi3.Schema{
		"title":      openapi3.NewStringSchema(),
		"section_id": openapi3.NewStringSchema(),
		"purpose":    openapi3.NewStringSchema(),
		"key_points": stringArray(),
	})))

	return objectSchema(map[string]*openapi3.Schema{
		"title": openapi3.NewStringSchema(),
		"overview": objectSchema(map[string]*openapi3.Schema{
			"summary":          openapi3.NewStringSchema(),
			"primary_use_case": openapi3.NewStringSchema(),
			"problem_solved":   openapi3.NewStringSchema(),
		}),
		"personas": arrayOf(objectSchema(map[string]*openapi3.Schema{
			"name":          openapi3.NewStringSchema(),
			"description":   openapi3.NewStringSchema(),
			"key_tasks":     stringArray(),
			"benefits":      stringArray(),
			"prerequisites": stringArray(),
		})),
		"key_concepts": arrayOf(objectSchema(map[string]*openapi3.Schema{
			"name":        openapi3.NewStringSchema(),
			"description": openapi3.NewStringSchema(),
		})),
		"content_structure": arrayOf(section),
		"cross_references": arrayOf(objectSchema(map[string]*openapi3.Schema{
			"service":     openapi3.NewStringSchema(),
			"description": openapi3.NewStringSchema(),
			"url":         openapi3.NewStringSchema(),
		})),
		"security_compliance": objectSchema(map[string]*openapi3.Schema{
			"security_considerations": stringArray(),
			"compliance_requirements": stringArray(),
		}),
		"glossary": arrayOf(objectSchema(map[string]*openapi3.Schema{
			"term":       openapi3.NewStringSchema(),
			"definition": openapi3.NewStringSchema(),
		})),
		"resources": arrayOf(objectSchema(map[string]*openapi3.Schema{
			"title":       openapi3.NewStringSchema(),
			"description": openapi3.NewStringSchema(),
			"url":         openapi3.NewStringSchema(),
			"type":        openapi3.NewStringSchema(),
		})),
		"improvement_suggestions": arrayOf(objectSchema(map[string]*openapi3.Schema{
			"suggestion": openapi3.NewStringSchema(),
			"rationale":  openapi3.NewStringSchema(),
		})),
	})
}

func objectSchema(properties map[string]*openapi3.Schema) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	for name, prop := range properties {
		schema.WithProperty(name, prop)
	}
	return schema
}

func arrayOf(item *openapi3.Schema) *openapi3.Schema {
	schema := openapi3.NewArraySchema()
	schema.Items = item.NewRef()
	return schema
}

func stringArray() *openapi3.Schema {
	return arrayOf(openapi3.NewStringSchema())
}
