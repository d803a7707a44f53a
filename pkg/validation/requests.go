package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// Validation constants
	MaxAttributes   = 100
	MaxAttributeKey = 100
	MaxNameLength   = 200
	MaxTypeLength   = 50

	// Regular expressions
	relTypePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	attrKeyPattern = regexp.MustCompile(`^[a-zA-Z_@][a-zA-Z0-9_]*$`)
)

func init() {
	validate = validator.New()
}

// NodeRequest represents a request to create a node at the engine
// boundary.
type NodeRequest struct {
	ID         string           `json:"id" validate:"omitempty,max=200"`
	Name       string           `json:"name" validate:"omitempty,max=200"`
	Level      int              `json:"level" validate:"omitempty,min=1"`
	Attributes map[string]any   `json:"attributes" validate:"omitempty,max=100"`
	KPIs       map[string]any   `json:"kpis" validate:"omitempty,max=100"`
	Position   *PositionRequest `json:"position" validate:"omitempty"`
	Visual     map[string]any   `json:"visual_properties" validate:"omitempty,max=100"`
}

// PositionRequest is a node's 2D layout position
type PositionRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// EdgeRequest represents a request to create an edge at the engine
// boundary.
type EdgeRequest struct {
	ID               string         `json:"id" validate:"omitempty,max=200"`
	Source           string         `json:"source" validate:"required,max=200"`
	Target           string         `json:"target" validate:"required,max=200"`
	RelationshipType string         `json:"relationship_type" validate:"omitempty,min=1,max=50"`
	Weight           *float64       `json:"weight" validate:"omitempty"`
	Directed         *bool          `json:"directed" validate:"omitempty"`
	Attributes       map[string]any `json:"attributes" validate:"omitempty,max=100"`
	Visual           map[string]any `json:"visual_properties" validate:"omitempty,max=100"`
}

// ValidateNodeRequest validates a node creation request
func ValidateNodeRequest(req *NodeRequest) error {
	if req == nil {
		return errors.New("node request cannot be nil")
	}

	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}

	if len(req.Attributes) > MaxAttributes {
		return fmt.Errorf("Attributes: maximum %d attributes allowed, got %d", MaxAttributes, len(req.Attributes))
	}
	for key := range req.Attributes {
		if err := ValidateAttributeKey(key); err != nil {
			return fmt.Errorf("Attributes: %w", err)
		}
	}
	for key := range req.KPIs {
		if err := ValidateAttributeKey(key); err != nil {
			return fmt.Errorf("KPIs: %w", err)
		}
	}

	return nil
}

// ValidateEdgeRequest validates an edge creation request
func ValidateEdgeRequest(req *EdgeRequest) error {
	if req == nil {
		return errors.New("edge request cannot be nil")
	}

	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}

	if req.RelationshipType != "" {
		if len(req.RelationshipType) > MaxTypeLength {
			return fmt.Errorf("RelationshipType: exceeds maximum length of %d characters", MaxTypeLength)
		}
		if !relTypePattern.MatchString(req.RelationshipType) {
			return fmt.Errorf("RelationshipType: '%s' contains invalid characters (only alphanumeric and underscore allowed)", req.RelationshipType)
		}
	}

	if len(req.Attributes) > MaxAttributes {
		return fmt.Errorf("Attributes: maximum %d attributes allowed, got %d", MaxAttributes, len(req.Attributes))
	}
	for key := range req.Attributes {
		if err := ValidateAttributeKey(key); err != nil {
			return fmt.Errorf("Attributes: %w", err)
		}
	}

	return nil
}

// ValidateAttributeKey validates an attribute or KPI key. An "@"
// prefix is allowed because XML imports surface element attributes as
// "@name" columns.
func ValidateAttributeKey(key string) error {
	if key == "" {
		return errors.New("attribute key cannot be empty")
	}
	if len(key) > MaxAttributeKey {
		return fmt.Errorf("attribute key '%s' exceeds maximum length of %d characters", key, MaxAttributeKey)
	}
	if !attrKeyPattern.MatchString(key) {
		return fmt.Errorf("attribute key '%s' is invalid (must start with letter, underscore or @, followed by alphanumeric or underscore)", key)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	for _, e := range validationErrs {
		field := e.Field()
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, tag)
		}
	}

	return err
}
