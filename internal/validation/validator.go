package validation

import (
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// singleton instance of the validator
var instance *Validator

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("region_code", validateRegionCode)
	_ = v.RegisterValidation("granularity", validateGranularity)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Custom validation functions

const maxRegionLabelLength = 64

// validateRegionCode accepts any non-blank region label up to the length cap.
// Labels come from the source table and may carry ampersands, accents, or
// leading digits; membership and zero-match semantics are the dashboard
// service's concern, not a validation rule.
func validateRegionCode(fl validator.FieldLevel) bool {
	region := strings.TrimSpace(fl.Field().String())
	return region != "" && utf8.RuneCountInString(region) <= maxRegionLabelLength
}

// validateGranularity validates that a granularity is one of the chart buckets
func validateGranularity(fl validator.FieldLevel) bool {
	granularity := strings.ToLower(fl.Field().String())
	validGranularities := map[string]bool{
		"year":    true,
		"quarter": true,
		"month":   true,
	}
	return validGranularities[granularity]
}
