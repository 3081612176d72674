package validation

import (
	"strings"
)

// Validation limits shared by the records service and the schema
var (
	// NameMaxLength mirrors the VARCHAR(100) name columns
	NameMaxLength = 100

	// MinID is the smallest caller-supplied key accepted
	MinID int64 = 1

	// MinMaxMarks is the smallest accepted exam maximum
	MinMaxMarks int64 = 1
)

// StringValidation checks a required string field
type StringValidation struct {
	Value  string
	MaxLen int
	reason string
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value: value,
	}
}

// WithMaxLength sets maximum length in runes
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// Validate performs validation. Whitespace-only values count as empty.
func (v *StringValidation) Validate() bool {
	if strings.TrimSpace(v.Value) == "" {
		v.reason = "cannot be empty"
		return false
	}

	if v.MaxLen > 0 && len([]rune(v.Value)) > v.MaxLen {
		v.reason = "is too long"
		return false
	}

	return true
}

// Reason explains the last failed Validate call
func (v *StringValidation) Reason() string {
	return v.reason
}

// NumericValidation checks an integer field against an inclusive minimum; a zero bound is unset
type NumericValidation struct {
	Value  int64
	Min    int64
	reason string
}

// NewNumericValidation creates a new numeric validation
func NewNumericValidation(value int64) *NumericValidation {
	return &NumericValidation{
		Value: value,
	}
}

// WithMin sets minimum value
func (v *NumericValidation) WithMin(min int64) *NumericValidation {
	v.Min = min
	return v
}

// Validate performs validation
func (v *NumericValidation) Validate() bool {
	if v.Min != 0 && v.Value < v.Min {
		v.reason = "must be positive"
		if v.Min != 1 {
			v.reason = "is below the minimum"
		}
		return false
	}

	return true
}

// Reason explains the last failed Validate call
func (v *NumericValidation) Reason() string {
	return v.reason
}
