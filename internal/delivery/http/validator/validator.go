// Package validator adapts go-playground/validator to echo's Validator
// interface so handlers can call c.Validate on bound input structs.
package validator

import (
	playground "github.com/go-playground/validator/v10"
)

// Validator wraps a single shared validate instance. The instance caches
// struct metadata, so one per process is the intended usage.
type Validator struct {
	validate *playground.Validate
}

// New creates the echo validator.
func New() *Validator {
	return &Validator{validate: playground.New()}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i any) error {
	return v.validate.Struct(i)
}
