package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Field rules are applied to already-trimmed values.
type planFields struct {
	Title       string `validate:"required,max=100"`
	Description string `validate:"max=1000"`
}

type stepFields struct {
	Title   string `validate:"required,max=100"`
	Content string `validate:"max=1000"`
}

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// normalizePlan trims the plan fields and checks them in declaration order.
func normalizePlan(title, description string) (planFields, error) {
	fields := planFields{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
	}
	return fields, checkFields("plan", fields)
}

func normalizeStep(title, content string) (stepFields, error) {
	fields := stepFields{
		Title:   strings.TrimSpace(title),
		Content: strings.TrimSpace(content),
	}
	return fields, checkFields("step", fields)
}

// checkFields reports only the first failing field.
func checkFields(entity string, fields interface{}) error {
	err := getValidator().Struct(fields)
	if err == nil {
		return nil
	}

	var failures validator.ValidationErrors
	if !errors.As(err, &failures) || len(failures) == 0 {
		return err
	}

	fe := failures[0]
	name := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return &ValidationError{Message: fmt.Sprintf("%s %s is required", entity, name)}
	case "max":
		return &ValidationError{Message: fmt.Sprintf("%s %s cannot exceed %s characters", entity, name, fe.Param())}
	default:
		return &ValidationError{Message: fmt.Sprintf("%s %s is invalid", entity, name)}
	}
}
