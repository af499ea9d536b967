package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/edustack/exam-service/internal/models"
)

// Validator wraps go-playground validation with exam-specific rules
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with all custom rules registered
func New() *Validator {
	validate := validator.New()

	v := &Validator{validate: validate}
	v.registerBusinessRules()

	return v
}

// Validate validates any request struct. Returns nil when valid.
func (v *Validator) Validate(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

func (v *Validator) registerBusinessRules() {
	// Identity fields must carry visible characters, whitespace padding
	// alone does not identify a student
	v.validate.RegisterValidation("student_identity", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	v.validate.RegisterValidation("integrity_event", func(fl validator.FieldLevel) bool {
		return models.IntegrityEventType(fl.Field().String()).IsValid()
	})
}

// ValidateIdentity checks the identity gate for session start. The gate is
// evaluated again at the service layer so it holds even for callers that
// bypass struct validation.
func (v *Validator) ValidateIdentity(identity models.StudentIdentity) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(identity.Name) == "" {
		errs = append(errs, ValidationError{
			Field:   "student_name",
			Message: "student name is required",
			Value:   identity.Name,
			Rule:    "student_identity",
		})
	}
	if strings.TrimSpace(identity.Roll) == "" {
		errs = append(errs, ValidationError{
			Field:   "student_roll",
			Message: "student roll number is required",
			Value:   identity.Roll,
			Rule:    "student_identity",
		})
	}

	return errs
}

// ===== VALIDATION ERRORS =====

// ValidationError describes one failed rule on one field
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates every failed rule from one validation pass
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}

	messages := make([]string, len(e))
	for i, err := range e {
		messages[i] = err.Error()
	}
	return strings.Join(messages, "; ")
}

// ToValidationErrors converts go-playground errors into our error type
func ToValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{
			Field:   "",
			Message: err.Error(),
			Rule:    "struct",
		}}
	}

	errs := make(ValidationErrors, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		errs = append(errs, ValidationError{
			Field:   fe.Field(),
			Message: messageForTag(fe),
			Value:   fe.Value(),
			Rule:    fe.Tag(),
		})
	}
	return errs
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "student_identity":
		return "must not be blank"
	case "integrity_event":
		return "is not a recognized integrity event type"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
