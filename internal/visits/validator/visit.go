package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"homeward/pkg/logger"
	"homeward/pkg/model"
)

// Applicant phones are accepted in a permissive local format: digits, spaces,
// parentheses, plus, hyphen, dot, 7 to 20 characters.
var phoneRegex = regexp.MustCompile(`^[0-9+()\-.\s]{7,20}$`)

const minCommentLength = 4

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type VisitValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewVisitValidator(log *logger.Logger) *VisitValidator {
	v := validator.New()

	if err := v.RegisterValidation("visitphone", validatePhone); err != nil {
		log.Fatal("Failed to register 'visitphone' validator", "error", err)
	}

	return &VisitValidator{
		validate: v,
		logger:   log,
	}
}

func validatePhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

func (v *VisitValidator) ValidateSchedule(req *model.VisitSchedule) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if req.VisitAtLocal == "" && req.VisitAtUTC == "" {
		return ValidationErrors{
			ValidationError{
				Field:   "VisitAtLocal",
				Message: "a visit date/time is required (local plus timezone, or UTC)",
			},
		}
	}

	return nil
}

func (v *VisitValidator) ValidateCompletion(req *model.VisitCompletion) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if len(strings.TrimSpace(req.Comment)) < minCommentLength {
		return ValidationErrors{
			ValidationError{
				Field:   "Comment",
				Message: fmt.Sprintf("comment must be at least %d characters", minCommentLength),
			},
		}
	}

	return nil
}

func (v *VisitValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "visitphone":
			message = fmt.Sprintf("%s must be a phone number (digits, spaces, parentheses, plus, hyphen, dot; 7-20 characters)", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
