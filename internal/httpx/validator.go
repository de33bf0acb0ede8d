package httpx

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate *validator.Validate

var specificationPattern = regexp.MustCompile(`^[a-z0-9_.]+::[a-z0-9_]+$`)

func init() {
	validate = NewValidator()
}

// NewValidator returns a validator that knows the "specification" tag and
// whose "uuid" tag accepts any case, as uuid.Parse does. The built-in tag
// only matches lowercase hex.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("specification", validateSpecification)
	_ = v.RegisterValidation("uuid", validateUUID)
	return v
}

func validateUUID(fl validator.FieldLevel) bool {
	_, err := uuid.Parse(fl.Field().String())
	return err == nil
}

// validateSpecification checks the "<format>::<name>" shape of a specification id.
// Whether the id is known is decided by the caller.
func validateSpecification(fl validator.FieldLevel) bool {
	return specificationPattern.MatchString(fl.Field().String())
}

func ValidateStruct(s interface{}) []ErrorDetail {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var details []ErrorDetail
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()

		var message string
		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "uuid":
			message = fmt.Sprintf("%s must be a valid UUID", field)
		case "specification":
			message = fmt.Sprintf("%s must look like <format>::<name>", field)
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}

		fieldName := strings.ToLower(field[:1]) + field[1:]
		details = append(details, ErrorDetail{
			Field:   fieldName,
			Message: message,
		})
	}

	return details
}
