package utils

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"docvault/models"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate *validator.Validate

var hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func init() {
	validate = validator.New()

	// Register custom validations
	validate.RegisterValidation("object_id", validateObjectID)
	validate.RegisterValidation("hex_color", validateHexColor)
	validate.RegisterValidation("doc_category", validateDocCategory)
	validate.RegisterValidation("resource_class", validateResourceClass)

	// Register custom tag name function
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidateStruct validates a struct using validator tags
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

// formatValidationErrors formats validation errors for better readability
func formatValidationErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var messages []string
		for _, e := range validationErrors {
			messages = append(messages, getValidationMessage(e))
		}
		return errors.New(strings.Join(messages, "; "))
	}
	return err
}

// getValidationMessage returns a user-friendly validation message
func getValidationMessage(e validator.FieldError) string {
	field := e.Field()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", field, e.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "object_id":
		return fmt.Sprintf("%s must be a valid object id", field)
	case "hex_color":
		return fmt.Sprintf("%s must be a hex color like #1a2b3c", field)
	case "doc_category":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(models.DocumentCategories, ", "))
	case "resource_class":
		return fmt.Sprintf("%s must be one of: video, image, document", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func validateObjectID(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" || value == "root" {
		return true
	}
	_, err := primitive.ObjectIDFromHex(value)
	return err == nil
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

func validateDocCategory(fl validator.FieldLevel) bool {
	return models.IsValidCategory(fl.Field().String())
}

func validateResourceClass(fl validator.FieldLevel) bool {
	return models.IsValidResourceClass(fl.Field().String())
}
