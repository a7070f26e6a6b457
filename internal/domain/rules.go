package domain

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	apperrors "ordermgmt/internal/errors"
)

const (
	FieldCustomerName = "customer_name"
	FieldItem         = "item"
	FieldQuantity     = "quantity"
	FieldStatus       = "status"
)

const (
	MaxTextLength = 255
	MinQuantity   = 1
	MaxQuantity   = 10000
)

type fieldRule struct {
	tag      string
	messages map[string]string
	fallback string
}

var rules = map[string]fieldRule{
	FieldCustomerName: {
		tag:      "notblank,max=255",
		messages: map[string]string{"notblank": "Customer name is required"},
		fallback: "Customer name must be at most 255 characters",
	},
	FieldItem: {
		tag:      "notblank,max=255",
		messages: map[string]string{"notblank": "Item is required"},
		fallback: "Item must be at most 255 characters",
	},
	FieldQuantity: {
		tag:      "min=1,max=10000",
		fallback: "Quantity must be between 1 and 10,000",
	},
	FieldStatus: {
		tag:      "order_status",
		fallback: "Invalid status. Must be: pending, completed, or cancelled",
	},
}

var structFields = map[string]string{
	"CustomerName": FieldCustomerName,
	"Item":         FieldItem,
	"Quantity":     FieldQuantity,
	"Status":       FieldStatus,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("order_status", func(fl validator.FieldLevel) bool {
		return Status(fl.Field().String()).Valid()
	})
	return v
}

func ValidateCustomerName(v string) error { return validateField(FieldCustomerName, v) }
func ValidateItem(v string) error         { return validateField(FieldItem, v) }
func ValidateQuantity(v int) error        { return validateField(FieldQuantity, v) }

func ValidateStatus(s Status) error {
	return validateField(FieldStatus, string(s))
}

// ParseStatus converts raw input into a Status, rejecting unknown values.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if err := ValidateStatus(s); err != nil {
		return "", err
	}
	return s, nil
}

func validateField(field string, value any) error {
	rule := rules[field]
	err := validate.Var(value, rule.tag)
	if err == nil {
		return nil
	}
	return toValidationError(field, err)
}

// validateStruct stops at the first failing field in declaration order.
func validateStruct(o *Order) error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		field := structFields[ves[0].StructField()]
		return ruleError(field, ves[0].Tag())
	}
	return apperrors.NewValidationError(err.Error())
}

func toValidationError(field string, err error) error {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		return ruleError(field, ves[0].Tag())
	}
	return apperrors.NewFieldError(field, err.Error())
}

func ruleError(field, tag string) *apperrors.ValidationError {
	rule := rules[field]
	msg, ok := rule.messages[tag]
	if !ok {
		msg = rule.fallback
	}
	return apperrors.NewFieldError(field, msg)
}
