package req

import (
	"errors"
	"reflect"
	"strings"

	v10 "github.com/go-playground/validator/v10"
	"github.com/xy-planning-network/webbot"
)

type validator struct {
	valid *v10.Validate
}

// newValidator constructs a validator naming fields by their json, then schema, struct tags
// and understanding the "enum" rule.
func newValidator() validator {
	v := v10.New()
	v.RegisterValidation("enum", validateEnumerable)
	v.RegisterTagNameFunc(tagName)

	return validator{v}
}

func tagName(field reflect.StructField) string {
	for _, key := range []string{"json", "schema"} {
		name, _, _ := strings.Cut(field.Tag.Get(key), ",")
		if name != "" && name != "-" {
			return name
		}
	}

	return ""
}

// validate checks the fields on structPtr match the rules set by "validate" struct tags.
// On failure, validate translates each issue to a ValidationError,
// returning them all as ValidationErrors.
func (v validator) validate(structPtr any) error {
	err := v.valid.Struct(structPtr)
	if err == nil {
		return nil
	}

	var errs v10.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	out := make(ValidationErrors, 0, len(errs))
	for _, fe := range errs {
		field := fe.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}

		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}

		out = append(out, ValidationError{
			Field: field,
			Got:   fe.Value(),
			Rule:  rule + "; " + fe.Type().String(),
		})
	}

	return out
}

// validateEnumerable validates whether field is a valid Enumerable or slice of valid Enumerable.
func validateEnumerable(fl v10.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice {
		return validEnums(field)
	}

	items := make([]reflect.Value, field.Len())
	for i := range items {
		items[i] = field.Index(i)
	}

	return validEnums(items...)
}

// validEnums asserts each [reflect.Value] is a valid Enumerable.
func validEnums(items ...reflect.Value) bool {
	if len(items) == 0 {
		return false
	}

	for _, item := range items {
		enum, ok := item.Interface().(webbot.Enumerable)
		if !ok || enum.Valid() != nil {
			return false
		}
	}

	return true
}
