package req

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gorilla/schema"
	"github.com/xy-planning-network/webbot"
)

// newFieldDecoder constructs a *schema.Decoder tolerating fields a struct does not declare,
// since every request carries fields, such as requestHandler, meant for others.
func newFieldDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	dec.ZeroEmpty(true)

	return dec
}

// translateDecoderError converts an error returned by *schema.Decoder into standardized errors.
//
// Mismatches between the fields and the struct become ValidationErrors.
// Misconfigured structs become ErrNotImplemented
// and anything else is ErrUnexpected.
func translateDecoderError(err error) error {
	var multi schema.MultiError
	if !errors.As(err, &multi) {
		return fmt.Errorf("%w: %s", webbot.ErrBadFormat, err)
	}

	var validErrs ValidationErrors
	for _, fieldErr := range multi {
		switch e := fieldErr.(type) {
		case schema.ConversionError:
			// Index is -1 for values that are not slices.
			validErrs = append(validErrs, ValidationError{
				Field: e.Key,
				Got:   fmt.Sprintf("bad value at index %d", max(0, e.Index)),
				Rule:  "must be " + e.Type.String(),
			})

		case schema.EmptyFieldError:
			return fmt.Errorf(`%w: use validate tags to set "required" fields, not schema`, webbot.ErrNotImplemented)

		case schema.UnknownKeyError:
			validErrs = append(validErrs, ValidationError{
				Field: e.Key,
				Got:   "value is set",
				Rule:  "unexpected key should not be set",
			})

		default:
			// schema only reports a missing converter once a value for the field arrives.
			if strings.Contains(e.Error(), "schema: converter not found for") {
				return fmt.Errorf("%w: cannot convert values into unsupported type", webbot.ErrNotImplemented)
			}

			return fmt.Errorf("%w: %s", webbot.ErrUnexpected, e)
		}
	}

	return validErrs
}
