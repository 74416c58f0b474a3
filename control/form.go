package control

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xy-planning-network/webbot"
	"github.com/xy-planning-network/webbot/dispatch"
	"github.com/xy-planning-network/webbot/http/req"
)

var fieldParser = req.NewParser()

// Decode decodes the fields of r into structPtr and validates it.
func Decode(r *dispatch.Request, structPtr any) error {
	return fieldParser.ParseFields(r.Fields, structPtr)
}

// DecodeJSON decodes the JSON object held in field of r into structPtr and validates it.
//
// dispatch.FromHTTP keeps each object nested in a JSON body as the JSON text of its field,
// so {"comment": {"text": "hi"}} is read with DecodeJSON(r, "comment", &c).
func DecodeJSON(r *dispatch.Request, field string, structPtr any) error {
	data := r.Fields.Get(field)
	if data == "" {
		return fmt.Errorf("%w: field %s", webbot.ErrMissingData, field)
	}

	return fieldParser.ParseBody(strings.NewReader(data), structPtr)
}

// Form returns a Processor processing r only once its fields decode and validate into a T.
// Failures are kept on the UI as FieldErrors for SetUIData and the template to show.
func Form[T any](process func(ui *UI, r *dispatch.Request, form *T) error) Processor {
	return formProcessor[T]{decode: Decode, process: process}
}

// JSONForm is like Form, decoding the JSON object held in field instead.
func JSONForm[T any](field string, process func(ui *UI, r *dispatch.Request, form *T) error) Processor {
	decode := func(r *dispatch.Request, structPtr any) error { return DecodeJSON(r, field, structPtr) }
	return formProcessor[T]{decode: decode, process: process}
}

type formProcessor[T any] struct {
	decode  func(r *dispatch.Request, structPtr any) error
	process func(ui *UI, r *dispatch.Request, form *T) error
}

func (fp formProcessor[T]) Valid(ui *UI, r *dispatch.Request) bool {
	form := new(T)
	err := fp.decode(r, form)
	if err == nil {
		ui.form = form
		return true
	}

	var ve req.ValidationErrors
	if errors.As(err, &ve) {
		ui.FieldErrors = ve.Fields()
	} else {
		ui.FieldErrors = map[string][]string{"": {err.Error()}}
	}

	return false
}

func (fp formProcessor[T]) Process(ui *UI, r *dispatch.Request) error {
	form, ok := ui.form.(*T)
	if !ok {
		form = new(T)
		if err := fp.decode(r, form); err != nil {
			return err
		}
	}

	return fp.process(ui, r, form)
}
