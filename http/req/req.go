package req

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"reflect"

	"github.com/gorilla/schema"
	"github.com/xy-planning-network/webbot"
)

// Parser decodes payloads into structs and validates them.
type Parser struct {
	decoder *schema.Decoder
	validator
}

func NewParser() *Parser {
	return &Parser{
		decoder:   newFieldDecoder(),
		validator: newValidator(),
	}
}

// ParseBody decodes into a pointer to a struct the JSON data in body.
// If successful, ParseBody runs validation against the contents,
// returning an ErrNotValid if the data fails validation rules.
//
// ParseBody reads the entire body and it can't be read from again.
// Use a [io.TeeReader] if body needs to be reused after calling ParseBody.
func (p *Parser) ParseBody(body io.Reader, structPtr any) error {
	var ourFault *json.InvalidUnmarshalError
	err := json.NewDecoder(body).Decode(structPtr)
	if errors.As(err, &ourFault) {
		return fmt.Errorf("webbot/http/req: %w: ParseBody called with non-pointer: %s", webbot.ErrBadAny, err)
	}

	if err != nil {
		return fmt.Errorf("webbot/http/req: %w: failed decoding request body: %s", webbot.ErrBadFormat, err)
	}

	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("webbot/http/req: %T failed validation: %w", structPtr, err)
	}

	return nil
}

// ParseFields decodes into a pointer to a struct the form fields or query params in fields.
// If successful, ParseFields runs validation against the contents,
// returning an ErrNotValid if the data fails validation rules.
func (p *Parser) ParseFields(fields url.Values, structPtr any) error {
	if v := reflect.ValueOf(structPtr); v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("webbot/http/req: %w: ParseFields called with %T, not a pointer to a struct", webbot.ErrBadAny, structPtr)
	}

	if err := p.decoder.Decode(structPtr, fields); err != nil {
		return fmt.Errorf("webbot/http/req: failed decoding request fields: %w", translateDecoderError(err))
	}

	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("webbot/http/req: %T failed validation: %w", structPtr, err)
	}

	return nil
}

// Validate checks structPtr against its "validate" struct tags.
func (p *Parser) Validate(structPtr any) error { return p.validate(structPtr) }
