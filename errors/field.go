package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field ties err to one attribute of a message or model, so a client can
// point at the input that failed, for example the Deposit of a MakeMsg. It
// returns nil for a nil err.
//
// Field names use Go naming with dots for nesting: Maker, LockUntil,
// Metadata.Schema.
func Field(fieldName string, err error, description string, args ...interface{}) error {
	if errIsNil(err) {
		return nil
	}

	// one stack trace per error, taken at the innermost wrap
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}

	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}

	return &fieldError{
		parent: err,
		field:  fieldName,
		desc:   description,
	}
}

// AppendField adds Field(fieldName, fieldErrOrNil) to errorsOrNil. Model
// Validate methods chain it once per attribute.
func AppendField(errorsOrNil error, fieldName string, fieldErrOrNil error) error {
	return Append(errorsOrNil, Field(fieldName, fieldErrOrNil, ""))
}

type fieldError struct {
	parent error
	field  string
	desc   string
}

func (err *fieldError) Error() string {
	if err.desc == "" {
		return fmt.Sprintf("field %q: %s", err.field, err.parent)
	}
	return fmt.Sprintf("field %q: %s: %s", err.field, err.desc, err.parent)
}

// Cause returns the wrapped error, so Is sees through the field.
func (err *fieldError) Cause() error {
	return err.parent
}

// Field returns the attribute name.
func (err *fieldError) Field() string {
	return err.field
}

// FieldErrors returns the errors attached to fieldName anywhere in err,
// looking through multi errors and wraps. Tests use it through
// vaultswaptest/assert.FieldError.
func FieldErrors(err error, fieldName string) []error {
	if errIsNil(err) {
		return nil
	}

	var res []error
	for {
		if err == nil {
			return res
		}

		if f, ok := err.(fielder); ok {
			if f.Field() == fieldName {
				return append(res, err)
			}
		}

		if u, ok := err.(unpacker); ok {
			for _, e := range u.Unpack() {
				res = append(res, FieldErrors(e, fieldName)...)
			}
			return res
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return res
		}
	}
}

type fielder interface {
	Field() string
}
