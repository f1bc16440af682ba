package validate

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/baharkarakas/bloglist-backend/internal/apperr"
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string { // error interface
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

// add appends ef when it is non-nil.
func (e *Errs) add(ef *ErrField) {
	if ef != nil {
		*e = append(*e, *ef)
	}
}

// err wraps e in a validation error carrying the fields as details, or
// returns a nil interface when there are no field errors.
func (e Errs) err() error {
	if len(e) == 0 {
		return nil
	}
	ae := apperr.Validation("invalid input", e)
	ae.Err = e
	return ae
}

// Helpers
func Required(field, value string) *ErrField {
	if strings.TrimSpace(value) == "" {
		return &ErrField{Field: field, Msg: "required"}
	}
	return nil
}

func MinInt(field string, v, min int64) *ErrField {
	if v < min {
		return &ErrField{Field: field, Msg: "must be >= " + strconv.FormatInt(min, 10)}
	}
	return nil
}

func MinLen(field, value string, min int) *ErrField {
	if utf8.RuneCountInString(value) < min {
		return &ErrField{Field: field, Msg: "must be at least " + strconv.Itoa(min) + " characters"}
	}
	return nil
}
