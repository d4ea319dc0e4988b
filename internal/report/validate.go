package report

import (
	"fmt"
	"unicode"

	"github.com/dgallion1/covolex/internal/extract"
)

// ValidationError rejects a report-generation request. It is fatal for
// that request only; callers must leave the accumulated selection intact.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid report request: %s", e.Reason)
}

// Validate checks that the selection is renderable: a non-empty selection,
// real (non-placeholder) installation and permit metadata, and items whose
// category and field are usable as element names. Categories and fields end
// up in XML element-name position, where escaping cannot help, so anything
// outside the recognized category set or the element-name syntax is
// rejected here.
func Validate(items []Item, meta extract.Record) error {
	if len(items) == 0 {
		return &ValidationError{Reason: "no selected data"}
	}
	if !extract.Present(meta.Installation) {
		return &ValidationError{Reason: "missing installation description"}
	}
	if !extract.Present(meta.Permit) {
		return &ValidationError{Reason: "missing permit number"}
	}
	for _, it := range items {
		if !extract.ValidCategory(it.Category) {
			return &ValidationError{Reason: fmt.Sprintf("category not recognized: %q", it.Category)}
		}
		if !ValidFieldName(it.Field) {
			return &ValidationError{Reason: fmt.Sprintf("invalid field name: %q", it.Field)}
		}
	}
	return nil
}

// ValidFieldName reports whether s can serve as an XML element name: a
// letter or underscore followed by letters, digits, '-', '_' or '.'.
func ValidFieldName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case unicode.IsLetter(r) || r == '_':
		case i > 0 && (unicode.IsDigit(r) || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}
