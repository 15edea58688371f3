// Package decoder turns a wallet's credential response into normalized
// identity attributes. This file carries the parse error taxonomy.
package decoder

import (
	"fmt"
	"strings"
)

// Error categories for parse failures. Every failure is an entry in
// ExtractedIdentity.Errors prefixed with one of these; Parse itself never
// fails.
const (
	// ErrCategoryDecode: input is neither valid base64 nor valid CBOR.
	ErrCategoryDecode = "DecodeError"

	// ErrCategoryStructure: decoded value lacks the expected
	// documents/issuerSigned/nameSpaces shape.
	ErrCategoryStructure = "StructureError"

	// ErrCategoryEmptyResult: structurally valid but zero recognized
	// attributes were extracted.
	ErrCategoryEmptyResult = "EmptyResultError"
)

func categoryMessage(category, format string, args ...interface{}) string {
	return fmt.Sprintf("%s: %s", category, fmt.Sprintf(format, args...))
}

// HasErrorCategory reports whether any message belongs to the category.
func HasErrorCategory(messages []string, category string) bool {
	for _, m := range messages {
		if strings.HasPrefix(m, category+": ") {
			return true
		}
	}
	return false
}
