package decoder

import (
	"fmt"
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/kokukuma/mdl-exchange/document"
)

const dateLayout = "2006-01-02"

func normalizeValue(field document.CanonicalField, v interface{}) interface{} {
	v = unwrapValue(v)

	switch field {
	case document.FieldDOB, document.FieldStateIDExpiration, document.FieldStateIDIssued:
		return formatDate(v)
	case document.FieldFirstName, document.FieldLastName, document.FieldAddress1,
		document.FieldCity, document.FieldState:
		return normalizeText(v)
	case document.FieldZipcode:
		return normalizeZipcode(v)
	case document.FieldSex:
		return normalizeSex(v)
	case document.FieldEyeColor:
		if s, ok := stringValue(v); ok {
			return strings.TrimSpace(s)
		}
	}
	return v
}

// unwrapValue unwraps tagged CBOR values (tag 1004 full-date, tag 0
// date-time) and single-entry structured values to their inner value.
func unwrapValue(v interface{}) interface{} {
	switch t := v.(type) {
	case cbor.Tag:
		return t.Content
	case map[string]interface{}:
		if len(t) == 1 {
			for _, inner := range t {
				return inner
			}
		}
	case map[interface{}]interface{}:
		if len(t) == 1 {
			for _, inner := range t {
				return inner
			}
		}
	}
	return v
}

// formatDate reformats date values to YYYY-MM-DD. A value that cannot be
// parsed keeps its string form; one bad date never fails the whole parse.
func formatDate(v interface{}) interface{} {
	switch t := v.(type) {
	case time.Time:
		return t.Format(dateLayout)
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range []string{
			dateLayout,
			time.RFC3339,
			"2006-01-02T15:04:05",
			"2006/01/02",
			"20060102",
		} {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed.Format(dateLayout)
			}
		}
		return s
	}
	return v
}

func normalizeText(v interface{}) interface{} {
	s, ok := stringValue(v)
	if !ok {
		return v
	}
	return strings.ToUpper(strings.TrimSpace(s))
}

// normalizeZipcode strips everything but digits; ZIP+4 keeps the first
// five, anything shorter passes through as-is.
func normalizeZipcode(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	var digits strings.Builder
	for _, r := range fmt.Sprint(v) {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	clean := digits.String()
	if len(clean) >= 5 {
		return clean[:5]
	}
	return clean
}

// normalizeSex maps the ISO/IEC 5218 codes and their common text forms to
// male/female/unspecified; unknown codes pass through lower-cased.
func normalizeSex(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(fmt.Sprint(v))) {
	case "m", "male", "1":
		return "male"
	case "f", "female", "2":
		return "female"
	case "x", "non-binary", "0":
		return "unspecified"
	default:
		return strings.ToLower(strings.TrimSpace(fmt.Sprint(v)))
	}
}

func stringValue(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case []byte:
		return string(t), true
	}
	return "", false
}
