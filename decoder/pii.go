package decoder

import (
	"strings"

	"github.com/kokukuma/mdl-exchange/document"
)

// PIIFromMDL maps the extracted fields into the canonical StateID record
// consumed by the identity-resolution pipeline. Fields the wallet did not
// supply stay empty.
func PIIFromMDL(e *ExtractedIdentity) *document.StateID {
	f := e.Fields

	return &document.StateID{
		FirstName:            fieldString(f, document.FieldFirstName),
		LastName:             fieldString(f, document.FieldLastName),
		DOB:                  fieldString(f, document.FieldDOB),
		Address1:             fieldString(f, document.FieldAddress1),
		City:                 fieldString(f, document.FieldCity),
		State:                fieldString(f, document.FieldState),
		Zipcode:              fieldString(f, document.FieldZipcode),
		StateIDNumber:        fieldString(f, document.FieldStateIDNumber),
		StateIDJurisdiction:  jurisdiction(f),
		StateIDExpiration:    fieldString(f, document.FieldStateIDExpiration),
		StateIDIssued:        fieldString(f, document.FieldStateIDIssued),
		IssuingCountryCode:   issuingCountry(f),
		Sex:                  fieldString(f, document.FieldSex),
		Height:               f[document.FieldHeight],
		Weight:               f[document.FieldWeight],
		EyeColor:             strings.ToLower(fieldString(f, document.FieldEyeColor)),
		DocumentTypeReceived: "drivers_license",
	}
}

// jurisdiction resolves the issuing jurisdiction: the explicit element if
// present, else the resident state, else the first two characters of the
// issuing authority, uppercased.
func jurisdiction(f map[document.CanonicalField]interface{}) string {
	if s := fieldString(f, document.FieldStateIDJurisdiction); s != "" {
		return s
	}
	if s := fieldString(f, document.FieldState); s != "" {
		return s
	}
	if s := fieldString(f, document.FieldIssuingAuthority); s != "" {
		if len(s) > 2 {
			s = s[:2]
		}
		return strings.ToUpper(s)
	}
	return ""
}

func issuingCountry(f map[document.CanonicalField]interface{}) string {
	if s := fieldString(f, document.FieldIssuingCountryCode); s != "" {
		return s
	}
	return "US"
}

func fieldString(f map[document.CanonicalField]interface{}, key document.CanonicalField) string {
	switch t := f[key].(type) {
	case string:
		return t
	case []byte:
		return string(t)
	}
	return ""
}
