package decoder

import (
	"testing"

	"github.com/kokukuma/mdl-exchange/document"
)

func identityWith(fields map[document.CanonicalField]interface{}) *ExtractedIdentity {
	return &ExtractedIdentity{Fields: fields}
}

func TestPIIFromMDL(t *testing.T) {
	e := identityWith(map[document.CanonicalField]interface{}{
		document.FieldFirstName:          "JANE",
		document.FieldLastName:           "SMITH",
		document.FieldDOB:                "1980-05-01",
		document.FieldAddress1:           "123 MAIN ST",
		document.FieldCity:               "ANNAPOLIS",
		document.FieldState:              "MD",
		document.FieldZipcode:            "21401",
		document.FieldStateIDNumber:      "D-123-456-789",
		document.FieldEyeColor:           "BLU",
		document.FieldHeight:             uint64(170),
		document.FieldIssuingCountryCode: "CA",
	})

	pii := PIIFromMDL(e)

	if pii.FirstName != "JANE" || pii.LastName != "SMITH" {
		t.Errorf("unexpected name: %s %s", pii.FirstName, pii.LastName)
	}
	if pii.DOB != "1980-05-01" {
		t.Errorf("unexpected dob: %s", pii.DOB)
	}
	if pii.IssuingCountryCode != "CA" {
		t.Errorf("expected explicit country CA, got %s", pii.IssuingCountryCode)
	}
	// eye color is lowercased for the canonical record
	if pii.EyeColor != "blu" {
		t.Errorf("expected eye color blu, got %s", pii.EyeColor)
	}
	if pii.Height != uint64(170) {
		t.Errorf("expected height 170, got %v", pii.Height)
	}
	if pii.DocumentTypeReceived != "drivers_license" {
		t.Errorf("unexpected document type: %s", pii.DocumentTypeReceived)
	}
}

func TestPIIIssuingCountryDefault(t *testing.T) {
	pii := PIIFromMDL(identityWith(map[document.CanonicalField]interface{}{}))
	if pii.IssuingCountryCode != "US" {
		t.Errorf("expected default country US, got %s", pii.IssuingCountryCode)
	}
}

func TestJurisdictionFallback(t *testing.T) {
	tests := []struct {
		name   string
		fields map[document.CanonicalField]interface{}
		want   string
	}{
		{
			name: "explicit jurisdiction wins",
			fields: map[document.CanonicalField]interface{}{
				document.FieldStateIDJurisdiction: "MD",
				document.FieldState:               "VA",
				document.FieldIssuingAuthority:    "California DMV",
			},
			want: "MD",
		},
		{
			name: "resident state second",
			fields: map[document.CanonicalField]interface{}{
				document.FieldState:            "VA",
				document.FieldIssuingAuthority: "California DMV",
			},
			want: "VA",
		},
		{
			name: "issuing authority prefix last",
			fields: map[document.CanonicalField]interface{}{
				document.FieldIssuingAuthority: "md mva",
			},
			want: "MD",
		},
		{
			name: "short authority kept whole",
			fields: map[document.CanonicalField]interface{}{
				document.FieldIssuingAuthority: "va",
			},
			want: "VA",
		},
		{
			name:   "nothing to derive from",
			fields: map[document.CanonicalField]interface{}{},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pii := PIIFromMDL(identityWith(tt.fields))
			if pii.StateIDJurisdiction != tt.want {
				t.Errorf("expected jurisdiction %q, got %q", tt.want, pii.StateIDJurisdiction)
			}
		})
	}
}
