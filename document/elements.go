// Package document carries the static mDL element catalog: the ISO/IEC
// 18013-5 doc type and namespace, the element identifiers a verification
// request asks for, and their mapping to canonical PII field names.
package document

import (
	"github.com/kokukuma/mdl-exchange/mdoc"
)

var (
	IsoMDL mdoc.DocType = "org.iso.18013.5.1.mDL"
)

var (
	ISO1801351 mdoc.NameSpace = "org.iso.18013.5.1"
)

var (
	// Namespace: "org.iso.18013.5.1"
	IsoFamilyName          mdoc.ElementIdentifier = "family_name"
	IsoGivenName           mdoc.ElementIdentifier = "given_name"
	IsoBirthDate           mdoc.ElementIdentifier = "birth_date"
	IsoIssueDate           mdoc.ElementIdentifier = "issue_date"
	IsoExpiryDate          mdoc.ElementIdentifier = "expiry_date"
	IsoIssuingCountry      mdoc.ElementIdentifier = "issuing_country"
	IsoIssuingAuthority    mdoc.ElementIdentifier = "issuing_authority"
	IsoIssuingJurisdiction mdoc.ElementIdentifier = "issuing_jurisdiction"
	IsoDocumentNumber      mdoc.ElementIdentifier = "document_number"
	IsoPortrait            mdoc.ElementIdentifier = "portrait"
	IsoSex                 mdoc.ElementIdentifier = "sex"
	IsoHeight              mdoc.ElementIdentifier = "height"
	IsoWeight              mdoc.ElementIdentifier = "weight"
	IsoEyeColour           mdoc.ElementIdentifier = "eye_colour"
	IsoResidentAddress     mdoc.ElementIdentifier = "resident_address"
	IsoResidentStreet      mdoc.ElementIdentifier = "resident_street"
	IsoResidentCity        mdoc.ElementIdentifier = "resident_city"
	IsoResidentState       mdoc.ElementIdentifier = "resident_state"
	IsoResidentPostalCode  mdoc.ElementIdentifier = "resident_postal_code"
	IsoResidentCountry     mdoc.ElementIdentifier = "resident_country"
)

// CanonicalField is the name a recognized element is stored under once
// extracted, matching the broader identity pipeline's StateID shape.
type CanonicalField string

const (
	FieldFirstName           CanonicalField = "first_name"
	FieldLastName            CanonicalField = "last_name"
	FieldDOB                 CanonicalField = "dob"
	FieldAddress1            CanonicalField = "address1"
	FieldCity                CanonicalField = "city"
	FieldState               CanonicalField = "state"
	FieldZipcode             CanonicalField = "zipcode"
	FieldCountry             CanonicalField = "country"
	FieldStateIDNumber       CanonicalField = "state_id_number"
	FieldStateIDExpiration   CanonicalField = "state_id_expiration"
	FieldStateIDIssued       CanonicalField = "state_id_issued"
	FieldIssuingAuthority    CanonicalField = "issuing_authority"
	FieldStateIDJurisdiction CanonicalField = "state_id_jurisdiction"
	FieldIssuingCountryCode  CanonicalField = "issuing_country_code"
	FieldSex                 CanonicalField = "sex"
	FieldHeight              CanonicalField = "height"
	FieldWeight              CanonicalField = "weight"
	FieldEyeColor            CanonicalField = "eye_color"
	FieldPortrait            CanonicalField = "portrait"
)

// ElementMapping maps mdoc element identifiers to canonical PII field
// names, per ISO 18013-5 section 7.2.1. resident_street is accepted as an
// alternative spelling of the street address used by some wallets.
var ElementMapping = map[mdoc.ElementIdentifier]CanonicalField{
	IsoFamilyName:          FieldLastName,
	IsoGivenName:           FieldFirstName,
	IsoBirthDate:           FieldDOB,
	IsoResidentStreet:      FieldAddress1,
	IsoResidentAddress:     FieldAddress1,
	IsoResidentCity:        FieldCity,
	IsoResidentState:       FieldState,
	IsoResidentPostalCode:  FieldZipcode,
	IsoResidentCountry:     FieldCountry,
	IsoDocumentNumber:      FieldStateIDNumber,
	IsoExpiryDate:          FieldStateIDExpiration,
	IsoIssueDate:           FieldStateIDIssued,
	IsoIssuingAuthority:    FieldIssuingAuthority,
	IsoIssuingJurisdiction: FieldStateIDJurisdiction,
	IsoIssuingCountry:      FieldIssuingCountryCode,
	IsoSex:                 FieldSex,
	IsoHeight:              FieldHeight,
	IsoWeight:              FieldWeight,
	IsoEyeColour:           FieldEyeColor,
	IsoPortrait:            FieldPortrait,
}

// RequestableElements is the element set a DeviceRequest asks the wallet
// for. resident_address covers the street line, so resident_street is not
// requested separately.
var RequestableElements = []mdoc.ElementIdentifier{
	IsoFamilyName,
	IsoGivenName,
	IsoBirthDate,
	IsoResidentAddress,
	IsoResidentCity,
	IsoResidentState,
	IsoResidentPostalCode,
	IsoResidentCountry,
	IsoDocumentNumber,
	IsoExpiryDate,
	IsoIssueDate,
	IsoIssuingAuthority,
	IsoIssuingJurisdiction,
	IsoIssuingCountry,
	IsoSex,
	IsoHeight,
	IsoWeight,
	IsoEyeColour,
	IsoPortrait,
}

// RequestedNameSpaces returns the namespace to element to intent-to-retain
// map of a DeviceRequest. None of the values are retained.
func RequestedNameSpaces() map[mdoc.NameSpace]map[mdoc.ElementIdentifier]bool {
	elems := make(map[mdoc.ElementIdentifier]bool, len(RequestableElements))
	for _, id := range RequestableElements {
		elems[id] = false
	}
	return map[mdoc.NameSpace]map[mdoc.ElementIdentifier]bool{
		ISO1801351: elems,
	}
}
