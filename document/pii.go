package document

// StateID is the canonical identity-attribute record handed to the
// identity-resolution pipeline, one input among document-scan and
// user-asserted PII. Missing upstream fields stay empty.
type StateID struct {
	FirstName            string      `json:"first_name,omitempty"`
	LastName             string      `json:"last_name,omitempty"`
	MiddleName           string      `json:"middle_name,omitempty"`
	NameSuffix           string      `json:"name_suffix,omitempty"`
	DOB                  string      `json:"dob,omitempty"`
	Address1             string      `json:"address1,omitempty"`
	Address2             string      `json:"address2,omitempty"`
	City                 string      `json:"city,omitempty"`
	State                string      `json:"state,omitempty"`
	Zipcode              string      `json:"zipcode,omitempty"`
	StateIDNumber        string      `json:"state_id_number,omitempty"`
	StateIDJurisdiction  string      `json:"state_id_jurisdiction,omitempty"`
	StateIDExpiration    string      `json:"state_id_expiration,omitempty"`
	StateIDIssued        string      `json:"state_id_issued,omitempty"`
	IssuingCountryCode   string      `json:"issuing_country_code,omitempty"`
	Sex                  string      `json:"sex,omitempty"`
	Height               interface{} `json:"height,omitempty"`
	Weight               interface{} `json:"weight,omitempty"`
	EyeColor             string      `json:"eye_color,omitempty"`
	DocumentTypeReceived string      `json:"document_type_received"`
}
