package decoder

import (
	"encoding/base64"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/kokukuma/mdl-exchange/document"
	"github.com/kokukuma/mdl-exchange/mdoc"
	"github.com/kokukuma/mdl-exchange/protocol"
)

// ExtractedIdentity is the parser's output: canonical attribute fields,
// metadata about the document they came from, and the failures hit along
// the way. Owned by the caller of Parse; never shared.
type ExtractedIdentity struct {
	Fields       map[document.CanonicalField]interface{} `json:"fields"`
	DocumentInfo DocumentInfo                            `json:"document_info"`
	Errors       []string                                `json:"errors,omitempty"`
}

// DocumentInfo describes the document the attributes came from.
// SigningAlgorithm is the claimed IssuerAuth algorithm; it is reported,
// not verified.
type DocumentInfo struct {
	Version          string       `json:"version,omitempty"`
	Status           uint         `json:"status"`
	DocType          mdoc.DocType `json:"doc_type,omitempty"`
	SigningAlgorithm string       `json:"signing_algorithm,omitempty"`
}

func (e *ExtractedIdentity) Success() bool {
	return len(e.Errors) == 0 && len(e.Fields) > 0
}

// Parse decodes a wallet's credential response and extracts the mDL
// attributes it recognizes. The credential may be a map carrying a "data"
// entry (base64 string, raw CBOR bytes, or an already-decoded map), a
// bare base64 string, or raw CBOR bytes. Parse always returns a value; it
// never panics, and every failure becomes an Errors entry.
//
// session is the record persisted when the request was built. The codec
// performs no session-bound validation yet, so it may be nil; the
// parameter keeps request and response correlated at the call site.
func Parse(credential interface{}, session *protocol.SessionData) *ExtractedIdentity {
	_ = session

	out := &ExtractedIdentity{
		Fields: map[document.CanonicalField]interface{}{},
	}

	decoded, err := ingest(credential)
	if err != nil {
		out.Errors = append(out.Errors, categoryMessage(ErrCategoryDecode, "%v", err))
		return out
	}

	resp, err := mdoc.DecodeDeviceResponse(decoded)
	if err != nil {
		out.Errors = append(out.Errors, categoryMessage(ErrCategoryStructure, "%v", err))
		return out
	}

	extract(resp, out)

	if len(out.Fields) == 0 {
		out.Errors = append(out.Errors, categoryMessage(ErrCategoryEmptyResult, "no PII data could be extracted from the response"))
	}
	return out
}

func ingest(credential interface{}) (interface{}, error) {
	switch c := credential.(type) {
	case nil:
		return nil, fmt.Errorf("no credential data given")
	case map[string]interface{}:
		return ingestDataField(c["data"])
	case map[interface{}]interface{}:
		return ingestDataField(c["data"])
	case string:
		return decodeString(c)
	case []byte:
		return decodeCBOR(c)
	}
	return nil, fmt.Errorf("unknown response format: %T", credential)
}

// ingestDataField handles the Digital Credentials API envelope
// {protocol: "...", data: ...}, where data may already be decoded.
func ingestDataField(data interface{}) (interface{}, error) {
	switch d := data.(type) {
	case string:
		return decodeString(d)
	case []byte:
		return decodeCBOR(d)
	case map[string]interface{}, map[interface{}]interface{}:
		return d, nil
	}
	return nil, fmt.Errorf("no data field found in credential response")
}

// decodeString tries base64 first (wallets disagree on the alphabet and
// padding), then falls back to treating the string as raw CBOR bytes.
func decodeString(s string) (interface{}, error) {
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		if b, err := enc.DecodeString(s); err == nil {
			return decodeCBOR(b)
		}
	}
	return decodeCBOR([]byte(s))
}

func decodeCBOR(b []byte) (interface{}, error) {
	var v interface{}
	if err := cbor.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("invalid CBOR format: %v", err)
	}
	return v, nil
}

// extract walks the located document's issuer-signed items and stores the
// normalized value of every element the catalog recognizes. Unrecognized
// identifiers are skipped without error.
func extract(resp *mdoc.DeviceResponse, out *ExtractedIdentity) {
	doc, err := resp.GetDocument(document.IsoMDL)
	if err != nil {
		// No mDL-typed document: recoverable, use the first one.
		doc = &resp.Documents[0]
	}

	out.DocumentInfo = DocumentInfo{
		Version: resp.Version,
		Status:  resp.Status,
		DocType: doc.DocType,
	}
	if alg, err := doc.IssuerSigned.Alg(); err == nil {
		out.DocumentInfo.SigningAlgorithm = alg.String()
	}

	items, err := doc.IssuerSigned.GetIssuerSignedItems(document.ISO1801351)
	if err != nil {
		nss := doc.IssuerSigned.GetNameSpaces()
		if len(nss) == 0 {
			return
		}
		items, _ = doc.IssuerSigned.GetIssuerSignedItems(nss[0])
	}

	for _, item := range items {
		field, ok := document.ElementMapping[item.ElementIdentifier]
		if !ok {
			continue
		}
		out.Fields[field] = normalizeValue(field, item.ElementValue)
	}
}
