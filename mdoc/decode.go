package mdoc

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/veraison/go-cose"
)

// DecodeDeviceResponse normalizes an already-decoded DeviceResponse value
// into the typed model. Wallets disagree on the exact shape of the
// structure, so the walker tolerates CBOR maps with string or numeric
// keys, JSON maps, IssuerSignedItems carried as tag-24 embedded CBOR byte
// strings, and the ISO numeric COSE-style item keys 24/25 for the element
// identifier and value.
func DecodeDeviceResponse(v interface{}) (*DeviceResponse, error) {
	m, ok := toStringMap(v)
	if !ok {
		return nil, fmt.Errorf("device response is not a map: %T", v)
	}

	resp := &DeviceResponse{
		Version: asString(m["version"]),
		Status:  asUint(m["status"]),
	}

	docs, ok := m["documents"].([]interface{})
	if !ok || len(docs) == 0 {
		return nil, fmt.Errorf("no documents found in device response")
	}

	for _, d := range docs {
		if doc, ok := decodeDocument(d); ok {
			resp.Documents = append(resp.Documents, doc)
		}
	}
	if len(resp.Documents) == 0 {
		return nil, fmt.Errorf("no decodable documents in device response")
	}
	return resp, nil
}

func decodeDocument(v interface{}) (Document, bool) {
	m, ok := toStringMap(v)
	if !ok {
		return Document{}, false
	}

	doc := Document{DocType: DocType(asString(m["docType"]))}

	is, ok := toStringMap(m["issuerSigned"])
	if !ok {
		return doc, true
	}
	doc.IssuerSigned.IssuerAuth = decodeIssuerAuth(is["issuerAuth"])

	nss, ok := toStringMap(is["nameSpaces"])
	if !ok {
		return doc, true
	}
	for name, raw := range nss {
		list, ok := raw.([]interface{})
		if !ok {
			continue
		}
		items := make([]IssuerSignedItem, 0, len(list))
		for _, entry := range list {
			if item, ok := decodeIssuerSignedItem(entry); ok {
				items = append(items, item)
			}
		}
		if len(items) > 0 {
			if doc.IssuerSigned.NameSpaces == nil {
				doc.IssuerSigned.NameSpaces = IssuerNameSpaces{}
			}
			doc.IssuerSigned.NameSpaces[NameSpace(name)] = items
		}
	}
	return doc, true
}

func decodeIssuerSignedItem(v interface{}) (IssuerSignedItem, bool) {
	// IssuerSignedItemBytes arrive as tag 24 wrapping an embedded CBOR
	// byte string; plain maps are also accepted.
	switch t := v.(type) {
	case cbor.Tag:
		if content, ok := t.Content.([]byte); ok && t.Number == 24 {
			var inner interface{}
			if err := cbor.Unmarshal(content, &inner); err == nil {
				v = inner
			}
		} else {
			v = t.Content
		}
	case []byte:
		var inner interface{}
		if err := cbor.Unmarshal(t, &inner); err == nil {
			v = inner
		}
	}

	m, ok := toStringMap(v)
	if !ok {
		return IssuerSignedItem{}, false
	}

	// identifiers may arrive as CBOR text or byte strings
	name := asString(firstOf(m, "elementIdentifier", "24"))
	if name == "" {
		return IssuerSignedItem{}, false
	}

	return IssuerSignedItem{
		DigestID:          asUint64(m["digestID"]),
		Random:            asBytes(m["random"]),
		ElementIdentifier: ElementIdentifier(name),
		ElementValue:      firstOf(m, "elementValue", "25"),
	}, true
}

// decodeIssuerAuth re-encodes the raw issuerAuth value and decodes it as
// an untagged COSE_Sign1 message. Best effort: a missing or malformed
// envelope leaves the field nil rather than failing the document.
func decodeIssuerAuth(v interface{}) *cose.UntaggedSign1Message {
	if v == nil {
		return nil
	}
	raw, err := cbor.Marshal(v)
	if err != nil {
		return nil
	}
	var msg cose.UntaggedSign1Message
	if err := msg.UnmarshalCBOR(raw); err != nil {
		return nil
	}
	return &msg
}

// toStringMap canonicalizes the plausible key spellings of a decoded map
// to plain strings: CBOR generic decoding yields interface{} keys (text,
// byte string, or integer), JSON yields string keys. Numeric keys become
// their decimal form, so the ISO item key 24 is always looked up as "24".
func toStringMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(m))
		for k, val := range m {
			out[keyString(k)] = val
		}
		return out, true
	}
	return nil, false
}

func keyString(k interface{}) string {
	switch t := k.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}

func firstOf(m map[string]interface{}, keys ...string) interface{} {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v
		}
	}
	return nil
}

func asString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	}
	return ""
}

func asBytes(v interface{}) []byte {
	if b, ok := v.([]byte); ok {
		return b
	}
	return nil
}

func asUint(v interface{}) uint {
	return uint(asUint64(v))
}

func asUint64(v interface{}) uint64 {
	switch t := v.(type) {
	case uint64:
		return t
	case int64:
		if t >= 0 {
			return uint64(t)
		}
	case int:
		if t >= 0 {
			return uint64(t)
		}
	case uint:
		return uint64(t)
	case float64:
		if t >= 0 {
			return uint64(t)
		}
	}
	return 0
}
