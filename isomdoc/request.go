// Package isomdoc builds "org-iso-mdoc" credential requests for the
// browser Digital Credentials API: the ISO 18013-5 DeviceRequest, the ISO
// 18013-7 EncryptionInfo carrying the reader's ephemeral public key, and
// the JSON transport payload wrapping both.
package isomdoc

import (
	"crypto/ecdh"
	"encoding/base64"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/kokukuma/mdl-exchange/document"
	"github.com/kokukuma/mdl-exchange/mdoc"
	"github.com/kokukuma/mdl-exchange/protocol"
)

// Protocol is the Digital Credentials API protocol identifier.
const Protocol = "org-iso-mdoc"

// CipherSuite 1 is P-256 + HKDF-SHA-256 + AES-256-GCM.
const CipherSuite = 1

var b64 = base64.StdEncoding

type RequestData struct {
	Protocol string         `json:"protocol"`
	Data     RequestPayload `json:"data"`
}

type RequestPayload struct {
	DeviceRequest  string                                             `json:"deviceRequest"`
	EncryptionInfo string                                             `json:"encryptionInfo"`
	DocType        mdoc.DocType                                       `json:"docType"`
	NameSpaces     map[mdoc.NameSpace]map[mdoc.ElementIdentifier]bool `json:"nameSpaces"`
	Nonce          string                                             `json:"nonce"`
	SessionID      string                                             `json:"sessionId"`
}

type DeviceRequest struct {
	Version     string       `cbor:"version"`
	DocRequests []DocRequest `cbor:"docRequests"`
}

// DocRequest wraps the ItemsRequest as tag 24 embedded CBOR, per the ISO
// 18013-5 ItemsRequestBytes convention.
type DocRequest struct {
	ItemsRequest cbor.Tag `cbor:"itemsRequest"`
}

type ItemsRequest struct {
	DocType    mdoc.DocType                                       `cbor:"docType"`
	NameSpaces map[mdoc.NameSpace]map[mdoc.ElementIdentifier]bool `cbor:"nameSpaces"`
}

type EncryptionInfo struct {
	CipherSuite              int     `cbor:"cipherSuite"`
	ReaderEphemeralPublicKey COSEKey `cbor:"readerEphemeralPublicKey"`
}

// BeginIdentityRequest establishes a fresh session and builds the request
// payload for it. The caller persists session.Record() and correlates the
// wallet's response by the payload's sessionId.
func BeginIdentityRequest() (*RequestData, *protocol.SessionData, error) {
	session, err := protocol.NewSession()
	if err != nil {
		return nil, nil, err
	}

	reqData, err := BuildRequestData(session)
	if err != nil {
		return nil, nil, err
	}
	return reqData, session, nil
}

// BuildRequestData encodes the transport payload for an existing session.
// docType and nameSpaces appear both inside the CBOR DeviceRequest and as
// plain JSON, for wallets that only inspect the JSON shape.
func BuildRequestData(session *protocol.SessionData) (*RequestData, error) {
	nameSpaces := document.RequestedNameSpaces()

	deviceRequest, err := encodeDeviceRequest(nameSpaces)
	if err != nil {
		return nil, err
	}

	encryptionInfo, err := encodeEncryptionInfo(session.GetPrivateKey().PublicKey())
	if err != nil {
		return nil, err
	}

	return &RequestData{
		Protocol: Protocol,
		Data: RequestPayload{
			DeviceRequest:  b64.EncodeToString(deviceRequest),
			EncryptionInfo: b64.EncodeToString(encryptionInfo),
			DocType:        document.IsoMDL,
			NameSpaces:     nameSpaces,
			Nonce:          session.Nonce.String(),
			SessionID:      session.ID,
		},
	}, nil
}

func encodeDeviceRequest(nameSpaces map[mdoc.NameSpace]map[mdoc.ElementIdentifier]bool) ([]byte, error) {
	items, err := cbor.Marshal(ItemsRequest{
		DocType:    document.IsoMDL,
		NameSpaces: nameSpaces,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode items request: %w", err)
	}

	deviceRequest, err := cbor.Marshal(DeviceRequest{
		Version: "1.0",
		DocRequests: []DocRequest{
			{ItemsRequest: cbor.Tag{Number: 24, Content: items}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode device request: %w", err)
	}
	return deviceRequest, nil
}

func encodeEncryptionInfo(pub *ecdh.PublicKey) ([]byte, error) {
	encryptionInfo, err := cbor.Marshal(EncryptionInfo{
		CipherSuite:              CipherSuite,
		ReaderEphemeralPublicKey: EncodeCOSEKey(pub),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode encryption info: %w", err)
	}
	return encryptionInfo, nil
}
