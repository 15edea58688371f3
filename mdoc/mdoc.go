// Package mdoc models the ISO/IEC 18013-5 DeviceResponse returned by a
// wallet and extracts the issuer-signed data elements it carries.
//
// The package decodes the IssuerAuth COSE_Sign1 envelope so callers can
// inspect the signing algorithm and x5chain, but it performs no signature
// or certificate-chain verification: element values are the wallet's
// claimed values.
package mdoc

import (
	"fmt"
	"sort"

	"github.com/fxamacker/cbor/v2"
	"github.com/veraison/go-cose"
)

type DocType string

type NameSpace string

type ElementIdentifier string

type ElementValue interface{}

type DeviceResponse struct {
	Version   string     `json:"version"`
	Documents []Document `json:"documents,omitempty"`
	Status    uint       `json:"status"`
}

func (d DeviceResponse) GetDocument(docType DocType) (*Document, error) {
	for i, doc := range d.Documents {
		if doc.DocType == docType {
			return &d.Documents[i], nil
		}
	}
	return nil, fmt.Errorf("failed to find doc: doctype=%s", docType)
}

type Document struct {
	DocType      DocType      `json:"docType"`
	IssuerSigned IssuerSigned `json:"issuerSigned"`
}

func (d *Document) GetElementValue(namespace NameSpace, elementIdentifier ElementIdentifier) (ElementValue, error) {
	if d.IssuerSigned.NameSpaces == nil {
		return nil, fmt.Errorf("no namespaces available")
	}

	items, exists := d.IssuerSigned.NameSpaces[namespace]
	if !exists {
		return nil, fmt.Errorf("namespace %s not found", namespace)
	}

	for _, item := range items {
		if item.ElementIdentifier == elementIdentifier {
			if tag, ok := item.ElementValue.(cbor.Tag); ok {
				return tag.Content, nil
			}
			return item.ElementValue, nil
		}
	}
	return nil, fmt.Errorf("element %s not found in namespace %s", elementIdentifier, namespace)
}

type IssuerSigned struct {
	NameSpaces IssuerNameSpaces           `json:"nameSpaces,omitempty"`
	IssuerAuth *cose.UntaggedSign1Message `json:"issuerAuth,omitempty"`
}

// GetNameSpaces returns the namespace names in sorted order, so callers
// that fall back to "the first namespace" behave deterministically.
func (i *IssuerSigned) GetNameSpaces() []NameSpace {
	nss := make([]NameSpace, 0, len(i.NameSpaces))
	for ns := range i.NameSpaces {
		nss = append(nss, ns)
	}
	sort.Slice(nss, func(a, b int) bool { return nss[a] < nss[b] })
	return nss
}

func (i *IssuerSigned) GetIssuerSignedItems(ns NameSpace) ([]IssuerSignedItem, error) {
	if len(i.NameSpaces[ns]) == 0 {
		return nil, fmt.Errorf("no such namespace: %s", ns)
	}
	return i.NameSpaces[ns], nil
}

type IssuerNameSpaces map[NameSpace][]IssuerSignedItem

type IssuerSignedItem struct {
	DigestID          uint64            `json:"digestID"`
	Random            []byte            `json:"random,omitempty"`
	ElementIdentifier ElementIdentifier `json:"elementIdentifier"`
	ElementValue      ElementValue      `json:"elementValue"`
}
