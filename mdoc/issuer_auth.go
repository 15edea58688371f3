package mdoc

import (
	"crypto/x509"
	"fmt"

	"github.com/veraison/go-cose"
)

// Accessors for the IssuerAuth COSE_Sign1 envelope. These expose the
// claimed signing algorithm and certificate chain; verifying either is
// the caller's problem.

func (i *IssuerSigned) Alg() (cose.Algorithm, error) {
	if i.IssuerAuth == nil || i.IssuerAuth.Headers.Protected == nil {
		return 0, fmt.Errorf("protected header is nil")
	}
	return i.IssuerAuth.Headers.Protected.Algorithm()
}

func (i *IssuerSigned) DocumentSigningCertificate() (*x509.Certificate, error) {
	certificates, err := i.DocumentSigningCertificateChain()
	if err != nil {
		return nil, fmt.Errorf("failed to get x5chain: %w", err)
	}
	if len(certificates) == 0 {
		return nil, fmt.Errorf("no certificates in x5chain")
	}
	return certificates[0], nil
}

func (i *IssuerSigned) DocumentSigningCertificateChain() ([]*x509.Certificate, error) {
	if i.IssuerAuth == nil || i.IssuerAuth.Headers.Unprotected == nil {
		return nil, fmt.Errorf("missing unprotected headers")
	}

	rawX5Chain, ok := i.IssuerAuth.Headers.Unprotected[cose.HeaderLabelX5Chain]
	if !ok {
		return nil, fmt.Errorf("x5chain not found in unprotected headers")
	}

	var rawX5ChainBytes [][]byte
	switch v := rawX5Chain.(type) {
	case [][]byte:
		rawX5ChainBytes = v
	case []byte:
		rawX5ChainBytes = [][]byte{v}
	case []interface{}:
		for _, c := range v {
			cert, ok := c.([]byte)
			if !ok {
				return nil, fmt.Errorf("unexpected x5chain entry type: %T", c)
			}
			rawX5ChainBytes = append(rawX5ChainBytes, cert)
		}
	default:
		return nil, fmt.Errorf("unexpected x5chain type: %T", rawX5Chain)
	}

	if len(rawX5ChainBytes) == 0 {
		return nil, fmt.Errorf("empty x5chain")
	}

	certs := make([]*x509.Certificate, 0, len(rawX5ChainBytes))
	for _, certData := range rawX5ChainBytes {
		cert, err := x509.ParseCertificate(certData)
		if err != nil {
			return nil, fmt.Errorf("error parsing certificate: %w", err)
		}
		certs = append(certs, cert)
	}

	return certs, nil
}
