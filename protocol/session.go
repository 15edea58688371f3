// Package protocol holds the per-attempt session state shared between the
// request builder and the response parser: the single-use nonce and the
// reader's ephemeral P-256 key pair, plus the persistable record form the
// caller stores between request and response.
package protocol

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const NonceLength = 16

type Nonce []byte

func CreateNonce() (Nonce, error) {
	nonce := make([]byte, NonceLength)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to read random nonce: %w", err)
	}
	return nonce, nil
}

func (n Nonce) String() string {
	return base64.StdEncoding.EncodeToString(n)
}

type SessionData struct {
	ID         string
	Nonce      Nonce
	PrivateKey *ecdh.PrivateKey
	CreatedAt  time.Time
}

// NewSession generates a fresh session: random id, 16-byte nonce and an
// ephemeral P-256 key pair. A generation failure means the entropy source
// is broken and is returned as-is; callers must abort the attempt, not
// retry.
func NewSession() (*SessionData, error) {
	nonce, err := CreateNonce()
	if err != nil {
		return nil, err
	}

	privKey, err := ecdh.P256().GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generateKey: %w", err)
	}

	return &SessionData{
		ID:         uuid.New().String(),
		Nonce:      nonce,
		PrivateKey: privKey,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

func (s *SessionData) GetPrivateKey() *ecdh.PrivateKey {
	return s.PrivateKey
}

// SessionRecord is the caller-persisted form of a session. The private
// key travels as base64-wrapped PKCS#8 DER so Record and RestoreSession
// round-trip.
type SessionRecord struct {
	SessionID           string `json:"session_id"`
	Nonce               string `json:"nonce"`
	EphemeralPrivateKey string `json:"ephemeral_private_key"`
	CreatedAt           string `json:"created_at"`
}

func (s *SessionData) Record() (*SessionRecord, error) {
	der, err := x509.MarshalPKCS8PrivateKey(s.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize private key: %w", err)
	}
	return &SessionRecord{
		SessionID:           s.ID,
		Nonce:               s.Nonce.String(),
		EphemeralPrivateKey: base64.StdEncoding.EncodeToString(der),
		CreatedAt:           s.CreatedAt.Format(time.RFC3339),
	}, nil
}

func RestoreSession(rec *SessionRecord) (*SessionData, error) {
	if rec == nil {
		return nil, fmt.Errorf("nil session record")
	}

	nonce, err := base64.StdEncoding.DecodeString(rec.Nonce)
	if err != nil {
		return nil, fmt.Errorf("failed to decode nonce: %w", err)
	}

	der, err := base64.StdEncoding.DecodeString(rec.EphemeralPrivateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode private key: %w", err)
	}
	parsed, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	ecdsaPriv, ok := parsed.(*ecdsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("unexpected private key type: %T", parsed)
	}
	privKey, err := ecdsaPriv.ECDH()
	if err != nil {
		return nil, fmt.Errorf("error converting to ECDH private key: %w", err)
	}

	createdAt, err := time.Parse(time.RFC3339, rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return &SessionData{
		ID:         rec.SessionID,
		Nonce:      nonce,
		PrivateKey: privKey,
		CreatedAt:  createdAt,
	}, nil
}
