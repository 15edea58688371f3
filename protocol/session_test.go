package protocol

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
)

func TestNewSession(t *testing.T) {
	session, err := NewSession()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(session.Nonce) != NonceLength {
		t.Errorf("expected %d byte nonce, got %d", NonceLength, len(session.Nonce))
	}
	if _, err := uuid.Parse(session.ID); err != nil {
		t.Errorf("session id is not a valid uuid: %v", err)
	}
	if session.PrivateKey == nil {
		t.Fatal("expected private key to be generated")
	}
	if session.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestNewSessionUniqueness(t *testing.T) {
	const iterations = 200

	nonces := make(map[string]bool, iterations)
	keys := make(map[string]bool, iterations)

	for i := 0; i < iterations; i++ {
		session, err := NewSession()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		nonce := session.Nonce.String()
		if nonces[nonce] {
			t.Fatalf("duplicate nonce generated: %s", nonce)
		}
		nonces[nonce] = true

		key := string(session.PrivateKey.PublicKey().Bytes())
		if keys[key] {
			t.Fatal("duplicate key pair generated")
		}
		keys[key] = true
	}
}

func TestSessionRecordRoundTrip(t *testing.T) {
	session, err := NewSession()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec, err := session.Record()
	if err != nil {
		t.Fatalf("failed to build record: %v", err)
	}
	if rec.SessionID != session.ID {
		t.Errorf("expected session id %s, got %s", session.ID, rec.SessionID)
	}

	restored, err := RestoreSession(rec)
	if err != nil {
		t.Fatalf("failed to restore session: %v", err)
	}

	if restored.ID != session.ID {
		t.Errorf("expected id %s, got %s", session.ID, restored.ID)
	}
	if !bytes.Equal(restored.Nonce, session.Nonce) {
		t.Errorf("expected nonce %v, got %v", session.Nonce, restored.Nonce)
	}
	if !bytes.Equal(restored.PrivateKey.Bytes(), session.PrivateKey.Bytes()) {
		t.Error("restored private key does not match")
	}
	if got, want := restored.CreatedAt.Unix(), session.CreatedAt.Unix(); got != want {
		t.Errorf("expected created_at %d, got %d", want, got)
	}
}

func TestRestoreSessionInvalid(t *testing.T) {
	if _, err := RestoreSession(nil); err == nil {
		t.Error("expected error for nil record")
	}

	if _, err := RestoreSession(&SessionRecord{
		SessionID:           "x",
		Nonce:               "%%%",
		EphemeralPrivateKey: "",
		CreatedAt:           "2026-01-01T00:00:00Z",
	}); err == nil {
		t.Error("expected error for invalid nonce encoding")
	}
}
