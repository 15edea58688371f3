package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/kokukuma/mdl-exchange/isomdoc"
)

func fixtureCredential(t *testing.T) string {
	t.Helper()
	raw, err := cbor.Marshal(map[string]interface{}{
		"version": "1.0",
		"status":  0,
		"documents": []interface{}{
			map[string]interface{}{
				"docType": "org.iso.18013.5.1.mDL",
				"issuerSigned": map[string]interface{}{
					"nameSpaces": map[string]interface{}{
						"org.iso.18013.5.1": []interface{}{
							map[string]interface{}{
								"elementIdentifier": "family_name",
								"elementValue":      "SMITH",
							},
							map[string]interface{}{
								"elementIdentifier": "birth_date",
								"elementValue":      "1980-05-01",
							},
						},
					},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("failed to marshal fixture: %v", err)
	}
	return base64.StdEncoding.EncodeToString(raw)
}

func postJSON(t *testing.T, handler http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestGetIdentityRequest(t *testing.T) {
	srv := NewServer()

	req := httptest.NewRequest(http.MethodPost, "/getIdentityRequest", nil)
	w := httptest.NewRecorder()
	srv.GetIdentityRequest(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var reqData isomdoc.RequestData
	if err := json.Unmarshal(w.Body.Bytes(), &reqData); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if reqData.Protocol != isomdoc.Protocol {
		t.Errorf("expected protocol %s, got %s", isomdoc.Protocol, reqData.Protocol)
	}
	if reqData.Data.SessionID == "" {
		t.Error("expected a session id")
	}
	if reqData.Data.DeviceRequest == "" || reqData.Data.EncryptionInfo == "" {
		t.Error("expected deviceRequest and encryptionInfo payloads")
	}

	// the returned session id must be usable for the verify call
	if _, err := srv.sessions.GetSession(reqData.Data.SessionID); err != nil {
		t.Errorf("session not stored: %v", err)
	}
}

func TestVerifyIdentityResponseUnknownSession(t *testing.T) {
	srv := NewServer()

	w := postJSON(t, srv.VerifyIdentityResponse, VerifyRequest{
		SessionID:  "does-not-exist",
		Credential: fixtureCredential(t),
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestVerifyIdentityResponseRoundTrip(t *testing.T) {
	srv := NewServer()

	session, err := srv.sessions.NewSession()
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	w := postJSON(t, srv.VerifyIdentityResponse, VerifyRequest{
		SessionID:  session.ID,
		Credential: fixtureCredential(t),
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp VerifyResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.PII == nil {
		t.Fatal("expected pii in response")
	}
	if resp.PII.LastName != "SMITH" {
		t.Errorf("expected last name SMITH, got %s", resp.PII.LastName)
	}
	if resp.PII.DOB != "1980-05-01" {
		t.Errorf("expected dob 1980-05-01, got %s", resp.PII.DOB)
	}
	if resp.DocumentInfo == nil || resp.DocumentInfo.Version != "1.0" {
		t.Errorf("expected document info with version 1.0, got %+v", resp.DocumentInfo)
	}
}

func TestVerifyIdentityResponseSessionSingleUse(t *testing.T) {
	srv := NewServer()

	session, err := srv.sessions.NewSession()
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	first := postJSON(t, srv.VerifyIdentityResponse, VerifyRequest{
		SessionID:  session.ID,
		Credential: fixtureCredential(t),
	})
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200 on first use, got %d", first.Code)
	}

	second := postJSON(t, srv.VerifyIdentityResponse, VerifyRequest{
		SessionID:  session.ID,
		Credential: fixtureCredential(t),
	})
	if second.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on reuse, got %d", second.Code)
	}
}

func TestVerifyIdentityResponseMalformedCredential(t *testing.T) {
	srv := NewServer()

	session, err := srv.sessions.NewSession()
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	w := postJSON(t, srv.VerifyIdentityResponse, VerifyRequest{
		SessionID:  session.ID,
		Credential: "not-valid-base64!!!",
	})

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}

	var resp VerifyResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Errors) == 0 {
		t.Error("expected error entries in response")
	}

	// the session is consumed even when parsing fails
	if _, err := srv.sessions.GetSession(session.ID); err == nil {
		t.Error("expected session to be deleted")
	}
}
