package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/kokukuma/mdl-exchange/decoder"
	"github.com/kokukuma/mdl-exchange/document"
	"github.com/kokukuma/mdl-exchange/isomdoc"
)

var debugDump = os.Getenv("MDL_DEBUG") != ""

func NewServer() *Server {
	return &Server{
		sessions: NewSessions(),
	}
}

type Server struct {
	sessions *Sessions
}

type VerifyRequest struct {
	SessionID  string      `json:"session_id"`
	Credential interface{} `json:"credential"`
}

type VerifyResponse struct {
	PII          *document.StateID     `json:"pii,omitempty"`
	DocumentInfo *decoder.DocumentInfo `json:"document_info,omitempty"`
	Errors       []string              `json:"errors,omitempty"`
	Error        string                `json:"error,omitempty"`
}

// GetIdentityRequest creates a session and returns the org-iso-mdoc
// request payload for the browser Digital Credentials API. The caller
// later posts the wallet response, correlated by the payload's sessionId.
func (s *Server) GetIdentityRequest(w http.ResponseWriter, r *http.Request) {
	session, err := s.sessions.NewSession()
	if err != nil {
		jsonErrorResponse(w, fmt.Errorf("failed to create session: %v", err), http.StatusInternalServerError)
		return
	}

	reqData, err := isomdoc.BuildRequestData(session)
	if err != nil {
		s.sessions.DeleteSession(session.ID)
		jsonErrorResponse(w, fmt.Errorf("failed to build identity request: %v", err), http.StatusInternalServerError)
		return
	}

	jsonResponse(w, reqData, http.StatusOK)
}

// VerifyIdentityResponse parses the wallet's credential response for a
// previously created session and returns the extracted PII. The session
// is deleted whether or not parsing succeeds: the nonce is single-use.
func (s *Server) VerifyIdentityResponse(w http.ResponseWriter, r *http.Request) {
	req := VerifyRequest{}
	if err := parseJSON(r, &req); err != nil {
		jsonErrorResponse(w, fmt.Errorf("failed to parseJSON: %v", err), http.StatusBadRequest)
		return
	}

	session, err := s.sessions.GetSession(req.SessionID)
	if err != nil {
		jsonErrorResponse(w, fmt.Errorf("failed to GetSession: %v", err), http.StatusBadRequest)
		return
	}
	s.sessions.DeleteSession(req.SessionID)

	extracted := decoder.Parse(req.Credential, session)
	if debugDump {
		spew.Dump(extracted)
	}

	if !extracted.Success() {
		jsonResponse(w, VerifyResponse{
			Errors: extracted.Errors,
			Error:  strings.Join(extracted.Errors, ", "),
		}, http.StatusUnprocessableEntity)
		return
	}

	jsonResponse(w, VerifyResponse{
		PII:          decoder.PIIFromMDL(extracted),
		DocumentInfo: &extracted.DocumentInfo,
	}, http.StatusOK)
}

func parseJSON(r *http.Request, v interface{}) error {
	if r == nil || r.Body == nil {
		return errors.New("No request given")
	}

	defer r.Body.Close()
	defer io.Copy(io.Discard, r.Body)

	return json.NewDecoder(r.Body).Decode(v)
}

func jsonResponse(w http.ResponseWriter, d interface{}, c int) {
	dj, err := json.Marshal(d)
	if err != nil {
		http.Error(w, "Error creating JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(c)
	fmt.Fprintf(w, "%s", dj)
}

func jsonErrorResponse(w http.ResponseWriter, e error, c int) {
	resp := VerifyResponse{Error: e.Error()}
	dj, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Error creating JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(c)
	fmt.Fprintf(w, "%s", dj)
}
