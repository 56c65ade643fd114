package google

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ratna-shop/internal/config"
	"github.com/ratna-shop/internal/oauth"
)

func newVerifierWithServer(t *testing.T, claims map[string]string) (*Verifier, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("id_token") == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(claims)
	}))
	verifier := NewVerifier(&config.GoogleOAuthConfig{
		ClientID:  "client-123.apps.googleusercontent.com",
		VerifyURL: server.URL,
	})
	return verifier, server
}

func TestVerifyAcceptsMatchingAudience(t *testing.T) {
	verifier, server := newVerifierWithServer(t, map[string]string{
		"aud":            "client-123.apps.googleusercontent.com",
		"sub":            "10769150350006150715113082367",
		"email":          "asha@example.com",
		"email_verified": "true",
		"name":           "Asha Verma",
		"picture":        "https://lh3.example.com/photo.jpg",
	})
	defer server.Close()

	identity, err := verifier.Verify(context.Background(), "token")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if identity.SubjectID != "10769150350006150715113082367" {
		t.Fatalf("subject want google sub got %s", identity.SubjectID)
	}
	if identity.Email != "asha@example.com" || identity.Name != "Asha Verma" {
		t.Fatalf("profile mismatch: %+v", identity)
	}
}

func TestVerifyRejectsWrongAudience(t *testing.T) {
	verifier, server := newVerifierWithServer(t, map[string]string{
		"aud":            "someone-else",
		"sub":            "123",
		"email":          "asha@example.com",
		"email_verified": "true",
	})
	defer server.Close()

	_, err := verifier.Verify(context.Background(), "token")
	if !errors.Is(err, oauth.ErrAudienceInvalid) {
		t.Fatalf("want ErrAudienceInvalid got %v", err)
	}
}

func TestVerifyRejectsUnverifiedEmail(t *testing.T) {
	verifier, server := newVerifierWithServer(t, map[string]string{
		"aud":            "client-123.apps.googleusercontent.com",
		"sub":            "123",
		"email":          "asha@example.com",
		"email_verified": "false",
	})
	defer server.Close()

	_, err := verifier.Verify(context.Background(), "token")
	if !errors.Is(err, oauth.ErrEmailMissing) {
		t.Fatalf("want ErrEmailMissing got %v", err)
	}
}

func TestVerifyRejectsEmptyToken(t *testing.T) {
	verifier := NewVerifier(nil)
	_, err := verifier.Verify(context.Background(), " ")
	if !errors.Is(err, oauth.ErrTokenInvalid) {
		t.Fatalf("want ErrTokenInvalid got %v", err)
	}
}
