package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ratna-shop/internal/config"
	"github.com/ratna-shop/internal/constants"
	"github.com/ratna-shop/internal/oauth"
)

// Verifier validates Google ID tokens against the tokeninfo endpoint.
type Verifier struct {
	clientID  string
	verifyURL string
	http      *http.Client
}

// NewVerifier creates a Google token verifier.
func NewVerifier(cfg *config.GoogleOAuthConfig) *Verifier {
	verifyURL := "https://oauth2.googleapis.com/tokeninfo"
	timeout := 5 * time.Second
	clientID := ""
	if cfg != nil {
		if strings.TrimSpace(cfg.VerifyURL) != "" {
			verifyURL = strings.TrimSpace(cfg.VerifyURL)
		}
		if cfg.TimeoutMS > 0 {
			timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond
		}
		clientID = strings.TrimSpace(cfg.ClientID)
	}
	return &Verifier{
		clientID:  clientID,
		verifyURL: verifyURL,
		http:      &http.Client{Timeout: timeout},
	}
}

// Provider names the identity provider.
func (v *Verifier) Provider() string {
	return constants.IdentityProviderGoogle
}

// Verify checks an ID token and extracts the profile. The audience
// must match the configured client ID.
func (v *Verifier) Verify(ctx context.Context, idToken string) (*oauth.Identity, error) {
	idToken = strings.TrimSpace(idToken)
	if idToken == "" {
		return nil, oauth.ErrTokenInvalid
	}

	endpoint := v.verifyURL + "?id_token=" + url.QueryEscape(idToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := v.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", oauth.ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", oauth.ErrRequestFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", oauth.ErrTokenInvalid, resp.StatusCode)
	}

	var claims struct {
		Aud           string `json:"aud"`
		Sub           string `json:"sub"`
		Email         string `json:"email"`
		EmailVerified string `json:"email_verified"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
	}
	if err := json.Unmarshal(respBytes, &claims); err != nil {
		return nil, fmt.Errorf("%w: %v", oauth.ErrTokenInvalid, err)
	}
	if claims.Sub == "" {
		return nil, oauth.ErrTokenInvalid
	}
	if v.clientID != "" && claims.Aud != v.clientID {
		return nil, oauth.ErrAudienceInvalid
	}
	if claims.Email == "" || claims.EmailVerified != "true" {
		return nil, oauth.ErrEmailMissing
	}

	return &oauth.Identity{
		Provider:  constants.IdentityProviderGoogle,
		SubjectID: claims.Sub,
		Email:     claims.Email,
		Name:      claims.Name,
		Picture:   claims.Picture,
	}, nil
}
