package facebook

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

// Verifier validates Facebook access tokens through the Graph API.
// debug_token confirms the token belongs to our app, then /me pulls
// the profile.
type Verifier struct {
	appID     string
	appSecret string
	graphURL  string
	http      *http.Client
}

// NewVerifier creates a Facebook token verifier.
func NewVerifier(cfg *config.FacebookOAuthConfig) *Verifier {
	graphURL := "https://graph.facebook.com"
	timeout := 5 * time.Second
	appID := ""
	appSecret := ""
	if cfg != nil {
		if strings.TrimSpace(cfg.GraphURL) != "" {
			graphURL = strings.TrimRight(strings.TrimSpace(cfg.GraphURL), "/")
		}
		if cfg.TimeoutMS > 0 {
			timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond
		}
		appID = strings.TrimSpace(cfg.AppID)
		appSecret = strings.TrimSpace(cfg.AppSecret)
	}
	return &Verifier{
		appID:     appID,
		appSecret: appSecret,
		graphURL:  graphURL,
		http:      &http.Client{Timeout: timeout},
	}
}

// Provider names the identity provider.
func (v *Verifier) Provider() string {
	return constants.IdentityProviderFacebook
}

// Verify checks an access token and extracts the profile.
func (v *Verifier) Verify(ctx context.Context, accessToken string) (*oauth.Identity, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return nil, oauth.ErrTokenInvalid
	}

	if err := v.debugToken(ctx, accessToken); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("fields", "id,name,email,picture")
	query.Set("access_token", accessToken)
	respBytes, err := v.get(ctx, "/me?"+query.Encode())
	if err != nil {
		return nil, err
	}

	var profile struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Picture struct {
			Data struct {
				URL string `json:"url"`
			} `json:"data"`
		} `json:"picture"`
	}
	if err := json.Unmarshal(respBytes, &profile); err != nil {
		return nil, fmt.Errorf("%w: %v", oauth.ErrTokenInvalid, err)
	}
	if profile.ID == "" {
		return nil, oauth.ErrTokenInvalid
	}
	if profile.Email == "" {
		return nil, oauth.ErrEmailMissing
	}

	return &oauth.Identity{
		Provider:  constants.IdentityProviderFacebook,
		SubjectID: profile.ID,
		Email:     profile.Email,
		Name:      profile.Name,
		Picture:   profile.Picture.Data.URL,
	}, nil
}

// debugToken confirms the token is valid and issued for our app.
func (v *Verifier) debugToken(ctx context.Context, accessToken string) error {
	if v.appID == "" || v.appSecret == "" {
		// App credentials unset, trust /me alone. Only sensible in dev.
		return nil
	}

	query := url.Values{}
	query.Set("input_token", accessToken)
	query.Set("access_token", v.appID+"|"+v.appSecret)
	respBytes, err := v.get(ctx, "/debug_token?"+query.Encode())
	if err != nil {
		return err
	}

	var resp struct {
		Data struct {
			AppID   string `json:"app_id"`
			IsValid bool   `json:"is_valid"`
		} `json:"data"`
	}
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return fmt.Errorf("%w: %v", oauth.ErrTokenInvalid, err)
	}
	if !resp.Data.IsValid {
		return oauth.ErrTokenInvalid
	}
	if resp.Data.AppID != v.appID {
		return oauth.ErrAudienceInvalid
	}
	return nil
}

func (v *Verifier) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.graphURL+path, nil)
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
	return respBytes, nil
}
