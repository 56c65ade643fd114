package oauth

import (
	"context"
	"errors"
)

var (
	ErrTokenInvalid    = errors.New("oauth token invalid")
	ErrAudienceInvalid = errors.New("oauth token audience mismatch")
	ErrRequestFailed   = errors.New("oauth verify request failed")
	ErrEmailMissing    = errors.New("oauth profile has no verified email")
)

// Identity is a verified external profile. SubjectID is the provider's
// stable account identifier, never the email.
type Identity struct {
	Provider  string
	SubjectID string
	Email     string
	Name      string
	Picture   string
}

// Verifier turns a provider credential into a verified identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
	Provider() string
}
