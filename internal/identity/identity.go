// Package identity verifies bearer credentials issued by an external identity
// provider and turns them into the profile the application keys users by.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/project-dashboard-api/internal/config"
	"go.uber.org/zap"
)

// ErrInvalidToken is returned for any credential that cannot be verified.
var ErrInvalidToken = errors.New("invalid identity token")

// Identity is the verified profile behind a credential.
type Identity struct {
	ExternalID string
	Email      string
	Name       string
	PictureURL string
}

type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// NewVerifier builds the verifier selected by cfg.Provider. A provider that is
// unknown or missing required settings yields a verifier that rejects every token.
func NewVerifier(cfg config.IdentityConfig, log *zap.Logger) Verifier {
	switch cfg.Provider {
	case "firebase":
		if cfg.FirebaseProjectID == "" {
			return disabled(log, "FIREBASE_PROJECT_ID is not set")
		}
		return NewFirebaseVerifier(cfg.FirebaseProjectID, cfg.FirebaseCertsURL, nil)
	case "google":
		return NewGoogleVerifier(cfg.GoogleUserInfoURL, nil)
	case "hmac":
		if cfg.HMACSecret == "" {
			return disabled(log, "IDENTITY_HMAC_SECRET is not set")
		}
		return NewHMACVerifier(cfg.HMACSecret, cfg.HMACIssuer)
	default:
		return disabled(log, fmt.Sprintf("unknown identity provider %q", cfg.Provider))
	}
}

func disabled(log *zap.Logger, reason string) Verifier {
	log.Warn("Identity verification disabled, all bearer tokens will be rejected",
		zap.String("reason", reason))
	return DisabledVerifier{Reason: reason}
}

// DisabledVerifier rejects every token.
type DisabledVerifier struct {
	Reason string
}

func (d DisabledVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	return nil, fmt.Errorf("%w: %s", ErrInvalidToken, d.Reason)
}
