package service

import (
	"time"

	"github.com/gymloop/accounts/internal/accounts/domain"
	"github.com/gymloop/accounts/pkg/jwtx"
)

// TokenService issues signed session tokens. Tokens are stateless; validity
// is a function of signature and expiry only.
type TokenService struct {
	Signer     jwtx.Signer
	Issuer     string
	SessionTTL time.Duration
}

// Issue signs a session token for the given user.
func (s *TokenService) Issue(u domain.User) (string, error) {
	ttl := s.SessionTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}

	claims := jwtx.NewSessionClaims(
		u.ID,
		u.Username,
		string(u.Role),
		s.Issuer,
		ttl,
		time.Now().UTC(),
	)

	return s.Signer.Sign(claims)
}
