package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/q815101630/flaska/internal/core/domain"
)

// TokenPurpose names the account flow a token was issued for. The purpose is
// the claim key the subject id is stored under, so a token minted for one
// flow cannot be redeemed in another.
type TokenPurpose string

const (
	TokenConfirmUser   TokenPurpose = "confirm_user"
	TokenResetPassword TokenPurpose = "reset_password"
	TokenChangeEmail   TokenPurpose = "change_email"
)

const defaultTokenTTL = time.Hour

// TokenService issues and redeems signed, time-limited tokens carrying a
// single user id. Verification fails closed: malformed signatures, expiry
// and purpose mismatches all collapse into domain.ErrInvalidToken.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token embedding userID under the purpose claim key.
func (s *TokenService) Issue(userID int64, purpose TokenPurpose) (string, error) {
	claims := jwt.MapClaims{
		string(purpose): userID,
		"exp":           time.Now().Add(s.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Redeem verifies the token and returns the embedded user id. Every failure
// mode yields domain.ErrInvalidToken; callers must treat them identically.
func (s *TokenService) Redeem(token string, purpose TokenPurpose) (int64, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return 0, domain.ErrInvalidToken
	}

	// JSON numbers decode as float64.
	raw, ok := claims[string(purpose)].(float64)
	if !ok {
		return 0, domain.ErrInvalidToken
	}
	return int64(raw), nil
}
