package security

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrJWTSecretMissing = errors.New("jwt secret is not set")

const defaultTokenTTL = 7 * 24 * time.Hour

type Claims struct {
	Uid int64 `json:"uid"`
	jwt.RegisteredClaims
}

// TokenIssuer 签发/解析 HS256 会话令牌。
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration, issuer string) *TokenIssuer {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
		now:    time.Now,
	}
}

// Award 为 uid 签发令牌（默认 7 天过期）。
func (t *TokenIssuer) Award(uid int64) (string, error) {
	if len(t.secret) == 0 {
		return "", ErrJWTSecretMissing
	}

	now := t.now()
	claims := &Claims{
		Uid: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   strconv.FormatInt(uid, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// ParseToken 解析并验证令牌，只接受 HS256。
func (t *TokenIssuer) ParseToken(tokenStr string) (*Claims, error) {
	if len(t.secret) == 0 {
		return nil, ErrJWTSecretMissing
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(tok *jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
