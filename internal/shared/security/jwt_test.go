package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAward_缺少secret应失败(t *testing.T) {
	_, err := NewTokenIssuer("", time.Hour, "test").Award(1)
	assert.ErrorIs(t, err, ErrJWTSecretMissing)
}

func TestAwardParse_正常签发并解析(t *testing.T) {
	issuer := NewTokenIssuer("test-secret-123", time.Hour, "usercenter")

	token, err := issuer.Award(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.Uid)
	assert.Equal(t, "usercenter", claims.Issuer)
	assert.Equal(t, "42", claims.Subject)
}

func TestParseToken_过期与错误密钥(t *testing.T) {
	issuer := NewTokenIssuer("test-secret-123", time.Minute, "usercenter")
	issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expired, err := issuer.Award(1)
	require.NoError(t, err)

	_, err = NewTokenIssuer("test-secret-123", time.Minute, "usercenter").ParseToken(expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	fresh, err := NewTokenIssuer("other-secret", time.Minute, "usercenter").Award(1)
	require.NoError(t, err)
	_, err = NewTokenIssuer("test-secret-123", time.Minute, "usercenter").ParseToken(fresh)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestNewTokenIssuer_ttl非正数使用默认值(t *testing.T) {
	assert.Equal(t, defaultTokenTTL, NewTokenIssuer("s", 0, "").ttl)
}
