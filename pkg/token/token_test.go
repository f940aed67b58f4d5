package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	tokenStr, err := GenerateJWT("user-1", string(RoleMember), "video_service")
	require.NoError(t, err)

	claims, err := ParseJWT(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.MemberID)
	assert.Equal(t, "member", claims.Role)
	assert.Equal(t, "video_service", claims.Issuer)
}

func TestParseJWTRejects(t *testing.T) {
	t.Run("亂碼", func(t *testing.T) {
		_, err := ParseJWT("not-a-token")
		assert.Error(t, err)
	})

	t.Run("其他金鑰簽章", func(t *testing.T) {
		other, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{MemberID: "user-1"}).SignedString([]byte("another"))
		require.NoError(t, err)
		_, err = ParseJWT(other)
		assert.Error(t, err)
	})

	t.Run("已過期", func(t *testing.T) {
		expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
			MemberID: "user-1",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		}).SignedString(jwtSecret)
		require.NoError(t, err)
		_, err = ParseJWT(expired)
		assert.Error(t, err)
	})
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", BearerToken("Bearer abc"))
	assert.Equal(t, "abc", BearerToken("bearer abc"))
	assert.Equal(t, "", BearerToken("Basic abc"))
	assert.Equal(t, "", BearerToken("Bearer "))
}
