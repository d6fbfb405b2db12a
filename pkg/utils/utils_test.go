package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTokenRoundTrip(t *testing.T) {
	SetSecret("test-secret")
	userID := primitive.NewObjectID()

	token, err := GenerateToken(userID, "ana@studio.test", "pixel-forge", true)
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.Hex(), claims.UserID)
	assert.Equal(t, "ana@studio.test", claims.Email)
	assert.Equal(t, "pixel-forge", claims.Organization)
	assert.True(t, claims.IsAdmin)

	oid, err := claims.ObjectID()
	require.NoError(t, err)
	assert.Equal(t, userID, oid)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	SetSecret("one")
	token, err := GenerateToken(primitive.NewObjectID(), "a@b.c", "org", false)
	require.NoError(t, err)

	SetSecret("two")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	SetSecret("test-secret")
	claims := UserClaims{
		UserID:       primitive.NewObjectID().Hex(),
		Organization: "org",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidateTokenRejectsNoneAlgorithm(t *testing.T) {
	claims := UserClaims{UserID: "x", Organization: "org"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("render-farm-42")
	require.NoError(t, err)
	assert.NotEqual(t, "render-farm-42", hash)

	assert.True(t, CheckPassword(hash, "render-farm-42"))
	assert.False(t, CheckPassword(hash, "render-farm-43"))
	assert.False(t, CheckPassword("not-a-hash", "render-farm-42"))
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "", SanitizeText(""))
	assert.Equal(t, "Lead compositor", SanitizeText("  Lead compositor "))
	assert.Equal(t, "Hello", SanitizeText("<b>Hello</b><script>alert(1)</script>"))
}

func TestSanitizeList(t *testing.T) {
	got := SanitizeList([]string{"Roto", "<i></i>", "  ", "Paint"})
	assert.Equal(t, []string{"Roto", "Paint"}, got)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "pixel-forge-vfx", Slugify("  Pixel Forge VFX! "))
	assert.Equal(t, "studio-42", Slugify("Studio__42"))
	assert.Equal(t, "", Slugify("!!!"))
}
