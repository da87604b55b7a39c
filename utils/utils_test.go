package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tok, err := GenerateToken(7, "owner", "s3cret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(tok, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "owner", claims.Role)

	_, err = ParseToken(tok, "other")
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	tok, err := GenerateToken(7, "owner", "s3cret", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(tok, "s3cret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenRejectsOtherAlgorithms(t *testing.T) {
	claims := &Claims{UserID: 1, Role: "admin", RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("s3cret"))
	require.NoError(t, err)
	_, err = ParseToken(tok, "s3cret")
	assert.Error(t, err)
}

func TestCanonicalLanguages(t *testing.T) {
	got, err := CanonicalLanguages([]string{"EN", "th-th", "en", "zh-Hant"})
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "th-TH", "zh-Hant"}, got)

	_, err = CanonicalLanguage("??")
	assert.Error(t, err)
}

func TestMatchLanguage(t *testing.T) {
	supported := []string{"en", "th-TH"}

	for _, in := range []string{"th-TH", "th-th", "TH-th", "th"} {
		got, ok := MatchLanguage(in, supported)
		assert.True(t, ok, in)
		assert.Equal(t, "th-TH", got, in)
	}
	got, ok := MatchLanguage("EN-us", supported)
	assert.True(t, ok)
	assert.Equal(t, "en", got)

	_, ok = MatchLanguage("de", supported)
	assert.False(t, ok)
	_, ok = MatchLanguage("", supported)
	assert.False(t, ok)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "le-petit-cafe", Slugify("Le Petit Café!"))
	assert.Equal(t, "noodle-house-2", Slugify("  Noodle   House #2 "))
	assert.Equal(t, "menu", Slugify("ร้านข้าว"))
}

func TestPublicMenuURL(t *testing.T) {
	assert.Equal(t, "https://x.test/m/5", PublicMenuURL("https://x.test/m/", 5))

	png, err := MenuQRCode("https://x.test/m", 5, 10)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])
}

func TestParseDateFlexible(t *testing.T) {
	got, err := ParseDateFlexible("2026-02-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), *got)

	got, err = ParseDateFlexible("")
	assert.NoError(t, err)
	assert.Nil(t, got)

	_, err = ParseDateFlexible("tomorrow")
	assert.Error(t, err)
}

func TestParamUint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var got uint
	var ok bool
	r.GET("/menus/:id", func(c *gin.Context) {
		got, ok = ParamUint(c, "id")
		c.Status(http.StatusOK)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/menus/42", nil))
	assert.True(t, ok)
	assert.Equal(t, uint(42), got)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/menus/abc", nil))
	assert.False(t, ok)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/menus/0", nil))
	assert.False(t, ok)
}
