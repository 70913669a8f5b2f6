package routes

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeErrors(t *testing.T, resp *http.Response) []string {
	t.Helper()

	var body struct {
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	return body.Errors
}

func TestPublicTimestamp(t *testing.T) {
	app := SetupRouter()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v2/public/timestamp", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var ts int64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ts))
	assert.Greater(t, ts, int64(0))
}

func TestAuthenticatedRoutesRejectMissingToken(t *testing.T) {
	app := SetupRouter()

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v2/members"},
		{http.MethodGet, "/api/v2/members/42"},
		{http.MethodGet, "/api/v2/liquidations/preview/42"},
		{http.MethodGet, "/api/v2/liquidations/history"},
		{http.MethodGet, "/api/v2/liquidations/pending"},
		{http.MethodGet, "/api/v2/liquidations/7/receipt"},
		{http.MethodPost, "/api/v2/liquidations/execute"},
		{http.MethodGet, "/api/v2/withdrawals"},
		{http.MethodPost, "/api/v2/admin/members"},
		{http.MethodPost, "/api/v2/admin/withdrawals/7/approve"},
	}

	for _, tt := range paths {
		resp, err := app.Test(httptest.NewRequest(tt.method, tt.path, nil))
		require.NoError(t, err)

		assert.Equal(t, 401, resp.StatusCode, tt.path)
		assert.Equal(t, []string{"authz.invalid_session"}, decodeErrors(t, resp), tt.path)
	}
}

func TestAuthenticateRejectsMalformedToken(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	pub_der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	pub_pem := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pub_der})
	t.Setenv("JWT_PUBLIC_KEY", base64.StdEncoding.EncodeToString(pub_pem))

	app := SetupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v2/liquidations/history", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, 422, resp.StatusCode)
	assert.Equal(t, []string{"jwt.decode_and_verify"}, decodeErrors(t, resp))
}

func TestAuthenticateRejectsExpiredToken(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	pub_der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	pub_pem := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pub_der})
	t.Setenv("JWT_PUBLIC_KEY", base64.StdEncoding.EncodeToString(pub_pem))

	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.StandardClaims{
		Subject:   "IDABC123",
		ExpiresAt: time.Now().Add(-1 * time.Hour).Unix(),
	}).SignedString(key)
	require.NoError(t, err)

	app := SetupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v2/liquidations/history", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, 422, resp.StatusCode)
	assert.Equal(t, []string{"jwt.decode_and_verify"}, decodeErrors(t, resp))
}

func TestUnknownRoute(t *testing.T) {
	app := SetupRouter()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v2/public/nope", nil))
	require.NoError(t, err)

	assert.Equal(t, 404, resp.StatusCode)
}
