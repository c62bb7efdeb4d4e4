package plaid

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWebhook(t *testing.T) {
	body := []byte(`{
		"code": 3,
		"message": "Transactions removed",
		"access_token": "test_wells",
		"total_transactions": 412,
		"removed_transactions": ["txn1", "txn2"]
	}`)

	hook, err := ParseWebhook(body)
	require.NoError(t, err)
	assert.Equal(t, WebhookTransactionsRemoved, hook.Code)
	assert.Equal(t, AccessToken("test_wells"), hook.AccessToken)
	assert.Equal(t, 412, hook.TotalTransactions)
	assert.Equal(t, []string{"txn1", "txn2"}, hook.RemovedTransactions)
}

func TestParseWebhookMalformed(t *testing.T) {
	_, err := ParseWebhook([]byte(`not json`))
	assert.Error(t, err)
}

func signWebhook(t *testing.T, key *ecdsa.PrivateKey, body []byte, iat time.Time) string {
	t.Helper()

	sum := sha256.Sum256(body)
	token := jwt.NewWithClaims(jwt.SigningMethodES256, jwt.MapClaims{
		"iat":                 iat.Unix(),
		"request_body_sha256": hex.EncodeToString(sum[:]),
	})
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func jwkFor(t *testing.T, key *ecdsa.PrivateKey) JWKPublicKey {
	t.Helper()
	return JWKPublicKey{
		X: base64.RawURLEncoding.EncodeToString(key.PublicKey.X.FillBytes(make([]byte, 32))),
		Y: base64.RawURLEncoding.EncodeToString(key.PublicKey.Y.FillBytes(make([]byte, 32))),
	}
}

func TestVerifyWebhook(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	body := []byte(`{"code":0,"message":"Initial pull complete","access_token":"test_wells","total_transactions":14}`)
	header := signWebhook(t, key, body, time.Now())

	ok, err := VerifyWebhook(body, header, jwkFor(t, key))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyWebhookTamperedBody(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	body := []byte(`{"code":0,"total_transactions":14}`)
	header := signWebhook(t, key, body, time.Now())

	ok, err := VerifyWebhook([]byte(`{"code":0,"total_transactions":9000}`), header, jwkFor(t, key))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyWebhookWrongKey(t *testing.T) {
	signingKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	otherKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	body := []byte(`{"code":2}`)
	header := signWebhook(t, signingKey, body, time.Now())

	ok, err := VerifyWebhook(body, header, jwkFor(t, otherKey))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyWebhookStaleToken(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	body := []byte(`{"code":2}`)
	header := signWebhook(t, key, body, time.Now().Add(-10*time.Minute))

	ok, err := VerifyWebhook(body, header, jwkFor(t, key))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyWebhookRejectsOtherAlgorithms(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	body := []byte(`{"code":2}`)
	sum := sha256.Sum256(body)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iat":                 time.Now().Unix(),
		"request_body_sha256": hex.EncodeToString(sum[:]),
	})
	header, err := token.SignedString([]byte("shared secret"))
	require.NoError(t, err)

	ok, err := VerifyWebhook(body, header, jwkFor(t, key))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyWebhookGarbageHeader(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	ok, err := VerifyWebhook([]byte(`{}`), "not.a.jwt", jwkFor(t, key))
	assert.False(t, ok)
	assert.Error(t, err)
}
