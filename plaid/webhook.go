package plaid

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// WebhookCode identifies why the service invoked a webhook.
type WebhookCode int

const (
	// WebhookInitialPullComplete fires once the initial transaction pull
	// has finished.
	WebhookInitialPullComplete WebhookCode = 0

	// WebhookHistoricalPullComplete fires once the historical transaction
	// pull has completed, shortly after the initial pull.
	WebhookHistoricalPullComplete WebhookCode = 1

	// WebhookTransactionsUpdated fires at set intervals throughout the day
	// as data is refreshed from the institutions.
	WebhookTransactionsUpdated WebhookCode = 2

	// WebhookTransactionsRemoved fires when transactions have been removed
	// from the service.
	WebhookTransactionsRemoved WebhookCode = 3

	// WebhookUpdated fires when a user's webhook is changed via a
	// credential-less update.
	WebhookUpdated WebhookCode = 4

	// WebhookError fires when an error occurred; the message carries the
	// service's description.
	WebhookError WebhookCode = 5
)

// Webhook is the body the service posts to a registered webhook URL.
type Webhook struct {
	Code                WebhookCode `json:"code"`
	Message             string      `json:"message"`
	AccessToken         AccessToken `json:"access_token"`
	TotalTransactions   int         `json:"total_transactions"`
	RemovedTransactions []string    `json:"removed_transactions"`
}

// ParseWebhook decodes a webhook body. Callers handling untrusted input
// should pair it with VerifyWebhook.
func ParseWebhook(body []byte) (*Webhook, error) {
	var hook Webhook
	if err := json.Unmarshal(body, &hook); err != nil {
		return nil, fmt.Errorf("plaid: decode webhook body: %w", err)
	}
	return &hook, nil
}

// JWKPublicKey is the P-256 verification key the service publishes for
// webhook signatures, with coordinates in base64url without padding.
type JWKPublicKey struct {
	X string `json:"x"`
	Y string `json:"y"`
}

// webhookMaxAge bounds how old a signed webhook may be before it is
// rejected as a possible replay.
const webhookMaxAge = 5 * time.Minute

// VerifyWebhook checks a webhook body against the ES256 JWT the service
// sends in the Plaid-Verification header. It returns true only when the
// token is well formed, signed by key, fresh, and its request_body_sha256
// claim matches the body.
func VerifyWebhook(body []byte, verificationHeader string, key JWKPublicKey) (bool, error) {
	token, parts, err := new(jwt.Parser).ParseUnverified(verificationHeader, jwt.MapClaims{})
	if err != nil {
		return false, fmt.Errorf("plaid: parse verification token: %w", err)
	}
	if token.Method.Alg() != "ES256" {
		return false, nil
	}

	publicKey, err := key.toECDSA()
	if err != nil {
		return false, err
	}
	if err := jwt.SigningMethodES256.Verify(parts[0]+"."+parts[1], parts[2], publicKey); err != nil {
		return false, nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false, nil
	}
	iat, ok := claims["iat"].(float64)
	if !ok || time.Since(time.Unix(int64(iat), 0)) > webhookMaxAge {
		return false, nil
	}

	claimed, ok := claims["request_body_sha256"].(string)
	if !ok {
		return false, nil
	}
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:]) == claimed, nil
}

func (k JWKPublicKey) toECDSA() (*ecdsa.PublicKey, error) {
	x, err := base64.RawURLEncoding.DecodeString(k.X)
	if err != nil {
		return nil, fmt.Errorf("plaid: decode jwk x coordinate: %w", err)
	}
	y, err := base64.RawURLEncoding.DecodeString(k.Y)
	if err != nil {
		return nil, fmt.Errorf("plaid: decode jwk y coordinate: %w", err)
	}
	return &ecdsa.PublicKey{
		Curve: elliptic.P256(),
		X:     new(big.Int).SetBytes(x),
		Y:     new(big.Int).SetBytes(y),
	}, nil
}
