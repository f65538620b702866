package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"eventscheduling/internal/domain"
)

const issuerName = "eventscheduling"

type credentialClaims struct {
	jwt.RegisteredClaims
	EventID string `json:"event_id"`
}

type credentialIssuer struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

// NewCredentialIssuer returns a CredentialIssuer that signs an attendance credential per
// enrollment. Every credential carries a fresh jti.
func NewCredentialIssuer(secret string, validity time.Duration) domain.CredentialIssuer {
	return &credentialIssuer{secret: []byte(secret), validity: validity, now: time.Now}
}

func (c *credentialIssuer) IssueCredential(userID, eventID string) (string, error) {
	now := c.now()
	claims := credentialClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuerName,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.validity)),
		},
		EventID: eventID,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign credential: %w", err)
	}
	return signed, nil
}
