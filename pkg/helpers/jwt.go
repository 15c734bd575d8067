package helpers

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrMissingUserID = errors.New("token carries no user id")
)

// JWTManager signs and verifies HS256 access tokens.
type JWTManager struct {
	AccessSecret []byte
	AccessTTL    time.Duration
	Issuer       string
}

var defaultManager *JWTManager

func NewJWTManager(accessSecret string, accessTTL time.Duration, issuer string) *JWTManager {
	m := &JWTManager{
		AccessSecret: []byte(accessSecret),
		AccessTTL:    accessTTL,
		Issuer:       issuer,
	}
	defaultManager = m
	return m
}

// DefaultJWT returns the last constructed JWTManager (used for auto-wiring routes)
func DefaultJWT() *JWTManager { return defaultManager }

// LegacyID accepts both the numeric and the string form of the id the mobile
// client's original issuer put under data.id.
type LegacyID string

func (l *LegacyID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = LegacyID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*l = LegacyID(n.String())
	return nil
}

type LegacyData struct {
	ID LegacyID `json:"id"`
}

type Claims struct {
	UserID string      `json:"uid,omitempty"`
	Data   *LegacyData `json:"data,omitempty"`
	jwt.RegisteredClaims
}

// Identity returns uid, falling back to data.id.
func (c *Claims) Identity() string {
	if c.UserID != "" {
		return c.UserID
	}
	if c.Data != nil {
		return string(c.Data.ID)
	}
	return ""
}

func (m *JWTManager) GenerateAccessToken(userID string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(m.AccessTTL)
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    m.Issuer,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.AccessSecret)
	return s, exp, err
}

// ParseAccessToken verifies the signature and expiry and requires an identity.
func (m *JWTManager) ParseAccessToken(tokenStr string) (*Claims, error) {
	claims, err := parseToken(tokenStr, m.AccessSecret)
	if err != nil {
		return nil, err
	}
	if claims.Identity() == "" {
		return nil, ErrMissingUserID
	}
	return claims, nil
}

func parseToken(tokenStr string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
