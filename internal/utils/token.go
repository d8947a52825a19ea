package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const tokenTTL = 24 * time.Hour

// AdminClaims is the token payload for company-admin sessions. The
// company id travels in the token so every request is tenant-scoped
// without a lookup.
type AdminClaims struct {
	AdminID   string `json:"admin_id"`
	CompanyID string `json:"company_id"`
	jwt.RegisteredClaims
}

// SuperAdminClaims is the token payload for platform-operator sessions.
type SuperAdminClaims struct {
	SuperAdminID string `json:"super_admin_id"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies the two session token flavors with a
// shared HS256 secret.
type TokenIssuer struct {
	secret []byte
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret)}
}

func (t *TokenIssuer) GenerateAdminToken(adminID, companyID string) (string, error) {
	claims := AdminClaims{
		AdminID:   adminID,
		CompanyID: companyID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

func (t *TokenIssuer) GenerateSuperAdminToken(superAdminID string) (string, error) {
	claims := SuperAdminClaims{
		SuperAdminID: superAdminID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

func (t *TokenIssuer) VerifyAdminToken(tokenString string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(sanitizeToken(tokenString), &AdminClaims{}, t.keyFunc)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.AdminID == "" || claims.CompanyID == "" {
		return nil, errors.New("token missing identity claims")
	}
	return claims, nil
}

func (t *TokenIssuer) VerifySuperAdminToken(tokenString string) (*SuperAdminClaims, error) {
	token, err := jwt.ParseWithClaims(sanitizeToken(tokenString), &SuperAdminClaims{}, t.keyFunc)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SuperAdminClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.SuperAdminID == "" {
		return nil, errors.New("token missing identity claims")
	}
	return claims, nil
}

func (t *TokenIssuer) keyFunc(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return t.secret, nil
}

// BearerToken pulls the raw token out of the Authorization header.
func BearerToken(c echo.Context) string {
	return sanitizeToken(c.Request().Header.Get(echo.HeaderAuthorization))
}

func sanitizeToken(token string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
}
