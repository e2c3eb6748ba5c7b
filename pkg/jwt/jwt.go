package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptySecret se devuelve cuando el secreto de firma no está configurado.
var ErrEmptySecret = errors.New("jwt: secret vacío")

// Subject identifica la sesión de venta: usuario, empresa y rol.
type Subject struct {
	UserID    string
	CompanyID string
	Role      string // "admin" | "sales" | "accounts"
}

// Claims del token. El usuario viaja en "sub"; empresa y rol en claims propios
// para que el middleware no consulte la DB.
type Claims struct {
	jwt.RegisteredClaims
	CompanyID string `json:"company_id"`
	Role      string `json:"role"`
}

// Generate firma un token HS256 para el sujeto. ttl negativo produce un token ya vencido.
func Generate(secret string, sub Subject, issuer string, ttl time.Duration) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, ErrEmptySecret
	}
	now := time.Now()
	exp := now.Add(ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   sub.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		CompanyID: sub.CompanyID,
		Role:      sub.Role,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwt: firmar token: %w", err)
	}
	return signed, exp, nil
}

// Parse valida firma, vencimiento y emisor (si issuer no es vacío) y devuelve el sujeto.
func Parse(secret, issuer, tokenString string) (Subject, error) {
	if secret == "" {
		return Subject{}, ErrEmptySecret
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return Subject{}, err
	}
	if !token.Valid || claims.Subject == "" || claims.CompanyID == "" {
		return Subject{}, errors.New("jwt: claims incompletos")
	}
	return Subject{UserID: claims.Subject, CompanyID: claims.CompanyID, Role: claims.Role}, nil
}
