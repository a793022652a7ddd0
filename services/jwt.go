package services

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/golang-jwt/jwt/v5"
)

type JWTService struct {
	context.DefaultService

	secret   []byte
	issuer   string
	tokenTTL time.Duration
}

const JWT_SVC = "jwt_svc"

type CustomClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (svc JWTService) Id() string {
	return JWT_SVC
}

func (svc *JWTService) Configure(ctx *context.Context) error {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	svc.secret = []byte(secret)

	svc.issuer = os.Getenv("JWT_ISSUER")
	if svc.issuer == "" {
		svc.issuer = "orydia_api"
	}

	svc.tokenTTL = 24 * time.Hour
	if ttl := os.Getenv("JWT_TTL_HOURS"); ttl != "" {
		if d, err := time.ParseDuration(ttl + "h"); err == nil {
			svc.tokenTTL = d
		}
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *JWTService) Start() error {
	return nil
}

// ToJWT signs an access token for the user.
func (svc *JWTService) ToJWT(userID, role string) (string, int64, error) {
	now := time.Now()
	claims := CustomClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    svc.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(svc.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(svc.secret)
	if err != nil {
		return "", 0, err
	}
	return signed, int64(svc.tokenTTL.Seconds()), nil
}

// VerifyJWTToken parses and validates a signed token, rejecting any signing
// method other than HS256.
func (svc *JWTService) VerifyJWTToken(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return svc.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// ExtractTokenFromHeader strips the Bearer prefix from an Authorization header.
func (svc *JWTService) ExtractTokenFromHeader(header string) (string, error) {
	if header == "" {
		return "", errors.New("authorization header missing")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("authorization header must be a Bearer token")
	}
	return parts[1], nil
}
