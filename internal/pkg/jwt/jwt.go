package jwt

import (
	"fmt"
	"time"

	"github.com/buildhq/sitetrack-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies access tokens issued by the surrounding platform and can
// mint tokens with the same shape (used by ops tooling and tests).
type Service interface {
	GenerateAccessToken(userID string, fullName string, email string, role user.Role) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey            string
	accessExpirationTime string
	tokenAuth            *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessExpirationTime string) Service {
	return &JWTService{
		secretKey:            secretKey,
		accessExpirationTime: accessExpirationTime,
		tokenAuth:            jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// GenerateAccessToken implements Service.
func (j *JWTService) GenerateAccessToken(userID string, fullName string, email string, role user.Role) (string, int64, error) {
	expiration, err := time.ParseDuration(j.accessExpirationTime)
	if err != nil {
		return "", 0, fmt.Errorf("invalid access token expiration time: %w", err)
	}

	now := time.Now()
	expiresAt := now.Add(expiration).Unix()

	claims := map[string]interface{}{
		"user_id":   userID,
		"full_name": fullName,
		"email":     email,
		"role":      string(role),
		"type":      "access",
		"iat":       now.Unix(),
		"exp":       expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	if err != nil {
		return "", 0, fmt.Errorf("failed to encode access token: %w", err)
	}

	return tokenString, expiresAt, nil
}
