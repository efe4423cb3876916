package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrops-backend-go/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const tokenTypeAccess = "access"

type Service interface {
	IssueToken(principal auth.Principal) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime time.Duration
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) (Service, error) {
	expiration, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, fmt.Errorf("invalid access token expiration: %w", err)
	}
	return &JWTService{
		accessTokenExpirationTime: expiration,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}, nil
}

// IssueToken signs an access token for principal. Expiry is the only invalidation.
func (j *JWTService) IssueToken(principal auth.Principal) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.accessTokenExpirationTime).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"email":      principal.Email,
		"name":       principal.Name,
		"department": principal.Department,
		"role":       principal.Role,
		"type":       tokenTypeAccess,
		"exp":        expiresAt,
		"iat":        time.Now().Unix(),
	})
	return tokenString, expiresAt, err
}

// PrincipalFromClaims maps access token claims to a principal.
func PrincipalFromClaims(claims map[string]interface{}) (auth.Principal, error) {
	if tokenType, _ := claims["type"].(string); tokenType != tokenTypeAccess {
		return auth.Principal{}, auth.ErrInvalidToken
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return auth.Principal{}, auth.ErrInvalidToken
	}

	name, _ := claims["name"].(string)
	department, _ := claims["department"].(string)
	role, _ := claims["role"].(string)

	return auth.Principal{
		Email:      email,
		Name:       name,
		Department: department,
		Role:       role,
	}, nil
}

// PrincipalFromContext reads the principal from claims placed by jwtauth.Verifier.
func PrincipalFromContext(ctx context.Context) (auth.Principal, error) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return auth.Principal{}, auth.ErrInvalidToken
	}
	return PrincipalFromClaims(claims)
}
