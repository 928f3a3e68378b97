package utils

import (
	"errors"
	"time"

	"docvault/config"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Claims are issued by the external auth collaborator. This core only
// validates them and extracts the container (office) scope.
type Claims struct {
	UserID      primitive.ObjectID `json:"user_id"`
	ContainerID primitive.ObjectID `json:"container_id"`
	Role        string             `json:"role"`
	jwt.RegisteredClaims
}

const RoleAdmin = "admin"

var accessTokenTTL = 24 * time.Hour

// jwtSecret resolves the signing secret at call time. Reading it at package
// init would run before config loading and miss a secret supplied only via
// a .env file.
func jwtSecret() []byte {
	if config.AppConfig != nil {
		return []byte(config.AppConfig.JWTSecret)
	}
	return []byte(getEnv("JWT_SECRET", "your-secret-key"))
}

// GenerateAccessToken creates a signed token. Token issuance belongs to the
// auth collaborator; this helper exists for tooling and tests.
func GenerateAccessToken(userID, containerID primitive.ObjectID, role string) (string, error) {
	claims := &Claims{
		UserID:      userID,
		ContainerID: containerID,
		Role:        role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "docvault",
			Subject:   userID.Hex(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ValidateToken parses and validates an access token
func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.ContainerID.IsZero() {
		return nil, errors.New("token missing container claim")
	}

	return claims, nil
}
