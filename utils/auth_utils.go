package utils

import (
	"os"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

// UserClaims is the authenticated actor, set by the auth middleware and
// passed explicitly into every operation that needs an identity.
type UserClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

type contextKey string

const UserContextKey contextKey = "user"

func GetUser(c *gin.Context) *UserClaims {
	user, exists := c.Get(string(UserContextKey))
	if !exists {
		return nil
	}
	if userClaims, ok := user.(*UserClaims); ok {
		return userClaims
	}
	return nil
}

const (
	AccessTokenTTL  = time.Hour * 24 * 7
	RefreshTokenTTL = time.Hour * 24 * 30
)

// GenerateTokenPair mints the access and refresh JWTs for a user.
func GenerateTokenPair(userID uint, username string) (accessToken, refreshToken string, err error) {
	secret := []byte(os.Getenv("JWT_SECRET"))

	accessBase := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"exp":      time.Now().Add(AccessTokenTTL).Unix(),
	})
	accessToken, err = accessBase.SignedString(secret)
	if err != nil {
		return "", "", err
	}

	refreshBase := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(RefreshTokenTTL).Unix(),
	})
	refreshToken, err = refreshBase.SignedString(secret)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}
