package middlewares

import (
	"encoding/base64"
	"os"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"

	"github.com/coopetico/coopex/config"
	"github.com/coopetico/coopex/models"
)

var (
	AuthzInvalidSession = "authz.invalid_session"
	AuthzUserInactive   = "authz.user_inactive"
	JwtDecodeAndVerify  = "jwt.decode_and_verify"
	ServerInternalError = "server.internal_error"
)

// Auth struct represents parsed jwt information.
type Auth struct {
	UID      string   `json:"uid"`
	Email    string   `json:"email"`
	Role     string   `json:"role"`
	Audience []string `json:"aud,omitempty"`

	jwt.StandardClaims
}

// Authenticate verifies the bearer token against the cooperative's public
// key, syncs the user record and rejects deactivated users (exit-liquidated
// members keep their history but can no longer sign in).
func Authenticate(c *fiber.Ctx) error {
	var auth Auth

	user := &models.User{}

	token := c.Get("Authorization")

	if len(token) == 0 {
		return c.Status(401).JSON(fiber.Map{
			"errors": []string{AuthzInvalidSession},
		})
	}

	token = strings.Replace(token, "Bearer ", "", -1)

	public_key_pem, err := base64.StdEncoding.DecodeString(os.Getenv("JWT_PUBLIC_KEY"))

	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"errors": []string{ServerInternalError},
		})
	}

	public_key, err := jwt.ParseRSAPublicKeyFromPEM(public_key_pem)

	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"errors": []string{ServerInternalError},
		})
	}

	_, err = jwt.ParseWithClaims(token, &auth, func(t *jwt.Token) (interface{}, error) {
		return public_key, nil
	})

	if err != nil {
		return c.Status(422).JSON(fiber.Map{
			"errors": []string{JwtDecodeAndVerify},
		})
	}

	// Attrs apply on first sight only, so a user deactivated by an exit
	// liquidation is not re-activated by signing in again.
	config.DataBase.Where("uid = ?", auth.UID).Attrs(
		&models.User{
			UID:    auth.UID,
			Active: true,
		},
	).Assign(
		&models.User{
			Email: auth.Email,
			Role:  auth.Role,
		},
	).FirstOrCreate(user)

	if !user.Active {
		return c.Status(401).JSON(fiber.Map{
			"errors": []string{AuthzUserInactive},
		})
	}

	c.Locals("CurrentUser", user)

	return c.Next()
}
