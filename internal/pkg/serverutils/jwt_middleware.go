package serverutils

import (
	"fmt"
	"strings"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AuthVerifier validates bearer tokens against the identity provider's
// published JWKS. Tokens are issued by the provider, never by this service.
type AuthVerifier struct {
	keyfunc  keyfunc.Keyfunc
	issuer   string
	audience string
}

// NewAuthVerifier fetches the JWKS from <issuerURL>/.well-known/jwks.json and
// keeps it refreshed in the background.
func NewAuthVerifier(issuerURL, audience string) (*AuthVerifier, error) {
	issuerURL = strings.TrimRight(issuerURL, "/")
	jwksURL := issuerURL + "/.well-known/jwks.json"

	kf, err := keyfunc.NewDefault([]string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("failed to load JWKS from %s: %w", jwksURL, err)
	}

	return &AuthVerifier{
		keyfunc:  kf,
		issuer:   issuerURL,
		audience: audience,
	}, nil
}

// Middleware authenticates the request and stores the token subject under
// Locals("client_id") and the email claim under Locals("email").
func (v *AuthVerifier) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing or invalid authorization header"})
		}
		tokenStr := authHeader[7:]

		token, err := jwt.Parse(tokenStr, v.keyfunc.Keyfunc,
			jwt.WithIssuer(v.issuer),
			jwt.WithAudience(v.audience),
			jwt.WithExpirationRequired(),
		)
		if err != nil || !token.Valid {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid claims"})
		}

		sub, err := claims.GetSubject()
		if err != nil || sub == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token has no subject"})
		}

		ctx.Locals("client_id", sub)
		if email, ok := claims["email"].(string); ok {
			ctx.Locals("email", email)
		}
		return ctx.Next()
	}
}
