package utils

import (
	"examportal/backend/config"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// TokenExpiry matches the portal's fixed session length.
const TokenExpiry = 100 * time.Hour

type EntityRef struct {
	ID uint `json:"id"`
}

// AuthClaims carries the caller's role and identity. Exactly one of
// Student/Faculty is set, mirroring the {isStudent|isFaculty,
// student|faculty:{id}} payload shape of the API.
type AuthClaims struct {
	IsStudent bool       `json:"isStudent,omitempty"`
	IsFaculty bool       `json:"isFaculty,omitempty"`
	Student   *EntityRef `json:"student,omitempty"`
	Faculty   *EntityRef `json:"faculty,omitempty"`
	jwt.RegisteredClaims
}

func GenerateStudentToken(studentID uint, cfg *config.Config) (string, error) {
	return signClaims(&AuthClaims{
		IsStudent: true,
		Student:   &EntityRef{ID: studentID},
	}, cfg)
}

func GenerateFacultyToken(facultyID uint, cfg *config.Config) (string, error) {
	return signClaims(&AuthClaims{
		IsFaculty: true,
		Faculty:   &EntityRef{ID: facultyID},
	}, cfg)
}

func signClaims(claims *AuthClaims, cfg *config.Config) (string, error) {
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(TokenExpiry))
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ExtractClaims validates the Authorization header token and returns its
// claims.
func ExtractClaims(c *fiber.Ctx, cfg *config.Config) (*AuthClaims, error) {
	tokenString := c.Get("Authorization")
	if tokenString == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Missing authorization token")
	}

	claims := &AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}
	if !token.Valid {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}

	return claims, nil
}
