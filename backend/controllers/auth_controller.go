package controllers

import (
	"errors"

	"examportal/backend/config"
	"examportal/backend/models"
	"examportal/backend/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAuthController(db *gorm.DB, cfg *config.Config) *AuthController {
	return &AuthController{DB: db, Cfg: cfg}
}

// GetCurrentUser godoc
// @Summary Get current logged in user
// @Description Returns the authenticated student or faculty, password excluded
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /auth [get]
func (ac *AuthController) GetCurrentUser(c *fiber.Ctx) error {
	claims, err := utils.ExtractClaims(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	if claims.IsStudent && claims.Student != nil {
		var student models.Student
		if err := ac.DB.Preload("Scores").Preload("AssignedTests").
			First(&student, claims.Student.ID).Error; err != nil {
			return utils.ServerError(c, err)
		}
		return c.JSON(fiber.Map{
			"student":   student,
			"isStudent": true,
			"isFaculty": false,
		})
	}

	if claims.IsFaculty && claims.Faculty != nil {
		var faculty models.Faculty
		if err := ac.DB.Preload("AssignedBatches").
			First(&faculty, claims.Faculty.ID).Error; err != nil {
			return utils.ServerError(c, err)
		}
		return c.JSON(fiber.Map{
			"faculty":   faculty,
			"isFaculty": true,
			"isStudent": false,
		})
	}

	return utils.Unauthorized(c, "Unauthorized")
}

// Login godoc
// @Summary Authenticate a student or faculty
// @Description Looks up the username among students first, then faculties,
// @Description and returns a signed token embedding role and identity
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /auth [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Username == "" {
		return utils.BadRequest(c, "Please add username")
	}
	if input.Password == "" {
		return utils.BadRequest(c, "Password is required")
	}

	// Usernames are unique per collection but not across both; students
	// are checked first and a student match wins.
	var student models.Student
	err := ac.DB.Where("username = ?", input.Username).First(&student).Error
	if err == nil {
		if bcrypt.CompareHashAndPassword([]byte(student.Password), []byte(input.Password)) != nil {
			return utils.MsgWithID(c, fiber.StatusBadRequest, "Invalid password", "INVALID_PASSWORD")
		}
		token, err := utils.GenerateStudentToken(student.ID, ac.Cfg)
		if err != nil {
			return utils.ServerError(c, err)
		}
		return c.JSON(fiber.Map{
			"token":     token,
			"isStudent": true,
			"student":   fiber.Map{"id": student.ID},
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ServerError(c, err)
	}

	var faculty models.Faculty
	err = ac.DB.Where("username = ?", input.Username).First(&faculty).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.MsgWithID(c, fiber.StatusBadRequest, "Invalid credentials", "INVALID_CREDENTIALS")
		}
		return utils.ServerError(c, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(faculty.Password), []byte(input.Password)) != nil {
		return utils.MsgWithID(c, fiber.StatusBadRequest, "Invalid password", "INVALID_PASSWORD")
	}
	token, err := utils.GenerateFacultyToken(faculty.ID, ac.Cfg)
	if err != nil {
		return utils.ServerError(c, err)
	}
	return c.JSON(fiber.Map{
		"token":     token,
		"isFaculty": true,
		"faculty":   fiber.Map{"id": faculty.ID},
	})
}
