package controllers

import (
	"errors"
	"strings"
	"unicode"

	"examportal/backend/config"
	"examportal/backend/models"
	"examportal/backend/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type FacultyController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewFacultyController(db *gorm.DB, cfg *config.Config) *FacultyController {
	return &FacultyController{DB: db, Cfg: cfg}
}

func (fc *FacultyController) GetFaculties(c *fiber.Ctx) error {
	var faculties []models.Faculty
	if err := fc.DB.Preload("AssignedBatches").Order("created_at DESC").
		Find(&faculties).Error; err != nil {
		return utils.ServerError(c, err)
	}
	return c.JSON(faculties)
}

func (fc *FacultyController) GetFaculty(c *fiber.Ctx) error {
	var faculty models.Faculty
	if err := fc.DB.Preload("AssignedBatches").First(&faculty, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Faculty not found")
		}
		return utils.ServerError(c, err)
	}
	return c.JSON(faculty)
}

// Register creates a faculty account and returns a signed token. Public.
func (fc *FacultyController) Register(c *fiber.Ctx) error {
	var input struct {
		Name     string `json:"name"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Name == "" {
		return utils.BadRequest(c, "Please add name")
	}
	if input.Username == "" {
		return utils.BadRequest(c, "Please add username")
	}
	if strings.ContainsFunc(input.Username, unicode.IsSpace) {
		return utils.BadRequest(c, "Username must not contain any spaces")
	}
	if len(input.Password) < 6 {
		return utils.BadRequest(c, "Please enter a password with 6 or more characters")
	}

	var existing models.Faculty
	if err := fc.DB.Where("username = ?", input.Username).First(&existing).Error; err == nil {
		return utils.MsgWithID(c, fiber.StatusBadRequest, "User already exists", "USER_EXISTS")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ServerError(c, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.ServerError(c, err)
	}

	faculty := models.Faculty{
		Name:     input.Name,
		Username: input.Username,
		Password: string(hashed),
	}
	if err := fc.DB.Create(&faculty).Error; err != nil {
		return utils.ServerError(c, err)
	}

	token, err := utils.GenerateFacultyToken(faculty.ID, fc.Cfg)
	if err != nil {
		return utils.ServerError(c, err)
	}

	return c.JSON(fiber.Map{
		"token":     token,
		"isFaculty": true,
		"faculty":   fiber.Map{"id": faculty.ID},
	})
}
