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

type StudentController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewStudentController(db *gorm.DB, cfg *config.Config) *StudentController {
	return &StudentController{DB: db, Cfg: cfg}
}

func (sc *StudentController) GetStudents(c *fiber.Ctx) error {
	var students []models.Student
	if err := sc.DB.Preload("Scores").Preload("AssignedTests").
		Order("created_at DESC").Find(&students).Error; err != nil {
		return utils.ServerError(c, err)
	}
	return c.JSON(students)
}

func (sc *StudentController) GetStudent(c *fiber.Ctx) error {
	var student models.Student
	if err := sc.DB.Preload("Scores").Preload("AssignedTests").
		First(&student, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Student not found")
		}
		return utils.ServerError(c, err)
	}
	return c.JSON(student)
}

// Register creates a student account inside its named batch and returns
// a signed token. The batch must pre-exist; it is checked before any
// write. Batch membership is the student's batch_id foreign key, so the
// account and its membership land in one insert. Public.
func (sc *StudentController) Register(c *fiber.Ctx) error {
	var input struct {
		Name      string `json:"name"`
		Username  string `json:"username"`
		Password  string `json:"password"`
		BatchName string `json:"batchName"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Username == "" {
		return utils.BadRequest(c, "Please add username")
	}
	if strings.ContainsFunc(input.Username, unicode.IsSpace) {
		return utils.BadRequest(c, "Username must not contain any spaces")
	}
	if input.Name == "" {
		return utils.BadRequest(c, "Please add name")
	}
	if input.BatchName == "" {
		return utils.BadRequest(c, "Please add batch name")
	}
	if len(input.Password) < 6 {
		return utils.BadRequest(c, "Please enter a password with 6 or more characters")
	}

	var existing models.Student
	if err := sc.DB.Where("username = ?", input.Username).First(&existing).Error; err == nil {
		return utils.MsgWithID(c, fiber.StatusBadRequest, "User already exists", "USER_EXISTS")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ServerError(c, err)
	}

	var batch models.Batch
	if err := sc.DB.Where("name = ?", input.BatchName).First(&batch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.BadRequest(c, "Batch does not exists")
		}
		return utils.ServerError(c, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.ServerError(c, err)
	}

	student := models.Student{
		Name:     input.Name,
		Username: input.Username,
		Password: string(hashed),
		BatchID:  &batch.ID,
	}
	if err := sc.DB.Create(&student).Error; err != nil {
		return utils.ServerError(c, err)
	}

	token, err := utils.GenerateStudentToken(student.ID, sc.Cfg)
	if err != nil {
		return utils.ServerError(c, err)
	}

	return c.JSON(fiber.Map{
		"token":     token,
		"isStudent": true,
		"student":   fiber.Map{"id": student.ID},
	})
}

// AddScore records a manual score for one (student, test) pair. At most
// one score per pair; duplicates are rejected before the write.
func (sc *StudentController) AddScore(c *fiber.Ctx) error {
	claims, err := utils.ExtractClaims(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	if claims.IsStudent {
		return utils.Unauthorized(c, "Unauthorized action")
	}

	var input struct {
		TestID *uint `json:"test_id"`
		Score  *int  `json:"score"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.TestID == nil {
		return utils.BadRequest(c, "test_id is required")
	}
	if input.Score == nil {
		return utils.BadRequest(c, "score is required")
	}

	var test models.Test
	if err := sc.DB.First(&test, *input.TestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Test not found")
		}
		return utils.ServerError(c, err)
	}

	var student models.Student
	if err := sc.DB.First(&student, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Student not found")
		}
		return utils.ServerError(c, err)
	}

	var existing models.Score
	err = sc.DB.Where("student_id = ? AND test_id = ?", student.ID, test.ID).First(&existing).Error
	if err == nil {
		return utils.BadRequest(c, "Score already added for this test")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ServerError(c, err)
	}

	score := models.Score{
		StudentID: student.ID,
		TestID:    test.ID,
		Score:     *input.Score,
	}
	if err := sc.DB.Create(&score).Error; err != nil {
		return utils.ServerError(c, err)
	}

	if err := sc.DB.Preload("Scores").Preload("AssignedTests").
		First(&student, student.ID).Error; err != nil {
		return utils.ServerError(c, err)
	}
	return c.JSON(student)
}
