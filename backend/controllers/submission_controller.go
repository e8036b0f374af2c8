package controllers

import (
	"errors"
	"fmt"

	"examportal/backend/config"
	"examportal/backend/models"
	"examportal/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SubmissionController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewSubmissionController(db *gorm.DB, cfg *config.Config) *SubmissionController {
	return &SubmissionController{DB: db, Cfg: cfg}
}

func (sc *SubmissionController) GetSubmissions(c *fiber.Ctx) error {
	var submissions []models.Submission
	if err := sc.DB.Preload("SubmittedAns").Order("created_at DESC").
		Find(&submissions).Error; err != nil {
		return utils.ServerError(c, err)
	}
	return c.JSON(submissions)
}

func (sc *SubmissionController) GetSubmission(c *fiber.Ctx) error {
	var submission models.Submission
	if err := sc.DB.Preload("SubmittedAns").First(&submission, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Submission not found")
		}
		return utils.ServerError(c, err)
	}
	return c.JSON(submission)
}

// CreateSubmission records a student's answer set for a test. The
// duplicate check is a single query on (test_id, student_id): any match
// is a duplicate.
func (sc *SubmissionController) CreateSubmission(c *fiber.Ctx) error {
	claims, err := utils.ExtractClaims(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	if claims.IsFaculty {
		return utils.Unauthorized(c, "Faculty can not add a submission")
	}

	var input struct {
		TestID       uint                     `json:"test_id"`
		StudentID    uint                     `json:"student_id"`
		FacultyID    uint                     `json:"faculty_id"`
		SubmittedAns []models.SubmittedAnswer `json:"submitted_ans"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.TestID == 0 {
		return utils.BadRequest(c, "test_id is required")
	}
	if input.StudentID == 0 {
		return utils.BadRequest(c, "student_id is required")
	}
	if input.FacultyID == 0 {
		return utils.BadRequest(c, "faculty_id is required")
	}
	if len(input.SubmittedAns) == 0 {
		return utils.BadRequest(c, "submitted_ans is required")
	}
	for _, a := range input.SubmittedAns {
		if a.Ans < 1 || a.Ans > 4 {
			return utils.BadRequest(c,
				fmt.Sprintf("answer for question %d must be between 1 and 4", a.QsnNo))
		}
	}

	var test models.Test
	if err := sc.DB.First(&test, input.TestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Test not found")
		}
		return utils.ServerError(c, err)
	}

	var existing models.Submission
	err = sc.DB.Where("test_id = ? AND student_id = ?", input.TestID, input.StudentID).
		First(&existing).Error
	if err == nil {
		return utils.BadRequest(c, "This student already submitted the test")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ServerError(c, err)
	}

	submission := models.Submission{
		TestID:       input.TestID,
		StudentID:    input.StudentID,
		FacultyID:    input.FacultyID,
		SubmittedAns: input.SubmittedAns,
	}

	// The submission row and the test's submitted_by list move together.
	err = sc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&submission).Error; err != nil {
			return err
		}
		test.SubmittedBy = append(test.SubmittedBy, input.StudentID)
		return tx.Model(&test).Update("submitted_by", test.SubmittedBy).Error
	})
	if err != nil {
		return utils.ServerError(c, err)
	}

	return c.JSON(submission)
}

// EvaluateSubmission marks a submission evaluated by its faculty. It
// does not compute a score; scores are recorded separately against the
// student.
func (sc *SubmissionController) EvaluateSubmission(c *fiber.Ctx) error {
	claims, err := utils.ExtractClaims(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	if claims.IsStudent {
		return utils.Unauthorized(c, "Unauthorized action")
	}

	var input struct {
		FacultyID uint `json:"faculty_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.FacultyID == 0 {
		return utils.BadRequest(c, "faculty_id is required")
	}

	var submission models.Submission
	if err := sc.DB.First(&submission, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.BadRequest(c, "Submission not found")
		}
		return utils.ServerError(c, err)
	}
	if submission.FacultyID != input.FacultyID {
		return utils.Unauthorized(c, "Submission can't be evaluated by this faculty")
	}

	if err := sc.DB.Model(&submission).Update("is_evaluated", true).Error; err != nil {
		return utils.ServerError(c, err)
	}
	return c.JSON(fiber.Map{"msg": "Submission evaluated"})
}
