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

type TestController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewTestController(db *gorm.DB, cfg *config.Config) *TestController {
	return &TestController{DB: db, Cfg: cfg}
}

type testInput struct {
	FacultyID   uint                  `json:"faculty_id"`
	BatchID     uint                  `json:"batch_id"`
	TestDetails models.TestDetails    `json:"test_details"`
	Questions   []models.TestQuestion `json:"questions"`
	Answers     []models.TestAnswer   `json:"answers"`
}

func (in *testInput) validate() error {
	if in.FacultyID == 0 {
		return errors.New("faculty_id is required")
	}
	if in.BatchID == 0 {
		return errors.New("batch_id is required")
	}
	if in.TestDetails.Name == "" || in.TestDetails.Subject == "" || in.TestDetails.Marks == 0 {
		return errors.New("Test details are required")
	}
	if len(in.Questions) == 0 {
		return errors.New("Questions are required")
	}
	if len(in.Answers) == 0 {
		return errors.New("Answers are required")
	}
	for _, a := range in.Answers {
		if a.Ans < 1 || a.Ans > 4 {
			return fmt.Errorf("answer for question %d must be between 1 and 4", a.QsnNo)
		}
	}
	return nil
}

// GetTests lists tests, newest first. Faculties see every test with its
// answer key. Students must pass a batch_id and get only that batch's
// confirmed tests, projected without answers.
func (tc *TestController) GetTests(c *fiber.Ctx) error {
	claims, err := utils.ExtractClaims(c, tc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	if claims.IsStudent {
		batchID := c.Query("batch_id")
		if batchID == "" {
			return utils.BadRequest(c, "Batch id is required")
		}

		var tests []models.Test
		if err := tc.DB.Preload("Questions").
			Where("batch_id = ? AND is_confirmed = ?", batchID, true).
			Order("created_at DESC").Find(&tests).Error; err != nil {
			return utils.ServerError(c, err)
		}

		views := make([]models.StudentTestView, 0, len(tests))
		for i := range tests {
			views = append(views, tests[i].ForStudent())
		}
		return c.JSON(views)
	}

	var tests []models.Test
	if err := tc.DB.Preload("Questions").Preload("Answers").
		Order("created_at DESC").Find(&tests).Error; err != nil {
		return utils.ServerError(c, err)
	}
	return c.JSON(tests)
}

func (tc *TestController) CreateTest(c *fiber.Ctx) error {
	claims, err := utils.ExtractClaims(c, tc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	if claims.IsStudent {
		return utils.Unauthorized(c, "Unauthorized action")
	}

	var input testInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := input.validate(); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var batch models.Batch
	if err := tc.DB.First(&batch, input.BatchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Batch not found")
		}
		return utils.ServerError(c, err)
	}

	test := models.Test{
		FacultyID:   input.FacultyID,
		BatchID:     input.BatchID,
		TestDetails: input.TestDetails,
		Questions:   input.Questions,
		Answers:     input.Answers,
	}
	if err := tc.DB.Create(&test).Error; err != nil {
		return utils.ServerError(c, err)
	}
	return c.JSON(test)
}

// UpdateTest replaces the whole test, questions and answers included.
// Only the owning faculty may edit it.
func (tc *TestController) UpdateTest(c *fiber.Ctx) error {
	claims, err := utils.ExtractClaims(c, tc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	if claims.IsStudent {
		return utils.Unauthorized(c, "Unauthorized action")
	}

	var input testInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := input.validate(); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	var test models.Test
	if err := tc.DB.First(&test, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Test not found")
		}
		return utils.ServerError(c, err)
	}
	if test.FacultyID != input.FacultyID {
		return utils.Unauthorized(c, "Test can't be updated by this faculty")
	}

	err = tc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("test_id = ?", test.ID).Delete(&models.TestQuestion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("test_id = ?", test.ID).Delete(&models.TestAnswer{}).Error; err != nil {
			return err
		}
		test.BatchID = input.BatchID
		test.TestDetails = input.TestDetails
		test.Questions = input.Questions
		test.Answers = input.Answers
		return tx.Save(&test).Error
	})
	if err != nil {
		return utils.ServerError(c, err)
	}
	return c.JSON(test)
}

// DeleteTest hard-deletes a test and its questions and answers. The
// owning faculty check applies here the same as on update, confirm and
// dismiss.
func (tc *TestController) DeleteTest(c *fiber.Ctx) error {
	claims, err := utils.ExtractClaims(c, tc.Cfg)
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

	var test models.Test
	if err := tc.DB.First(&test, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.BadRequest(c, "Test not found")
		}
		return utils.ServerError(c, err)
	}
	if test.FacultyID != input.FacultyID {
		return utils.Unauthorized(c, "Test can't be removed by this faculty")
	}

	err = tc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("test_id = ?", test.ID).Delete(&models.TestQuestion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("test_id = ?", test.ID).Delete(&models.TestAnswer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&test).Error
	})
	if err != nil {
		return utils.ServerError(c, err)
	}

	return c.JSON(fiber.Map{"msg": fmt.Sprintf("Removed %s", test.TestDetails.Name)})
}

// ConfirmTest makes the test visible to its batch's students and assigns
// it to each of them.
func (tc *TestController) ConfirmTest(c *fiber.Ctx) error {
	test, errResp := tc.ownedTest(c, "confirmed")
	if test == nil {
		return errResp
	}

	err := tc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(test).Update("is_confirmed", true).Error; err != nil {
			return err
		}

		var students []models.Student
		if err := tx.Where("batch_id = ?", test.BatchID).Find(&students).Error; err != nil {
			return err
		}
		for i := range students {
			if err := tx.Model(&students[i]).Association("AssignedTests").
				Append(&models.Test{ID: test.ID}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return utils.ServerError(c, err)
	}

	return c.JSON(fiber.Map{"msg": "Test confirmed, now students can see the test"})
}

// DismissTest marks the test completed. No further effect is attached to
// the flag; submissions and scoring are not gated on it.
func (tc *TestController) DismissTest(c *fiber.Ctx) error {
	test, errResp := tc.ownedTest(c, "dismissed")
	if test == nil {
		return errResp
	}

	if err := tc.DB.Model(test).Update("is_completed", true).Error; err != nil {
		return utils.ServerError(c, err)
	}
	return c.JSON(fiber.Map{"msg": "Test dismissed"})
}

// ownedTest loads the test in :id and enforces that the caller is a
// faculty and that the faculty_id in the body owns it. On failure the
// returned test is nil and the error is the already-written response;
// action names the attempted operation in the rejection message.
func (tc *TestController) ownedTest(c *fiber.Ctx, action string) (*models.Test, error) {
	claims, err := utils.ExtractClaims(c, tc.Cfg)
	if err != nil {
		return nil, utils.Unauthorized(c, "Unauthorized")
	}
	if claims.IsStudent {
		return nil, utils.Unauthorized(c, "Unauthorized action")
	}

	var input struct {
		FacultyID uint `json:"faculty_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return nil, utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.FacultyID == 0 {
		return nil, utils.BadRequest(c, "faculty_id is required")
	}

	var test models.Test
	if err := tc.DB.First(&test, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.BadRequest(c, "Test not found")
		}
		return nil, utils.ServerError(c, err)
	}
	if test.FacultyID != input.FacultyID {
		return nil, utils.Unauthorized(c, fmt.Sprintf("Test can't be %s by this faculty", action))
	}

	return &test, nil
}
