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

type BatchController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewBatchController(db *gorm.DB, cfg *config.Config) *BatchController {
	return &BatchController{DB: db, Cfg: cfg}
}

// GetBatches returns all batches, newest first. Public.
func (bc *BatchController) GetBatches(c *fiber.Ctx) error {
	var batches []models.Batch
	if err := bc.DB.Preload("Students").Preload("Students.Scores").
		Preload("Faculties").Order("created_at DESC").
		Find(&batches).Error; err != nil {
		return utils.ServerError(c, err)
	}
	return c.JSON(batches)
}

func (bc *BatchController) GetBatch(c *fiber.Ctx) error {
	var batch models.Batch
	if err := bc.DB.Preload("Students").Preload("Students.Scores").
		Preload("Faculties").First(&batch, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Batch not found")
		}
		return utils.ServerError(c, err)
	}
	return c.JSON(batch)
}

func (bc *BatchController) CreateBatch(c *fiber.Ctx) error {
	claims, err := utils.ExtractClaims(c, bc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	if claims.IsStudent {
		return utils.Unauthorized(c, "Unauthorized action")
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Name == "" {
		return utils.BadRequest(c, "Batch name is required")
	}

	var existing models.Batch
	if err := bc.DB.Where("name = ?", input.Name).First(&existing).Error; err == nil {
		return utils.BadRequest(c, "Batch already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ServerError(c, err)
	}

	batch := models.Batch{Name: input.Name}
	if err := bc.DB.Create(&batch).Error; err != nil {
		return utils.ServerError(c, err)
	}
	return c.JSON(batch)
}

func (bc *BatchController) UpdateBatch(c *fiber.Ctx) error {
	claims, err := utils.ExtractClaims(c, bc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	if claims.IsStudent {
		return utils.Unauthorized(c, "Unauthorized action")
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Name == "" {
		return utils.BadRequest(c, "Batch name is required")
	}

	var batch models.Batch
	if err := bc.DB.First(&batch, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Batch not found")
		}
		return utils.ServerError(c, err)
	}

	batch.Name = input.Name
	if err := bc.DB.Save(&batch).Error; err != nil {
		return utils.ServerError(c, err)
	}
	return c.JSON(batch)
}

// DeleteBatch removes a batch. There is no cascade: students and
// faculties that referenced it keep dangling ids.
func (bc *BatchController) DeleteBatch(c *fiber.Ctx) error {
	claims, err := utils.ExtractClaims(c, bc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	if claims.IsStudent {
		return utils.Unauthorized(c, "Unauthorized action")
	}

	var batch models.Batch
	if err := bc.DB.First(&batch, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.BadRequest(c, "Batch not found")
		}
		return utils.ServerError(c, err)
	}

	if err := bc.DB.Delete(&batch).Error; err != nil {
		return utils.ServerError(c, err)
	}
	return c.JSON(fiber.Map{"msg": "Batch removed"})
}

// AssignFaculty links a faculty to a batch. Both directions live in the
// shared batch_faculties join table, so the link is one transactional
// write and the symmetry invariant cannot be half-applied.
func (bc *BatchController) AssignFaculty(c *fiber.Ctx) error {
	claims, err := utils.ExtractClaims(c, bc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	if claims.IsStudent {
		return utils.Unauthorized(c, "Unauthorized action")
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Name == "" {
		return utils.BadRequest(c, "Batch name is required")
	}

	var batch models.Batch
	if err := bc.DB.Preload("Faculties").Where("name = ?", input.Name).First(&batch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Batch not found")
		}
		return utils.ServerError(c, err)
	}

	var faculty models.Faculty
	if err := bc.DB.Preload("AssignedBatches").First(&faculty, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Faculty not found")
		}
		return utils.ServerError(c, err)
	}

	if batch.HasFaculty(faculty.ID) {
		return utils.BadRequest(c, "Faculty already exists in this batch")
	}
	if faculty.HasBatch(batch.ID) {
		return utils.BadRequest(c, "Batch already assigned to this faculty")
	}

	err = bc.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&batch).Association("Faculties").Append(&models.Faculty{ID: faculty.ID})
	})
	if err != nil {
		return utils.ServerError(c, err)
	}

	return c.JSON(fiber.Map{
		"msg": fmt.Sprintf("Added faculty to batch %s & updated faculty's batch list", input.Name),
	})
}

// UnassignFaculty removes the batch<->faculty link; the shared join
// table keeps the removal symmetric.
func (bc *BatchController) UnassignFaculty(c *fiber.Ctx) error {
	claims, err := utils.ExtractClaims(c, bc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}
	if claims.IsStudent {
		return utils.Unauthorized(c, "Unauthorized action")
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Name == "" {
		return utils.BadRequest(c, "Batch name is required")
	}

	var batch models.Batch
	if err := bc.DB.Preload("Faculties").Where("name = ?", input.Name).First(&batch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Batch not found")
		}
		return utils.ServerError(c, err)
	}

	var faculty models.Faculty
	if err := bc.DB.Preload("AssignedBatches").First(&faculty, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Faculty not found")
		}
		return utils.ServerError(c, err)
	}

	if !batch.HasFaculty(faculty.ID) {
		return utils.NotFound(c, "Faculty doesn't exists in this batch list")
	}
	if !faculty.HasBatch(batch.ID) {
		return utils.NotFound(c, "Batch doesn't exists in this faculty's list")
	}

	err = bc.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&batch).Association("Faculties").Delete(&models.Faculty{ID: faculty.ID})
	})
	if err != nil {
		return utils.ServerError(c, err)
	}

	return c.JSON(fiber.Map{
		"msg": "Removed faculty from the batch's faculty list and this batch from faculty's batch list",
	})
}
