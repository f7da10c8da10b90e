package sysconfig

import (
	"errors"

	"bascula-backend/internal/database"
	"bascula-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DefaultExtraPercentage seeds the config row the first time anyone reads it.
const DefaultExtraPercentage = 5.0

type UpdateConfigRequest struct {
	ExtraPercentage float64 `json:"extra_percentage"`
}

type ConfigResponse struct {
	ID              string  `json:"id"`
	ExtraPercentage float64 `json:"extra_percentage"`
	UpdatedAt       string  `json:"updated_at"`
}

// Current returns the system configuration, creating the row with defaults on
// first read. Runs inside the caller's transaction when one is given.
func Current(db *gorm.DB) (*models.SystemConfig, error) {
	var cfg models.SystemConfig
	err := db.Order("updated_at DESC").First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cfg = models.SystemConfig{ExtraPercentage: DefaultExtraPercentage}
		if err := db.Create(&cfg).Error; err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// CurrentExtraPercentage: the snapshot new reports take at creation time.
func CurrentExtraPercentage(db *gorm.DB) (float64, error) {
	cfg, err := Current(db)
	if err != nil {
		return 0, err
	}
	return cfg.ExtraPercentage, nil
}

// GET /api/config
func GetConfigHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cfg, err := Current(database.DB)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load system configuration")
		}
		return c.JSON(toResponse(cfg))
	}
}

// PUT /api/config (admin only)
func UpdateConfigHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpdateConfigRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.ExtraPercentage < 0 || body.ExtraPercentage > 100 {
			return fiber.NewError(fiber.StatusBadRequest, "extra_percentage must be between 0 and 100")
		}

		cfg, err := Current(database.DB)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load system configuration")
		}

		cfg.ExtraPercentage = body.ExtraPercentage
		if err := database.DB.Save(cfg).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update system configuration")
		}

		return c.JSON(toResponse(cfg))
	}
}

func toResponse(cfg *models.SystemConfig) ConfigResponse {
	return ConfigResponse{
		ID:              cfg.ID.String(),
		ExtraPercentage: cfg.ExtraPercentage,
		UpdatedAt:       cfg.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
