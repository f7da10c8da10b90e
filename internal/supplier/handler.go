package supplier

import (
	"errors"
	"math"
	"strings"

	"bascula-backend/internal/database"
	"bascula-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// -------------------------
// Request/Response Types
// -------------------------

type CreateSupplierRequest struct {
	Name           string `json:"name"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Representative string `json:"representative"`
}

type UpdateSupplierRequest struct {
	Name           *string `json:"name"`
	Address        *string `json:"address"`
	Phone          *string `json:"phone"`
	Representative *string `json:"representative"`
}

type SupplierResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Representative string `json:"representative"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

type SupplierListResponse struct {
	Data       []SupplierResponse `json:"data"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}

// -------------------------
// Supplier CRUD
// -------------------------

// POST /api/suppliers
func CreateSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSupplierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if strings.TrimSpace(body.Name) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}

		supplier := models.Supplier{
			Name:           strings.TrimSpace(body.Name),
			Address:        strings.TrimSpace(body.Address),
			Phone:          strings.TrimSpace(body.Phone),
			Representative: strings.TrimSpace(body.Representative),
		}

		if err := database.DB.Create(&supplier).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create supplier")
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(&supplier))
	}
}

// GET /api/suppliers?page=&page_size=&search=
func ListSuppliersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := c.QueryInt("page", 1)
		if page < 1 {
			page = 1
		}
		pageSize := c.QueryInt("page_size", 10)
		if pageSize < 1 || pageSize > 100 {
			pageSize = 10
		}

		query := database.DB.Model(&models.Supplier{})
		if search := c.Query("search"); search != "" {
			pattern := "%" + search + "%"
			query = query.Where("(name ILIKE ? OR representative ILIKE ?)", pattern, pattern)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not count suppliers")
		}

		var suppliers []models.Supplier
		if err := query.Order("name ASC").
			Offset((page - 1) * pageSize).
			Limit(pageSize).
			Find(&suppliers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list suppliers")
		}

		data := make([]SupplierResponse, 0, len(suppliers))
		for i := range suppliers {
			data = append(data, toResponse(&suppliers[i]))
		}

		return c.JSON(SupplierListResponse{
			Data:       data,
			Total:      total,
			Page:       page,
			PageSize:   pageSize,
			TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
		})
	}
}

// GET /api/suppliers/:id
func GetSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		supplier, err := findSupplier(c)
		if err != nil {
			return err
		}
		return c.JSON(toResponse(supplier))
	}
}

// PUT /api/suppliers/:id
func UpdateSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		supplier, err := findSupplier(c)
		if err != nil {
			return err
		}

		var body UpdateSupplierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			if strings.TrimSpace(*body.Name) == "" {
				return fiber.NewError(fiber.StatusBadRequest, "name cannot be empty")
			}
			supplier.Name = strings.TrimSpace(*body.Name)
		}
		if body.Address != nil {
			supplier.Address = strings.TrimSpace(*body.Address)
		}
		if body.Phone != nil {
			supplier.Phone = strings.TrimSpace(*body.Phone)
		}
		if body.Representative != nil {
			supplier.Representative = strings.TrimSpace(*body.Representative)
		}

		if err := database.DB.Save(supplier).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update supplier")
		}

		return c.JSON(toResponse(supplier))
	}
}

// DELETE /api/suppliers/:id
func DeleteSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		supplier, err := findSupplier(c)
		if err != nil {
			return err
		}

		var reportCount int64
		database.DB.Model(&models.Report{}).
			Where("supplier_id = ?", supplier.ID).
			Count(&reportCount)
		if reportCount > 0 {
			return fiber.NewError(fiber.StatusConflict, "Supplier has reports and cannot be deleted")
		}

		if err := database.DB.Delete(supplier).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete supplier")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}

func findSupplier(c *fiber.Ctx) (*models.Supplier, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Supplier id is not valid")
	}

	var supplier models.Supplier
	if err := database.DB.First(&supplier, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Supplier not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not load supplier")
	}
	return &supplier, nil
}

func toResponse(s *models.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:             s.ID.String(),
		Name:           s.Name,
		Address:        s.Address,
		Phone:          s.Phone,
		Representative: s.Representative,
		CreatedAt:      s.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:      s.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
