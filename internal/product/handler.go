package product

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

type CreateProductRequest struct {
	Name            string  `json:"name"`
	PricePerQuintal float64 `json:"price_per_quintal"`
}

type UpdateProductRequest struct {
	Name            *string  `json:"name"`
	PricePerQuintal *float64 `json:"price_per_quintal"`
}

type ProductResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	PricePerQuintal float64 `json:"price_per_quintal"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

type ProductListResponse struct {
	Data       []ProductResponse `json:"data"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// POST /api/products (admin only)
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if strings.TrimSpace(body.Name) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}
		if body.PricePerQuintal < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "price_per_quintal cannot be negative")
		}

		product := models.Product{
			Name:            strings.TrimSpace(body.Name),
			PricePerQuintal: body.PricePerQuintal,
		}

		if err := database.DB.Create(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "Could not create product, the name may already exist")
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(&product))
	}
}

// GET /api/products?page=&page_size=&search=
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := c.QueryInt("page", 1)
		if page < 1 {
			page = 1
		}
		pageSize := c.QueryInt("page_size", 10)
		if pageSize < 1 || pageSize > 100 {
			pageSize = 10
		}

		query := database.DB.Model(&models.Product{})
		if search := c.Query("search"); search != "" {
			query = query.Where("name ILIKE ?", "%"+search+"%")
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not count products")
		}

		var products []models.Product
		if err := query.Order("name ASC").
			Offset((page - 1) * pageSize).
			Limit(pageSize).
			Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list products")
		}

		data := make([]ProductResponse, 0, len(products))
		for i := range products {
			data = append(data, toResponse(&products[i]))
		}

		return c.JSON(ProductListResponse{
			Data:       data,
			Total:      total,
			Page:       page,
			PageSize:   pageSize,
			TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
		})
	}
}

// GET /api/products/:id
func GetProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		product, err := findProduct(c)
		if err != nil {
			return err
		}
		return c.JSON(toResponse(product))
	}
}

// PUT /api/products/:id (admin only)
// Price changes apply to future report items only; existing items keep the
// price they snapshotted.
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		product, err := findProduct(c)
		if err != nil {
			return err
		}

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			if strings.TrimSpace(*body.Name) == "" {
				return fiber.NewError(fiber.StatusBadRequest, "name cannot be empty")
			}
			product.Name = strings.TrimSpace(*body.Name)
		}
		if body.PricePerQuintal != nil {
			if *body.PricePerQuintal < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "price_per_quintal cannot be negative")
			}
			product.PricePerQuintal = *body.PricePerQuintal
		}

		if err := database.DB.Save(product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update product")
		}

		return c.JSON(toResponse(product))
	}
}

// DELETE /api/products/:id (admin only)
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		product, err := findProduct(c)
		if err != nil {
			return err
		}

		var itemCount int64
		database.DB.Model(&models.ReportItem{}).
			Where("product_id = ?", product.ID).
			Count(&itemCount)
		if itemCount > 0 {
			return fiber.NewError(fiber.StatusConflict, "Product is referenced by report items and cannot be deleted")
		}

		if err := database.DB.Delete(product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete product")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}

func findProduct(c *fiber.Ctx) (*models.Product, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Product id is not valid")
	}

	var product models.Product
	if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Product not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not load product")
	}
	return &product, nil
}

func toResponse(p *models.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID.String(),
		Name:            p.Name,
		PricePerQuintal: p.PricePerQuintal,
		CreatedAt:       p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:       p.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
