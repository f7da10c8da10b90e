package report

import (
	"errors"
	"math"
	"time"

	"bascula-backend/internal/auth"
	"bascula-backend/internal/database"
	"bascula-backend/internal/models"
	"bascula-backend/internal/sysconfig"
	"bascula-backend/internal/weighing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// -------------------------
// Request/Response Types
// -------------------------

type CreateReportRequest struct {
	ReportDate  string   `json:"report_date"` // "2025-11-30"
	PlateNumber string   `json:"plate_number"`
	SupplierID  string   `json:"supplier_id"`
	GrossWeight float64  `json:"gross_weight"` // pounds
	TareWeight  *float64 `json:"tare_weight"`  // optional at creation
	DriverName  string   `json:"driver_name"`
}

type AddItemRequest struct {
	ProductID      string  `json:"product_id"`
	Weight         float64 `json:"weight"`
	WeightUnit     string  `json:"weight_unit"`
	DiscountWeight float64 `json:"discount_weight"` // fixed quintal deduction, optional
}

type FinishReportRequest struct {
	TareWeight float64 `json:"tare_weight"`
}

type ReportItemResponse struct {
	ID               string  `json:"id"`
	ProductID        string  `json:"product_id"`
	ProductName      string  `json:"product_name"`
	Weight           float64 `json:"weight"`
	WeightUnit       string  `json:"weight_unit"`
	DiscountWeight   float64 `json:"discount_weight"`
	WeightInQuintals float64 `json:"weight_in_quintals"`
	PricePerQuintal  float64 `json:"price_per_quintal"`
	BasePrice        float64 `json:"base_price"`
	CreatedAt        string  `json:"created_at"`
}

type SupplierRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type UserRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ReportResponse struct {
	ID              string               `json:"id"`
	TicketNumber    string               `json:"ticket_number"`
	ReportDate      string               `json:"report_date"`
	PlateNumber     string               `json:"plate_number"`
	DriverName      string               `json:"driver_name"`
	Supplier        SupplierRef          `json:"supplier"`
	User            UserRef              `json:"user"`
	GrossWeight     float64              `json:"gross_weight"`
	TareWeight      float64              `json:"tare_weight"`
	NetWeight       float64              `json:"net_weight"`
	ExtraPercentage float64              `json:"extra_percentage"`
	BasePrice       float64              `json:"base_price"`
	TotalPrice      float64              `json:"total_price"`
	State           string               `json:"state"`
	Items           []ReportItemResponse `json:"items"`
	CreatedAt       string               `json:"created_at"`
	UpdatedAt       string               `json:"updated_at"`
}

type ReportListResponse struct {
	Data       []ReportResponse `json:"data"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

// -------------------------
// Handlers
// -------------------------

// POST /api/reports
func CreateReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateReportRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		reportDate, err := time.Parse("2006-01-02", body.ReportDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "report_date must be in YYYY-MM-DD format")
		}
		if body.PlateNumber == "" || body.DriverName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "plate_number and driver_name are required")
		}
		if body.GrossWeight <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "gross_weight must be greater than zero")
		}
		supplierID, err := uuid.Parse(body.SupplierID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "supplier_id is not a valid id")
		}
		if body.TareWeight != nil {
			if *body.TareWeight <= 0 || *body.TareWeight >= body.GrossWeight {
				return fiber.NewError(fiber.StatusConflict, ErrInvalidTare.Error())
			}
		}

		userID, err := auth.UserIDFromContext(c)
		if err != nil {
			return err
		}

		var supplier models.Supplier
		if err := database.DB.First(&supplier, "id = ?", supplierID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Supplier not found")
		}

		var created models.Report
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			ticket, err := nextTicketNumber(tx)
			if err != nil {
				return err
			}
			extra, err := sysconfig.CurrentExtraPercentage(tx)
			if err != nil {
				return err
			}

			rep := models.Report{
				TicketNumber:    ticket,
				ReportDate:      reportDate,
				PlateNumber:     body.PlateNumber,
				DriverName:      body.DriverName,
				SupplierID:      supplier.ID,
				UserID:          userID,
				GrossWeight:     body.GrossWeight,
				ExtraPercentage: extra,
				State:           models.ReportPending,
			}
			if body.TareWeight != nil {
				rep.TareWeight = *body.TareWeight
				rep.NetWeight = weighing.Round2(rep.GrossWeight - rep.TareWeight)
			}

			if err := tx.Create(&rep).Error; err != nil {
				return err
			}
			created = rep
			return nil
		})
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				return e
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create report")
		}

		full, err := loadReport(database.DB, created.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load created report")
		}
		return c.Status(fiber.StatusCreated).JSON(toReportResponse(full))
	}
}

// GET /api/reports
func ListReportsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := c.QueryInt("page", 1)
		if page < 1 {
			page = 1
		}
		pageSize := c.QueryInt("page_size", 10)
		if pageSize < 1 || pageSize > 100 {
			pageSize = 10
		}

		var total int64
		countQuery := applyReportFilters(c, database.DB.Model(&models.Report{}))
		if err := countQuery.Distinct("reports.id").Count(&total).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not count reports")
		}

		var reports []models.Report
		query := applyReportFilters(c, database.DB.Model(&models.Report{})).
			Distinct("reports.*").
			Preload("Supplier").
			Preload("User").
			Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
			Preload("Items.Product").
			Order("reports.report_date DESC, reports.created_at DESC").
			Offset((page - 1) * pageSize).
			Limit(pageSize)
		if err := query.Find(&reports).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list reports")
		}

		data := make([]ReportResponse, 0, len(reports))
		for i := range reports {
			data = append(data, toReportResponse(&reports[i]))
		}

		return c.JSON(ReportListResponse{
			Data:       data,
			Total:      total,
			Page:       page,
			PageSize:   pageSize,
			TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
		})
	}
}

// GET /api/reports/:id
func GetReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Report id is not valid")
		}

		rep, err := loadReport(database.DB, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Report not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load report")
		}
		return c.JSON(toReportResponse(rep))
	}
}

// POST /api/reports/:id/items
func AddItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Report id is not valid")
		}

		var body AddItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		productID, err := uuid.Parse(body.ProductID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "product_id is not a valid id")
		}
		if body.Weight <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "weight must be greater than zero")
		}
		if body.DiscountWeight < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "discount_weight cannot be negative")
		}
		unit, err := weighing.ParseUnit(body.WeightUnit)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "weight_unit must be one of quintals, pounds, kilograms, tons")
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			rep, err := lockReport(tx, id)
			if err != nil {
				return err
			}

			var product models.Product
			if err := tx.First(&product, "id = ?", productID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusNotFound, "Product not found")
				}
				return err
			}

			item, err := computeAddItem(rep, &product, body.Weight, unit, body.DiscountWeight)
			if err != nil {
				return engineError(err)
			}

			if err := tx.Create(item).Error; err != nil {
				return err
			}
			return tx.Model(&models.Report{}).
				Where("id = ?", rep.ID).
				Update("updated_at", time.Now()).Error
		})
		if err != nil {
			return httpError(err, "Could not add item to report")
		}

		full, err := loadReport(database.DB, id)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load report")
		}
		return c.Status(fiber.StatusCreated).JSON(toReportResponse(full))
	}
}

// PATCH /api/reports/:id/finish
func FinishReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Report id is not valid")
		}

		var body FinishReportRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			rep, err := lockReport(tx, id)
			if err != nil {
				return err
			}

			if err := computeFinish(rep, body.TareWeight); err != nil {
				return engineError(err)
			}

			for i := range rep.Items {
				item := &rep.Items[i]
				if err := tx.Model(&models.ReportItem{}).
					Where("id = ?", item.ID).
					Updates(map[string]interface{}{
						"weight_in_quintals": item.WeightInQuintals,
						"base_price":         item.BasePrice,
					}).Error; err != nil {
					return err
				}
			}

			return tx.Model(&models.Report{}).
				Where("id = ?", rep.ID).
				Updates(map[string]interface{}{
					"tare_weight": rep.TareWeight,
					"net_weight":  rep.NetWeight,
					"base_price":  rep.BasePrice,
					"total_price": rep.TotalPrice,
					"state":       rep.State,
					"updated_at":  time.Now(),
				}).Error
		})
		if err != nil {
			return httpError(err, "Could not finish report")
		}

		full, err := loadReport(database.DB, id)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load report")
		}
		return c.JSON(toReportResponse(full))
	}
}

// PATCH /api/reports/:id/cancel (admin only)
func CancelReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Report id is not valid")
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			rep, err := lockReport(tx, id)
			if err != nil {
				return err
			}

			if err := computeCancel(rep); err != nil {
				return engineError(err)
			}

			return tx.Model(&models.Report{}).
				Where("id = ?", rep.ID).
				Update("state", rep.State).Error
		})
		if err != nil {
			return httpError(err, "Could not cancel report")
		}

		full, err := loadReport(database.DB, id)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load report")
		}
		return c.JSON(toReportResponse(full))
	}
}

// -------------------------
// Helpers
// -------------------------

// lockReport reads the report and its items under a FOR UPDATE row lock so
// the whole read-validate-write block is serialized per report.
func lockReport(tx *gorm.DB, id uuid.UUID) (*models.Report, error) {
	var rep models.Report
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&rep, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Report not found")
		}
		return nil, err
	}
	if err := tx.Where("report_id = ?", rep.ID).
		Order("created_at ASC").
		Find(&rep.Items).Error; err != nil {
		return nil, err
	}
	return &rep, nil
}

func loadReport(db *gorm.DB, id uuid.UUID) (*models.Report, error) {
	var rep models.Report
	err := db.Preload("Supplier").
		Preload("User").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Items.Product").
		First(&rep, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

func applyReportFilters(c *fiber.Ctx, q *gorm.DB) *gorm.DB {
	if start, end := c.Query("start_date"), c.Query("end_date"); start != "" && end != "" {
		q = q.Where("reports.report_date BETWEEN ? AND ?", start, end)
	}
	if sid := c.Query("supplier_id"); sid != "" {
		q = q.Where("reports.supplier_id = ?", sid)
	}
	if pid := c.Query("product_id"); pid != "" {
		q = q.Joins("JOIN report_items ON report_items.report_id = reports.id").
			Where("report_items.product_id = ?", pid)
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		q = q.Where("(reports.plate_number ILIKE ? OR reports.ticket_number ILIKE ? OR reports.driver_name ILIKE ?)",
			pattern, pattern, pattern)
	}
	return q
}

// engineError translates computation sentinels into transport errors:
// malformed input -> 400, lifecycle/capacity conflicts -> 409.
func engineError(err error) error {
	switch {
	case errors.Is(err, weighing.ErrInvalidUnit),
		errors.Is(err, weighing.ErrInvalidWeight):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, weighing.ErrInvalidEffectiveWeight),
		errors.Is(err, weighing.ErrCapacityExceeded),
		errors.Is(err, ErrNotPending),
		errors.Is(err, ErrCancelled),
		errors.Is(err, ErrInvalidTare):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}
	return err
}

func httpError(err error, fallback string) error {
	if e, ok := err.(*fiber.Error); ok {
		return e
	}
	return fiber.NewError(fiber.StatusInternalServerError, fallback)
}

func toReportResponse(r *models.Report) ReportResponse {
	items := make([]ReportItemResponse, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, ReportItemResponse{
			ID:               item.ID.String(),
			ProductID:        item.ProductID.String(),
			ProductName:      item.Product.Name,
			Weight:           item.Weight,
			WeightUnit:       string(item.WeightUnit),
			DiscountWeight:   item.DiscountWeight,
			WeightInQuintals: item.WeightInQuintals,
			PricePerQuintal:  item.PricePerQuintal,
			BasePrice:        item.BasePrice,
			CreatedAt:        item.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	return ReportResponse{
		ID:           r.ID.String(),
		TicketNumber: r.TicketNumber,
		ReportDate:   r.ReportDate.Format("2006-01-02"),
		PlateNumber:  r.PlateNumber,
		DriverName:   r.DriverName,
		Supplier: SupplierRef{
			ID:   r.SupplierID.String(),
			Name: r.Supplier.Name,
		},
		User: UserRef{
			ID:   r.UserID.String(),
			Name: r.User.FirstName + " " + r.User.LastName,
		},
		GrossWeight:     r.GrossWeight,
		TareWeight:      r.TareWeight,
		NetWeight:       r.NetWeight,
		ExtraPercentage: r.ExtraPercentage,
		BasePrice:       r.BasePrice,
		TotalPrice:      r.TotalPrice,
		State:           string(r.State),
		Items:           items,
		CreatedAt:       r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:       r.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
