package report

import (
	"fmt"
	"time"

	"bascula-backend/internal/database"
	"bascula-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var exportHeaders = []interface{}{
	"Ticket No", "Date", "Plate", "Driver", "Supplier",
	"Gross (lb)", "Tare (lb)", "Net (lb)",
	"Product", "Item Weight", "Unit", "Quintals", "Price/qq", "Line Total",
	"Report Total", "State", "Issued By",
}

// GET /api/reports/export/excel
// Same filters as the list endpoint, without pagination. One row per item;
// report-level columns only on the first row of each report.
func ExportReportsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var reports []models.Report
		query := applyReportFilters(c, database.DB.Model(&models.Report{})).
			Distinct("reports.*").
			Preload("Supplier").
			Preload("User").
			Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
			Preload("Items.Product").
			Order("reports.report_date DESC, reports.created_at DESC")
		if err := query.Find(&reports).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load reports for export")
		}

		f := excelize.NewFile()
		defer f.Close()

		const sheet = "Reports"
		f.SetSheetName("Sheet1", sheet)

		if err := f.SetSheetRow(sheet, "A1", &exportHeaders); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build export")
		}
		headerStyle, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"667EEA"}},
			Alignment: &excelize.Alignment{
				Horizontal: "center",
				Vertical:   "center",
			},
		})
		if err == nil {
			_ = f.SetCellStyle(sheet, "A1", "Q1", headerStyle)
		}
		_ = f.SetColWidth(sheet, "A", "Q", 16)

		row := 2
		for i := range reports {
			rep := &reports[i]
			if len(rep.Items) == 0 {
				writeRow(f, sheet, row,
					reportColumns(rep),
					[]interface{}{"No items", "", "", "", "", ""},
					trailingColumns(rep))
				row++
				continue
			}
			for j := range rep.Items {
				item := &rep.Items[j]
				cols := reportColumns(rep)
				trailing := trailingColumns(rep)
				if j > 0 {
					// Report-level columns only on the first row of each report.
					cols = blankColumns(len(cols))
					trailing = blankColumns(len(trailing))
				}
				writeRow(f, sheet, row, cols, []interface{}{
					item.Product.Name,
					item.Weight,
					string(item.WeightUnit),
					item.WeightInQuintals,
					item.PricePerQuintal,
					item.BasePrice,
				}, trailing)
				row++
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not write export file")
		}

		filename := fmt.Sprintf("reports-%s.xlsx", time.Now().Format("2006-01-02"))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
		return c.Send(buf.Bytes())
	}
}

func reportColumns(rep *models.Report) []interface{} {
	return []interface{}{
		rep.TicketNumber,
		rep.ReportDate.Format("2006-01-02"),
		rep.PlateNumber,
		rep.DriverName,
		rep.Supplier.Name,
		rep.GrossWeight,
		rep.TareWeight,
		rep.NetWeight,
	}
}

func blankColumns(n int) []interface{} {
	cols := make([]interface{}, n)
	for i := range cols {
		cols[i] = ""
	}
	return cols
}

func trailingColumns(rep *models.Report) []interface{} {
	return []interface{}{
		rep.TotalPrice,
		string(rep.State),
		rep.User.FirstName + " " + rep.User.LastName,
	}
}

func writeRow(f *excelize.File, sheet string, row int, reportCols, itemCols, trailingCols []interface{}) {
	cells := make([]interface{}, 0, len(exportHeaders))
	cells = append(cells, reportCols...)
	cells = append(cells, itemCols...)
	cells = append(cells, trailingCols...)
	_ = f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &cells)
}
