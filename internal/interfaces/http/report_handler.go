package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/beanshub/roastery-api/internal/application/dto"
	"github.com/beanshub/roastery-api/internal/application/sales"
	"github.com/beanshub/roastery-api/internal/domain/entity"
	"github.com/beanshub/roastery-api/internal/infrastructure/pdf"
)

// ReportHandler genera reportes descargables.
type ReportHandler struct {
	salesUC   *sales.UseCase
	generator *pdf.SalesReportGenerator
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(salesUC *sales.UseCase, generator *pdf.SalesReportGenerator) *ReportHandler {
	return &ReportHandler{salesUC: salesUC, generator: generator}
}

// SalesReport godoc
// @Summary      Reporte de ventas en PDF
// @Tags         reports
// @Produce      application/pdf
// @Param        from  query  string  false  "fecha inicial (YYYY-MM-DD)"
// @Param        to    query  string  false  "fecha final (YYYY-MM-DD)"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) SalesReport(c *fiber.Ctx) error {
	from, to, err := parseRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	filtered := make([]entity.Sale, 0)
	for _, s := range h.salesUC.ListSales() {
		if !from.IsZero() && s.SaleDate.Before(from) {
			continue
		}
		if !to.IsZero() && !s.SaleDate.Before(to.AddDate(0, 0, 1)) {
			continue
		}
		filtered = append(filtered, s)
	}

	period := "todas las ventas"
	if !from.IsZero() || !to.IsZero() {
		period = fmt.Sprintf("%s a %s", orDash(from), orDash(to))
	}
	out, err := h.generator.Generate(filtered, period)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="laporan-penjualan.pdf"`)
	return c.Send(out)
}

func parseRange(fromStr, toStr string) (from, to time.Time, err error) {
	if fromStr != "" {
		if from, err = time.Parse("2006-01-02", fromStr); err != nil {
			return from, to, fmt.Errorf("from inválido, se espera YYYY-MM-DD")
		}
	}
	if toStr != "" {
		if to, err = time.Parse("2006-01-02", toStr); err != nil {
			return from, to, fmt.Errorf("to inválido, se espera YYYY-MM-DD")
		}
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return from, to, fmt.Errorf("to no puede ser anterior a from")
	}
	return from, to, nil
}

func orDash(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("02/01/2006")
}
