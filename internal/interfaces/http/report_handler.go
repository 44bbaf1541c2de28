package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/goods-trace/internal/application/dto"
	"github.com/tu-usuario/goods-trace/internal/application/usecase"
	"github.com/tu-usuario/goods-trace/internal/infrastructure/pdf"
)

// ReportHandler reportes analíticos del fabricante.
type ReportHandler struct {
	uc  *usecase.ReportUseCase
	pdf *pdf.RegionVolumesPDF
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(uc *usecase.ReportUseCase, pdfGen *pdf.RegionVolumesPDF) *ReportHandler {
	return &ReportHandler{uc: uc, pdf: pdfGen}
}

// ShopsManufacturer godoc
// @Summary      Top 5 puntos de venta con más retiros de circulación, por región
// @Tags         ml
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]report.IDCount
// @Router       /api/ml/shops_manufacturer [get]
func (h *ReportHandler) ShopsManufacturer(c *fiber.Ctx) error {
	out, err := h.uc.ShopsManufacturer(c.Context(), GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// VolumesManufacturer godoc
// @Summary      Unidades y facturación total del fabricante
// @Tags         ml
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  report.Volumes
// @Router       /api/ml/volumes_manufacturer [get]
func (h *ReportHandler) VolumesManufacturer(c *fiber.Ctx) error {
	out, err := h.uc.VolumesManufacturer(c.Context(), GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Map godoc
// @Summary      Heatmap de facturación y unidades por región, normalizado a [0,1]
// @Tags         map
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  report.MapPoint
// @Router       /api/map/get [get]
func (h *ReportHandler) Map(c *fiber.Ctx) error {
	out, err := h.uc.VolumesManufacturerRegion(c.Context(), GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// VolumesManufacturerPDF godoc
// @Summary      Heatmap regional como PDF descargable
// @Tags         ml
// @Produce      application/pdf
// @Security     BearerAuth
// @Success      200  {file}  binary
// @Router       /api/ml/volumes_manufacturer/pdf [get]
func (h *ReportHandler) VolumesManufacturerPDF(c *fiber.Ctx) error {
	points, err := h.uc.VolumesManufacturerRegion(c.Context(), GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	doc, err := h.pdf.Generate(GetUsername(c), points)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF_ERROR", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="volumes_manufacturer.pdf"`)
	return c.Send(doc)
}

// PopularOfflineGtinRegion godoc
// @Summary      GTIN más vendidos en tienda física, top 5 por región
// @Tags         ml
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]report.GtinCount
// @Router       /api/ml/popular_offline_gtin_manufacturer_region [get]
func (h *ReportHandler) PopularOfflineGtinRegion(c *fiber.Ctx) error {
	out, err := h.uc.PopularOfflineGtinManufacturerRegion(c.Context(), GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// PopularOfflineGtin godoc
// @Summary      GTIN más vendidos en tienda física, top 10
// @Tags         ml
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  report.GtinCount
// @Router       /api/ml/popular_offline_gtin_manufacturer [get]
func (h *ReportHandler) PopularOfflineGtin(c *fiber.Ctx) error {
	out, err := h.uc.PopularOfflineGtinManufacturer(c.Context(), GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// PopularOnlineGtin godoc
// @Summary      GTIN más vendidos a distancia, top 5
// @Tags         ml
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  report.GtinCount
// @Router       /api/ml/popular_online_gtin_manufacturer [get]
func (h *ReportHandler) PopularOnlineGtin(c *fiber.Ctx) error {
	out, err := h.uc.PopularOnlineGtinManufacturer(c.Context(), GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ShopsCountRegion godoc
// @Summary      Unidades vendidas por punto de venta, top 5 por región
// @Tags         ml
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]report.IDCount
// @Router       /api/ml/shops_manufacturer_count_region [get]
func (h *ReportHandler) ShopsCountRegion(c *fiber.Ctx) error {
	out, err := h.uc.ShopsManufacturerCountRegion(c.Context(), GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ShopsCount godoc
// @Summary      Unidades vendidas por punto de venta, top 5
// @Tags         ml
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  report.IDCount
// @Router       /api/ml/shops_manufacturer_count [get]
func (h *ReportHandler) ShopsCount(c *fiber.Ctx) error {
	out, err := h.uc.ShopsManufacturerCount(c.Context(), GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
