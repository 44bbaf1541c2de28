package http

import (
	"errors"
	"io/fs"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/goods-trace/internal/application/dto"
	"github.com/tu-usuario/goods-trace/internal/application/usecase"
)

// ForecastHandler pronósticos de ventas del fabricante y agregados.
type ForecastHandler struct {
	uc *usecase.ForecastUseCase
}

// NewForecastHandler construye el handler de pronósticos.
func NewForecastHandler(uc *usecase.ForecastUseCase) *ForecastHandler {
	return &ForecastHandler{uc: uc}
}

func (h *ForecastHandler) respond(c *fiber.Ctx, out any, err error) error {
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "MODEL_UNAVAILABLE", Message: "el modelo de pronóstico no está disponible"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// PredictVolumeAgg godoc
// @Summary      Pronóstico de facturación diaria por región (rollups agregados)
// @Tags         ml
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.VolumeForecastRecord
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/ml/volume_agg_predict [get]
func (h *ForecastHandler) PredictVolumeAgg(c *fiber.Ctx) error {
	out, err := h.uc.PredictVolumeAgg(c.Context(), GetUserID(c))
	return h.respond(c, out, err)
}

// PredictCountAgg godoc
// @Summary      Pronóstico de unidades diarias por región (rollups agregados)
// @Tags         ml
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.CountForecastRecord
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/ml/count_agg_predict [get]
func (h *ForecastHandler) PredictCountAgg(c *fiber.Ctx) error {
	out, err := h.uc.PredictCountAgg(c.Context(), GetUserID(c))
	return h.respond(c, out, err)
}

// PredictVolumeManufacturer godoc
// @Summary      Pronóstico de facturación diaria por región (eventos propios)
// @Tags         ml
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.VolumeForecastRecord
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/ml/volume_manufacturer_predict [get]
func (h *ForecastHandler) PredictVolumeManufacturer(c *fiber.Ctx) error {
	out, err := h.uc.PredictVolumeManufacturer(c.Context(), GetUserID(c))
	return h.respond(c, out, err)
}

// PredictCountManufacturer godoc
// @Summary      Pronóstico de unidades diarias por región (eventos propios)
// @Tags         ml
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.CountForecastRecord
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/ml/count_manufacturer_predict [get]
func (h *ForecastHandler) PredictCountManufacturer(c *fiber.Ctx) error {
	out, err := h.uc.PredictCountManufacturer(c.Context(), GetUserID(c))
	return h.respond(c, out, err)
}
