package http

import (
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/goods-trace/internal/application/dto"
	"github.com/tu-usuario/goods-trace/internal/application/usecase"
)

// Límites de paginación de los listados de eventos.
const (
	defaultPageCount = 100
	maxPageCount     = 100
)

// GoodsHandler listados de eventos de mercancías y subida de archivos.
type GoodsHandler struct {
	goodsUC  *usecase.GoodsUseCase
	uploadUC *usecase.UploadUseCase
}

// NewGoodsHandler construye el handler de mercancías.
func NewGoodsHandler(goodsUC *usecase.GoodsUseCase, uploadUC *usecase.UploadUseCase) *GoodsHandler {
	return &GoodsHandler{goodsUC: goodsUC, uploadUC: uploadUC}
}

// pagination valida offset y count de la query. Devuelve ok=false si ya
// respondió con error.
func pagination(c *fiber.Ctx) (offset, count int, ok bool) {
	offset, err := strconv.Atoi(c.Query("offset", "0"))
	if err != nil || offset < 0 {
		c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "offset debe ser un entero >= 0"})
		return 0, 0, false
	}
	count, err = strconv.Atoi(c.Query("count", strconv.Itoa(defaultPageCount)))
	if err != nil || count < 1 || count > maxPageCount {
		c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "count debe ser un entero entre 1 y 100"})
		return 0, 0, false
	}
	return offset, count, true
}

// ListProduced godoc
// @Summary      Eventos de producción del usuario
// @Tags         goods
// @Produce      json
// @Security     BearerAuth
// @Param        offset  query  int  false  "desplazamiento (>= 0)"
// @Param        count   query  int  false  "tamaño de página (1-100)"
// @Success      200  {object}  dto.ListProducedResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/goods/produced [get]
func (h *GoodsHandler) ListProduced(c *fiber.Ctx) error {
	offset, count, ok := pagination(c)
	if !ok {
		return nil
	}
	out, err := h.goodsUC.ListProduced(c.Context(), GetUserID(c), offset, count)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListSold godoc
// @Summary      Eventos de venta del usuario
// @Tags         goods
// @Produce      json
// @Security     BearerAuth
// @Param        offset  query  int  false  "desplazamiento (>= 0)"
// @Param        count   query  int  false  "tamaño de página (1-100)"
// @Success      200  {object}  dto.ListSoldResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/goods/sold [get]
func (h *GoodsHandler) ListSold(c *fiber.Ctx) error {
	offset, count, ok := pagination(c)
	if !ok {
		return nil
	}
	out, err := h.goodsUC.ListSold(c.Context(), GetUserID(c), offset, count)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListTransported godoc
// @Summary      Eventos de movimiento del usuario
// @Tags         goods
// @Produce      json
// @Security     BearerAuth
// @Param        offset  query  int  false  "desplazamiento (>= 0)"
// @Param        count   query  int  false  "tamaño de página (1-100)"
// @Success      200  {object}  dto.ListTransportedResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/goods/transported [get]
func (h *GoodsHandler) ListTransported(c *fiber.Ctx) error {
	offset, count, ok := pagination(c)
	if !ok {
		return nil
	}
	out, err := h.goodsUC.ListTransported(c.Context(), GetUserID(c), offset, count)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Upload godoc
// @Summary      Subir archivo CSV de eventos
// @Description  Guarda el archivo y lo ingesta en background. La respuesta no espera la ingestión.
// @Tags         goods
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "CSV con una de las cabeceras soportadas"
// @Success      200   {object}  dto.MessageResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/goods/upload [post]
func (h *GoodsHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "UPLOAD_ERROR", Message: "There was an error uploading the file"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "UPLOAD_ERROR", Message: "There was an error uploading the file"})
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "UPLOAD_ERROR", Message: "There was an error uploading the file"})
	}
	if _, err := h.uploadUC.Upload(c.Context(), GetUserID(c), fh.Filename, content); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "UPLOAD_ERROR", Message: "There was an error uploading the file"})
	}
	return c.JSON(dto.MessageResponse{Message: "Successfully uploaded " + fh.Filename})
}
