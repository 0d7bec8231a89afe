package handler

import (
	"net/http"

	"clinicavet/internal/apierror"
	"clinicavet/internal/dto"
	"clinicavet/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FacturasHandler struct{ svc service.FacturaService }

func NewFacturasHandler(svc service.FacturaService) *FacturasHandler {
	return &FacturasHandler{svc: svc}
}

// Crear godoc
// @Summary      Emitir una factura
// @Description  Crea una factura ACID: asigna número del CAI activo, congela snapshots de cliente y mascota, calcula totales con ISV 15% y descuenta stock.
// @Tags         facturas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearFacturaRequest true "Detalle de la factura"
// @Success      201  {object} dto.FacturaResponse
// @Failure      400  {object} apierror.APIError
// @Failure      409  {object} apierror.StockError
// @Router       /v1/facturas [post]
func (h *FacturasHandler) Crear(c *gin.Context) {
	var req dto.CrearFacturaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Actualizar godoc
// @Summary      Editar una factura
// @Description  Reemplaza las líneas de la factura. Revierte el stock anterior, valida el nuevo detalle y recalcula totales. El número y los datos CAI nunca cambian.
// @Tags         facturas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID de la factura"
// @Param        body body dto.ActualizarFacturaRequest true "Nuevo detalle"
// @Success      200  {object} dto.FacturaResponse
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.StockError
// @Router       /v1/facturas/{id} [put]
func (h *FacturasHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarFacturaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar godoc
// @Summary      Eliminar una factura
// @Description  Borra la factura y devuelve el stock de sus productos en la misma transacción.
// @Tags         facturas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la factura"
// @Success      200  {object} map[string]interface{}
// @Failure      404  {object} apierror.APIError
// @Router       /v1/facturas/{id} [delete]
func (h *FacturasHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	advertencias, err := h.svc.Eliminar(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	resp := gin.H{"detail": "Factura eliminada"}
	if len(advertencias) > 0 {
		resp["advertencias"] = advertencias
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener godoc
// @Summary      Obtener una factura
// @Tags         facturas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la factura"
// @Success      200  {object} dto.FacturaResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/facturas/{id} [get]
func (h *FacturasHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar godoc
// @Summary      Listar facturas
// @Description  Lista paginada de facturas, más reciente primero, filtrable por estado y fecha.
// @Tags         facturas
// @Produce      json
// @Security     BearerAuth
// @Param        estado query string false "pendiente | pagada | anulada | all"
// @Param        fecha  query string false "Fecha YYYY-MM-DD"
// @Param        page   query int    false "Página (default 1)"
// @Param        limit  query int    false "Registros por página (default 50)"
// @Success      200    {object} dto.FacturaListResponse
// @Router       /v1/facturas [get]
func (h *FacturasHandler) Listar(c *gin.Context) {
	var filter dto.FacturaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
