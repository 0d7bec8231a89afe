package handler

import (
	"net/http"

	"clinicavet/internal/apierror"
	"clinicavet/internal/dto"
	"clinicavet/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ServiciosHandler struct{ svc service.ServicioService }

func NewServiciosHandler(svc service.ServicioService) *ServiciosHandler {
	return &ServiciosHandler{svc: svc}
}

// Crear godoc
// @Summary      Crear servicio del catálogo
// @Tags         servicios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearServicioRequest true "Servicio"
// @Success      201  {object} dto.ServicioResponse
// @Router       /v1/servicios [post]
func (h *ServiciosHandler) Crear(c *gin.Context) {
	var req dto.CrearServicioRequest
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

// Obtener godoc
// @Summary      Obtener servicio por ID
// @Tags         servicios
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del servicio"
// @Success      200  {object} dto.ServicioResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/servicios/{id} [get]
func (h *ServiciosHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar godoc
// @Summary      Listar servicios del catálogo
// @Tags         servicios
// @Produce      json
// @Security     BearerAuth
// @Param        todos query bool false "Incluir inactivos"
// @Success      200  {array} dto.ServicioResponse
// @Router       /v1/servicios [get]
func (h *ServiciosHandler) Listar(c *gin.Context) {
	incluirInactivos := c.Query("todos") == "true"
	resp, err := h.svc.Listar(c.Request.Context(), incluirInactivos)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary      Actualizar servicio
// @Tags         servicios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del servicio"
// @Param        body body dto.ActualizarServicioRequest true "Campos a actualizar"
// @Success      200  {object} dto.ServicioResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/servicios/{id} [put]
func (h *ServiciosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarServicioRequest
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

// Desactivar godoc
// @Summary      Desactivar servicio (borrado lógico)
// @Tags         servicios
// @Security     BearerAuth
// @Param        id path string true "UUID del servicio"
// @Success      204
// @Failure      404  {object} apierror.APIError
// @Router       /v1/servicios/{id} [delete]
func (h *ServiciosHandler) Desactivar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
