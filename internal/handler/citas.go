package handler

import (
	"net/http"

	"clinicavet/internal/apierror"
	"clinicavet/internal/dto"
	"clinicavet/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CitasHandler struct{ svc service.CitaService }

func NewCitasHandler(svc service.CitaService) *CitasHandler { return &CitasHandler{svc: svc} }

// Crear godoc
// @Summary      Agendar cita
// @Description  Rechaza con 409 si el veterinario ya tiene una cita no cancelada en el mismo horario.
// @Tags         citas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearCitaRequest true "Cita"
// @Success      201  {object} dto.CitaResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/citas [post]
func (h *CitasHandler) Crear(c *gin.Context) {
	var req dto.CrearCitaRequest
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
// @Summary      Obtener cita por ID
// @Tags         citas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la cita"
// @Success      200  {object} dto.CitaResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/citas/{id} [get]
func (h *CitasHandler) Obtener(c *gin.Context) {
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
// @Summary      Listar citas
// @Tags         citas
// @Produce      json
// @Security     BearerAuth
// @Param        fecha          query string false "Fecha YYYY-MM-DD"
// @Param        veterinario_id query string false "Agenda de un veterinario"
// @Param        estado         query string false "programada | atendida | cancelada | all"
// @Success      200  {object} dto.CitaListResponse
// @Router       /v1/citas [get]
func (h *CitasHandler) Listar(c *gin.Context) {
	var filter dto.CitaFilter
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

// Actualizar godoc
// @Summary      Reprogramar o actualizar cita
// @Tags         citas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID de la cita"
// @Param        body body dto.ActualizarCitaRequest true "Cambios"
// @Success      200  {object} dto.CitaResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/citas/{id} [put]
func (h *CitasHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarCitaRequest
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

// Cancelar godoc
// @Summary      Cancelar cita
// @Tags         citas
// @Security     BearerAuth
// @Param        id path string true "UUID de la cita"
// @Success      204
// @Failure      404  {object} apierror.APIError
// @Router       /v1/citas/{id} [delete]
func (h *CitasHandler) Cancelar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Cancelar(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
