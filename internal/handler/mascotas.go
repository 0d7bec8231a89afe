package handler

import (
	"net/http"

	"clinicavet/internal/apierror"
	"clinicavet/internal/dto"
	"clinicavet/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MascotasHandler struct{ svc service.MascotaService }

func NewMascotasHandler(svc service.MascotaService) *MascotasHandler {
	return &MascotasHandler{svc: svc}
}

// Crear godoc
// @Summary      Registrar mascota
// @Tags         mascotas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearMascotaRequest true "Mascota"
// @Success      201  {object} dto.MascotaResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/mascotas [post]
func (h *MascotasHandler) Crear(c *gin.Context) {
	var req dto.CrearMascotaRequest
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
// @Summary      Obtener mascota por ID
// @Tags         mascotas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la mascota"
// @Success      200  {object} dto.MascotaResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/mascotas/{id} [get]
func (h *MascotasHandler) Obtener(c *gin.Context) {
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
// @Summary      Listar mascotas
// @Tags         mascotas
// @Produce      json
// @Security     BearerAuth
// @Param        nombre         query string false "Búsqueda por nombre"
// @Param        especie        query string false "Filtro por especie"
// @Param        propietario_id query string false "Mascotas de un propietario"
// @Success      200  {object} dto.MascotaListResponse
// @Router       /v1/mascotas [get]
func (h *MascotasHandler) Listar(c *gin.Context) {
	var filter dto.MascotaFilter
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
// @Summary      Actualizar mascota
// @Tags         mascotas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID de la mascota"
// @Param        body body dto.ActualizarMascotaRequest true "Campos a actualizar"
// @Success      200  {object} dto.MascotaResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/mascotas/{id} [put]
func (h *MascotasHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarMascotaRequest
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
// @Summary      Desactivar mascota (borrado lógico)
// @Tags         mascotas
// @Security     BearerAuth
// @Param        id path string true "UUID de la mascota"
// @Success      204
// @Failure      404  {object} apierror.APIError
// @Router       /v1/mascotas/{id} [delete]
func (h *MascotasHandler) Desactivar(c *gin.Context) {
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
