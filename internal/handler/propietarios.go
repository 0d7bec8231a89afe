package handler

import (
	"net/http"

	"clinicavet/internal/apierror"
	"clinicavet/internal/dto"
	"clinicavet/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PropietariosHandler struct{ svc service.PropietarioService }

func NewPropietariosHandler(svc service.PropietarioService) *PropietariosHandler {
	return &PropietariosHandler{svc: svc}
}

// Crear godoc
// @Summary      Registrar propietario
// @Tags         propietarios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearPropietarioRequest true "Propietario"
// @Success      201  {object} dto.PropietarioResponse
// @Router       /v1/propietarios [post]
func (h *PropietariosHandler) Crear(c *gin.Context) {
	var req dto.CrearPropietarioRequest
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
// @Summary      Obtener propietario por ID
// @Tags         propietarios
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del propietario"
// @Success      200  {object} dto.PropietarioResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/propietarios/{id} [get]
func (h *PropietariosHandler) Obtener(c *gin.Context) {
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
// @Summary      Listar propietarios
// @Tags         propietarios
// @Produce      json
// @Security     BearerAuth
// @Param        nombre query string false "Búsqueda por nombre"
// @Success      200  {object} dto.PropietarioListResponse
// @Router       /v1/propietarios [get]
func (h *PropietariosHandler) Listar(c *gin.Context) {
	var filter dto.PropietarioFilter
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
// @Summary      Actualizar propietario
// @Tags         propietarios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del propietario"
// @Param        body body dto.ActualizarPropietarioRequest true "Campos a actualizar"
// @Success      200  {object} dto.PropietarioResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/propietarios/{id} [put]
func (h *PropietariosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarPropietarioRequest
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
// @Summary      Desactivar propietario (borrado lógico)
// @Tags         propietarios
// @Security     BearerAuth
// @Param        id path string true "UUID del propietario"
// @Success      204
// @Failure      404  {object} apierror.APIError
// @Router       /v1/propietarios/{id} [delete]
func (h *PropietariosHandler) Desactivar(c *gin.Context) {
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
