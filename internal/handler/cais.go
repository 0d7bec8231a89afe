package handler

import (
	"net/http"

	"clinicavet/internal/apierror"
	"clinicavet/internal/dto"
	"clinicavet/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CAIsHandler struct{ svc service.CAIService }

func NewCAIsHandler(svc service.CAIService) *CAIsHandler { return &CAIsHandler{svc: svc} }

// Crear godoc
// @Summary      Registrar lote CAI
// @Description  Da de alta un lote de numeración fiscal autorizado. Con activar=true lo activa de inmediato desactivando el lote anterior.
// @Tags         cai
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearCAIRequest true "Lote CAI"
// @Success      201  {object} dto.CAIResponse
// @Failure      400  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/cai [post]
func (h *CAIsHandler) Crear(c *gin.Context) {
	var req dto.CrearCAIRequest
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

// Listar godoc
// @Summary      Listar lotes CAI
// @Tags         cai
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array} dto.CAIResponse
// @Router       /v1/cai [get]
func (h *CAIsHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Activar godoc
// @Summary      Activar lote CAI
// @Description  Activa el lote indicado y desactiva cualquier otro lote activo, en una sola transacción.
// @Tags         cai
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del lote"
// @Success      200  {object} dto.CAIResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/cai/{id}/activar [post]
func (h *CAIsHandler) Activar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Activar(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
