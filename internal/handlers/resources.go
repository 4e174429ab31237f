package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edwardvalandre-netizen/ugel-monitor/internal/resources"
)

func (h *Handler) Resources(c *gin.Context) {
	cats, err := h.resources.Catalog()
	if err != nil {
		h.logger(c).WithError(err).Error("list resources")
		fail(c, "/dashboard", "No se pudieron listar los recursos")
		return
	}
	render(c, http.StatusOK, "recursos.html", gin.H{
		"Title":      "Recursos",
		"Categories": cats,
	})
}

func (h *Handler) DownloadResource(c *gin.Context) {
	file := c.Param("archivo")
	path, err := h.resources.Resolve(c.Param("categoria"), file)
	if errors.Is(err, resources.ErrNotFound) {
		c.String(http.StatusNotFound, "Archivo no encontrado")
		return
	}
	if err != nil {
		h.logger(c).WithError(err).Error("resolve resource")
		c.String(http.StatusInternalServerError, "No se pudo leer el archivo")
		return
	}
	c.FileAttachment(path, file)
}
