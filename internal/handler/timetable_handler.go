package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/limaJavier/classgrid/internal/dto"
	"github.com/limaJavier/classgrid/internal/service"
	appErrors "github.com/limaJavier/classgrid/pkg/errors"
	"github.com/limaJavier/classgrid/pkg/response"
)

type timetableService interface {
	Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.TimetableResponse, error)
	Get(ctx context.Context, id string) (*dto.TimetableResponse, error)
	UpdateCell(ctx context.Context, id string, req dto.UpdateCellRequest) (*dto.UpdateCellResponse, error)
	TeacherSchedules(ctx context.Context, id string) ([]dto.TeacherScheduleView, error)
	ExportCSV(ctx context.Context, id string) ([]byte, error)
	ExportPDF(ctx context.Context, id string) ([]byte, error)
	ExportTeachersPDF(ctx context.Context, id string) ([]byte, error)
	Delete(ctx context.Context, id string) error
}

// TimetableHandler exposes timetable generation, editing and export endpoints.
type TimetableHandler struct {
	service timetableService
}

func NewTimetableHandler(svc *service.TimetableService) *TimetableHandler {
	return &TimetableHandler{service: svc}
}

// Register mounts the timetable routes on the group.
func (h *TimetableHandler) Register(group *gin.RouterGroup) {
	timetables := group.Group("/timetables")
	timetables.POST("", h.Generate)
	timetables.GET("/:id", h.Get)
	timetables.DELETE("/:id", h.Delete)
	timetables.PUT("/:id/cells", h.UpdateCell)
	timetables.GET("/:id/teachers", h.Teachers)
	timetables.GET("/:id/teachers/export.pdf", h.ExportTeachersPDF)
	timetables.GET("/:id/export.csv", h.ExportCSV)
	timetables.GET("/:id/export.pdf", h.ExportPDF)
}

func (h *TimetableHandler) Generate(c *gin.Context) {
	var req dto.GenerateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
		return
	}
	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

func (h *TimetableHandler) Get(c *gin.Context) {
	result, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

func (h *TimetableHandler) UpdateCell(c *gin.Context) {
	var req dto.UpdateCellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid cell payload"))
		return
	}
	result, err := h.service.UpdateCell(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !result.Applied {
		response.JSON(c, http.StatusOK, result, map[string]interface{}{"reason": appErrors.ErrLocked.Code})
		return
	}
	response.JSON(c, http.StatusOK, result)
}

func (h *TimetableHandler) Teachers(c *gin.Context) {
	result, err := h.service.TeacherSchedules(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

func (h *TimetableHandler) ExportCSV(c *gin.Context) {
	id := c.Param("id")
	content, err := h.service.ExportCSV(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, "timetable-"+id+".csv", "text/csv; charset=utf-8", content)
}

func (h *TimetableHandler) ExportPDF(c *gin.Context) {
	id := c.Param("id")
	content, err := h.service.ExportPDF(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, "timetable-"+id+".pdf", "application/pdf", content)
}

func (h *TimetableHandler) ExportTeachersPDF(c *gin.Context) {
	id := c.Param("id")
	content, err := h.service.ExportTeachersPDF(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, "teachers-"+id+".pdf", "application/pdf", content)
}

func (h *TimetableHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
