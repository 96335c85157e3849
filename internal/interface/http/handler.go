package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/evanlin/lifeboard/internal/domain/dashboard"
	"github.com/evanlin/lifeboard/internal/domain/habits"
	"github.com/evanlin/lifeboard/internal/domain/profile"
	apperrors "github.com/evanlin/lifeboard/pkg/errors"
)

// Handler wires the HTTP transport to the dashboard, habits and profile services.
type Handler struct {
	dashboardSvc dashboard.Service
	habitsSvc    habits.Service
	profileSvc   profile.Service
	logger       *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(dashboardSvc dashboard.Service, habitsSvc habits.Service, profileSvc profile.Service, logger *slog.Logger) *Handler {
	return &Handler{
		dashboardSvc: dashboardSvc,
		habitsSvc:    habitsSvc,
		profileSvc:   profileSvc,
		logger:       logger.With("component", "http.handler"),
	}
}

// CaffeineSeries returns the simulated caffeine curve for the requested window.
func (h *Handler) CaffeineSeries(c *gin.Context) {
	req, err := parseSeriesQuery(c)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.dashboardSvc.Series(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "series_failed"
		if apperrors.IsCode(err, "invalid_input") {
			status = http.StatusBadRequest
			code = "invalid_request"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CaffeineNow reports the modeled caffeine load at this moment.
func (h *Handler) CaffeineNow(c *gin.Context) {
	resp, err := h.dashboardSvc.Current(c.Request.Context())
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "series_failed", errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RecordBrew logs one coffee.
func (h *Handler) RecordBrew(c *gin.Context) {
	var req habits.RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	event, err := h.habitsSvc.Record(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "record_failed"
		if apperrors.IsCode(err, "invalid_input") {
			status = http.StatusBadRequest
			code = "invalid_request"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusCreated, event)
}

// ListBrews returns the log inside the requested range.
func (h *Handler) ListBrews(c *gin.Context) {
	var req habits.ListRequest
	var err error
	if req.From, err = parseTimeQuery(c, "from"); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	if req.To, err = parseTimeQuery(c, "to"); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.habitsSvc.List(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "list_failed"
		if apperrors.IsCode(err, "invalid_input") {
			status = http.StatusBadRequest
			code = "invalid_request"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteBrew removes one log entry.
func (h *Handler) DeleteBrew(c *gin.Context) {
	err := h.habitsSvc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		status := http.StatusInternalServerError
		code := "delete_failed"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
		case apperrors.IsCode(err, "not_found"):
			status = http.StatusNotFound
			code = "not_found"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}
	c.Status(http.StatusNoContent)
}

// GetProfile returns the stored body profile.
func (h *Handler) GetProfile(c *gin.Context) {
	record, err := h.profileSvc.Get(c.Request.Context())
	if err != nil {
		status := http.StatusInternalServerError
		code := "profile_failed"
		if apperrors.IsCode(err, "not_found") {
			status = http.StatusNotFound
			code = "not_found"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, record)
}

// UpdateProfile replaces the stored body profile.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req profile.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	record, err := h.profileSvc.Update(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "profile_failed"
		if apperrors.IsCode(err, "invalid_input") {
			status = http.StatusBadRequest
			code = "invalid_request"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, record)
}

func parseSeriesQuery(c *gin.Context) (dashboard.SeriesRequest, error) {
	var req dashboard.SeriesRequest
	var err error
	if req.StartMS, err = parseInt64Query(c, "start"); err != nil {
		return dashboard.SeriesRequest{}, err
	}
	if req.EndMS, err = parseInt64Query(c, "end"); err != nil {
		return dashboard.SeriesRequest{}, err
	}
	step, err := parseInt64Query(c, "step")
	if err != nil {
		return dashboard.SeriesRequest{}, err
	}
	req.GridMinutes = int(step)
	if raw := c.Query("align"); raw != "" {
		req.AlignToHour = raw == "1" || strings.EqualFold(raw, "true")
	}
	return req, nil
}

func parseInt64Query(c *gin.Context, name string) (int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.Wrap("invalid_input", name+" must be an integer", err)
	}
	return value, nil
}

func parseTimeQuery(c *gin.Context, name string) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, nil
	}
	value, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, apperrors.Wrap("invalid_input", name+" must be RFC 3339", err)
	}
	return value, nil
}
