package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"

	"daycare/internal/stats"
)

type statsHandler struct {
	svc    *stats.Service
	logger log.Logger
}

func (h *statsHandler) attendanceRate(c *gin.Context) {
	userID, err := idParam(c, "user", "User")
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	rate, err := h.svc.AttendanceRate(c.Request.Context(), userID)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, http.StatusOK, "", rate)
}

func (h *statsHandler) todayMood(c *gin.Context) {
	userID, err := idParam(c, "user", "User")
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	m, err := h.svc.TodayMood(c.Request.Context(), userID)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, http.StatusOK, "", m)
}

func (h *statsHandler) moodHistogram(c *gin.Context) {
	userID, err := idParam(c, "user", "User")
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	hist, err := h.svc.MoodHistogram(c.Request.Context(), userID)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, http.StatusOK, "", hist)
}
