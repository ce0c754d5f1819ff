package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"

	"daycare/internal/salary"
)

type salaryHandler struct {
	svc    *salary.Service
	logger log.Logger
}

type salaryRequest struct {
	UserID        *int64   `json:"user_id"`
	SalaryDate    *string  `json:"salary_date"`
	BasicSalary   *float64 `json:"basic_salary" binding:"omitempty,gte=0"`
	OverTime      *float64 `json:"over_time" binding:"omitempty,gte=0"`
	FuelAllowance *float64 `json:"fuel_allowance" binding:"omitempty,gte=0"`
	NetSalary     *float64 `json:"net_salary" binding:"omitempty,gte=0"`
}

func (a salaryRequest) amounts() salary.Amounts {
	return salary.Amounts{
		BasicSalary:   a.BasicSalary,
		OverTime:      a.OverTime,
		FuelAllowance: a.FuelAllowance,
		NetSalary:     a.NetSalary,
	}
}

func (h *salaryHandler) create(c *gin.Context) {
	var req salaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, h.logger, bindError(err))
		return
	}
	in := salary.CreateInput{Amounts: req.amounts()}
	if req.UserID != nil {
		in.UserID = *req.UserID
	}
	if req.SalaryDate != nil {
		in.SalaryDate = *req.SalaryDate
	}
	s, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, http.StatusCreated, "Salary created successfully", s)
}

func (h *salaryHandler) update(c *gin.Context) {
	id, err := idParam(c, "id", "Salary")
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	var req salaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, h.logger, bindError(err))
		return
	}
	s, err := h.svc.Update(c.Request.Context(), id, salary.UpdateInput{
		UserID:     req.UserID,
		SalaryDate: req.SalaryDate,
		Amounts:    req.amounts(),
	})
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, http.StatusOK, "Salary updated successfully", s)
}

func (h *salaryHandler) get(c *gin.Context) {
	id, err := idParam(c, "id", "Salary")
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	s, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, http.StatusOK, "", s)
}

func (h *salaryHandler) list(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, http.StatusOK, "", list)
}

func (h *salaryHandler) forUser(c *gin.Context) {
	userID, err := idParam(c, "user", "User")
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	list, err := h.svc.ForUser(c.Request.Context(), userID)
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, http.StatusOK, "", list)
}

func (h *salaryHandler) delete(c *gin.Context) {
	id, err := idParam(c, "id", "Salary")
	if err != nil {
		fail(c, h.logger, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, h.logger, err)
		return
	}
	ok(c, http.StatusOK, "Salary deleted successfully", nil)
}
