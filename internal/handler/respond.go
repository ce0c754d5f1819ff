package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"daycare/internal/apperr"
)

func ok(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{"success": true, "data": data}
	if message != "" {
		body["message"] = message
	}
	c.JSON(status, body)
}

// fail renders err with the status its kind maps to. Unknown errors are
// logged and hidden behind a generic 500.
func fail(c *gin.Context, logger log.Logger, err error) {
	var (
		verr *apperr.ValidationError
		nf   *apperr.NotFoundError
	)
	switch {
	case errors.As(err, &verr):
		body := gin.H{"success": false, "message": verr.Message}
		if len(verr.Fields) > 0 {
			body["errors"] = verr.ByField()
		}
		c.JSON(http.StatusUnprocessableEntity, body)
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": nf.Message})
	default:
		level.Error(logger).Log(
			"msg", "request failed",
			"method", c.Request.Method,
			"route", c.FullPath(),
			"request_id", c.GetString("request_id"),
			"err", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
	}
}

// idParam parses a positive integer path parameter. A malformed id names no
// record, so it is reported as not found.
func idParam(c *gin.Context, name, noun string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.NotFound("%s %s not found", noun, raw)
	}
	return id, nil
}
