package transporthttp

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"portview/internal/analytics"
	"portview/internal/gateway/coinswitch"
	"portview/internal/portfolio"
	"portview/internal/store/audit"

	"github.com/gin-gonic/gin"
)

type handlers struct {
	portfolio *portfolio.Service
	gateway   *coinswitch.Client
	audit     *audit.Store
	timeout   time.Duration
}

type seriesParams struct {
	Symbol   string `form:"symbol" binding:"required"`
	FromTime int64  `form:"from_time" binding:"required"`
	ToTime   int64  `form:"to_time" binding:"required"`
	Duration int    `form:"c_duration" binding:"required"`
	Exchange string `form:"exchange" binding:"required"`
}

// session pulls the opaque credential off the request: the st cookie the
// web client carries, or an X-Auth-Token header for API callers.
func session(c *gin.Context) string {
	if v, err := c.Cookie("st"); err == nil && v != "" {
		return v
	}
	return c.GetHeader("X-Auth-Token")
}

func (h *handlers) generate(c *gin.Context) (*portfolio.Result, bool) {
	var params seriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	token := session(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session token"})
		return nil, false
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	result, err := h.portfolio.GenerateSeries(ctx, portfolio.Request{
		Symbol:   params.Symbol,
		FromTime: params.FromTime,
		ToTime:   params.ToTime,
		Duration: params.Duration,
		Exchange: params.Exchange,
		Session:  token,
	})
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return nil, false
	}
	return result, true
}

func (h *handlers) handleSeries(c *gin.Context) {
	result, ok := h.generate(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *handlers) handleChart(c *gin.Context) {
	result, ok := h.generate(c)
	if !ok {
		return
	}
	renderChart(c, c.Query("symbol"), result)
}

func (h *handlers) handleTradingSummary(c *gin.Context) {
	token := session(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session token"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	orders, err := h.gateway.FetchClosedOrders(ctx, token, coinswitch.OrderQuery{
		FromDate: c.Query("from_date"),
		ToDate:   c.Query("to_date"),
	})
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": analytics.Summarize(orders, c.Query("symbol"))})
}

func (h *handlers) handleStrategyProfits(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	profits, err := h.gateway.FetchStrategyProfits(ctx)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profits": profits})
}

func (h *handlers) handleAuditCalls(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	records, err := h.audit.Recent(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"calls": records})
}

// statusForError maps the typed failures onto HTTP statuses: caller mistakes
// are 400s, upstream trouble is a 502, auth problems pass through.
func statusForError(err error) int {
	var invalid *portfolio.InvalidInputError
	if errors.As(err, &invalid) {
		return http.StatusBadRequest
	}
	var remote *coinswitch.RemoteError
	if errors.As(err, &remote) {
		if remote.Status == http.StatusUnauthorized || remote.Status == http.StatusForbidden {
			return remote.Status
		}
		return http.StatusBadGateway
	}
	var malformed *coinswitch.MalformedResponseError
	var exhausted *coinswitch.PaginationExhaustedError
	if errors.As(err, &malformed) || errors.As(err, &exhausted) {
		return http.StatusBadGateway
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}
