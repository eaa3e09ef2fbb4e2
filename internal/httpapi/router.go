// Package httpapi wires the Gin router exposing GET /health, GET /ready,
// GET /live, POST /payment/webhook and POST /search. Every handler here is
// a thin adapter — the actual logic lives in the core packages
// (internal/search, internal/report, pkg/health); this package only decodes
// requests and encodes responses.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nikoly240702/tender-sniper/internal/domain/user"
	"github.com/nikoly240702/tender-sniper/pkg/health"
	"github.com/nikoly240702/tender-sniper/pkg/di"
)

// NewRouter builds the Gin engine, registering the usual middleware stack
// (recovery + request logging) ahead of the routes.
func NewRouter(c *di.Container) *gin.Engine {
	if c.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(c.Log))

	h := &handlers{container: c}

	r.GET(c.Config.Monitoring.HealthCheckPath, h.health)
	r.GET(c.Config.Monitoring.ReadyPath, h.ready)
	r.GET(c.Config.Monitoring.LivePath, h.live)
	r.POST("/payment/webhook", h.paymentWebhook)
	r.POST("/search", h.search)

	return r
}

type handlers struct {
	container *di.Container
}

func requestLogger(log *zap.SugaredLogger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()
		log.Infow("http request",
			"method", ctx.Request.Method,
			"path", ctx.Request.URL.Path,
			"status", ctx.Writer.Status(),
		)
	}
}

func (h *handlers) health(ctx *gin.Context) {
	resp := h.container.HealthReg.Ready(ctx.Request.Context())
	status := http.StatusOK
	if resp.Status == health.StatusFail {
		status = http.StatusServiceUnavailable
	}
	ctx.JSON(status, resp)
}

func (h *handlers) ready(ctx *gin.Context) {
	resp := h.container.HealthReg.Ready(ctx.Request.Context())
	status := http.StatusOK
	if resp.Status == health.StatusFail {
		status = http.StatusServiceUnavailable
	}
	ctx.JSON(status, resp)
}

func (h *handlers) live(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, health.Live())
}

// paymentWebhook acknowledges the billing collaborator's raw notification
// without parsing or acting on it — that's a dedicated billing
// collaborator's job. This handler only logs the payload and returns 200
// so the vendor doesn't retry.
func (h *handlers) paymentWebhook(ctx *gin.Context) {
	var raw map[string]any
	if err := ctx.ShouldBindJSON(&raw); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	h.container.Log.Infow("payment webhook received", "payload", raw)
	ctx.JSON(http.StatusOK, gin.H{"status": "accepted"})
}

// searchRequest is the chat collaborator's Instant Search trigger payload:
// an ad-hoc filter specification, not a persisted one.
type searchRequest struct {
	ExternalUserID  string   `json:"external_user_id" binding:"required"`
	Name            string   `json:"name" binding:"required"`
	Keywords        []string `json:"keywords" binding:"required,min=1"`
	ExcludeKeywords []string `json:"exclude_keywords"`
	MaxTenders      int      `json:"max_tenders"`
}

func (h *handlers) search(ctx *gin.Context) {
	var req searchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.container.Users.GetByExternalID(ctx.Request.Context(), req.ExternalUserID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if u == nil {
		u, err = user.New(req.ExternalUserID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := h.container.Users.Create(ctx.Request.Context(), u); err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register user"})
			return
		}
	}

	maxTenders := req.MaxTenders
	if maxTenders <= 0 {
		maxTenders = h.container.Config.Business.MonitoringMaxTenders
	}

	f, err := buildAdHocFilter(u.ID, req)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	aiEnabled := u.Tier == user.TierPremium
	results, err := h.container.Search.Run(ctx.Request.Context(), f, maxTenders, aiEnabled, u.ID, string(u.Tier))
	if err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "search failed"})
		return
	}

	reportData := buildReportData(req.Name, results)
	renderedHTML, err := h.container.Report.Render(reportData)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "report rendering failed"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"result_count": len(results),
		"report_html":  renderedHTML,
	})
}
