package httpctrl

import (
	"github.com/gin-gonic/gin"

	presenter "github.com/sh1m0r1an1n/seller-apis/internal/adapter/presenter/health"
	usecase "github.com/sh1m0r1an1n/seller-apis/internal/usecase/health"
)

type HealthController struct {
	UC *usecase.ReadinessInteractor
}

func NewHealthController(uc *usecase.ReadinessInteractor) *HealthController {
	return &HealthController{UC: uc}
}

func (h *HealthController) Register(r *gin.Engine) {
	r.GET("/health", h.get)
	r.HEAD("/health", h.head)
}

func (h *HealthController) get(c *gin.Context) {
	out := h.UC.Execute(c.Request.Context())
	code, body := presenter.Map(out)
	c.JSON(code, body)
}

func (h *HealthController) head(c *gin.Context) {
	out := h.UC.Execute(c.Request.Context())
	code, _ := presenter.Map(out)
	c.Status(code)
}
