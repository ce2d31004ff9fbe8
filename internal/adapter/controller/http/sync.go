package httpctrl

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	syncuc "github.com/sh1m0r1an1n/seller-apis/internal/usecase/sync"
)

// SyncRunner is what the controller needs from the orchestrator.
type SyncRunner interface {
	RunAll(ctx context.Context, only map[string]struct{}) (map[string]syncuc.Summary, error)
}

type SyncController struct {
	UC SyncRunner
}

func NewSyncController(uc SyncRunner) *SyncController { return &SyncController{UC: uc} }

func (c *SyncController) Register(r *gin.Engine, mw ...gin.HandlerFunc) {
	r.POST("/sync", append(mw, c.sync)...)
}

func (c *SyncController) sync(ctx *gin.Context) {
	// ?marketplace=ozon,yandex-fbs ограничивает прогон
	var only map[string]struct{}
	if q := strings.TrimSpace(ctx.Query("marketplace")); q != "" {
		only = make(map[string]struct{})
		for _, m := range strings.Split(q, ",") {
			if m = strings.TrimSpace(m); m != "" {
				only[m] = struct{}{}
			}
		}
	}

	res, err := c.UC.RunAll(ctx.Request.Context(), only)
	if err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "synced": res})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"synced": res})
}
