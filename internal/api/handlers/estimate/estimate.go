package estimate

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"smartbite/internal/core/pipeline"
	"smartbite/internal/core/snapshot"
	"smartbite/internal/pkg/common"
)

// Handler 估算請求處理器
type Handler struct {
	service   *pipeline.Service
	snapshots *snapshot.Store
}

// NewHandler 建立估算處理器
func NewHandler(service *pipeline.Service, snapshots *snapshot.Store) *Handler {
	return &Handler{
		service:   service,
		snapshots: snapshots,
	}
}

// EstimateRequest 估算請求格式
type EstimateRequest struct {
	Query string `json:"query" binding:"required"`
	TopK  int    `json:"top_k"`
}

// HandleEstimate 處理 POST /api/v1/estimate，
// 搜尋食譜並回傳每份食譜的熱量與成本估算
func (h *Handler) HandleEstimate(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = common.GenerateUUID()
	}

	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("無效的估算請求",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	common.LogInfo("收到估算請求",
		zap.String("request_id", requestID),
		zap.String("查詢", req.Query),
		zap.Int("top_k", req.TopK),
	)

	start := time.Now()
	report, err := h.service.Run(c.Request.Context(), req.Query, req.TopK)
	if err != nil {
		h.respondError(c, requestID, err)
		return
	}

	// 落地快照，失敗不影響回應
	if h.snapshots != nil {
		if path, err := h.snapshots.Save(report); err != nil {
			common.LogWarn("快照寫入失敗",
				zap.String("request_id", requestID),
				zap.Error(err),
			)
		} else {
			common.LogInfo("快照已寫入",
				zap.String("request_id", requestID),
				zap.String("path", path),
			)
		}
	}

	common.LogInfo("估算請求完成",
		zap.String("request_id", requestID),
		zap.Int("食譜數", len(report.Results)),
		zap.Duration("耗時", time.Since(start)),
	)

	c.JSON(http.StatusOK, gin.H{
		"request_id": requestID,
		"query":      report.Query,
		"results":    report.Results,
		"failures":   report.Failures,
	})
}

// respondError 依錯誤型別決定狀態碼
func (h *Handler) respondError(c *gin.Context, requestID string, err error) {
	common.LogError("估算執行失敗",
		zap.String("request_id", requestID),
		zap.Error(err),
	)

	var custom *common.CustomError
	if errors.As(err, &custom) {
		c.JSON(custom.Status, gin.H{
			"error": custom.Message,
			"code":  custom.Code,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Internal server error",
		"code":  common.ErrCodeInternalError,
	})
}
