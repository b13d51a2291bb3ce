package asset

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/assetflow/assetflow/internal/application/asset/usecases"
	"github.com/assetflow/assetflow/internal/domain/asset"
	"github.com/assetflow/assetflow/internal/interfaces/http/middleware"
	"github.com/assetflow/assetflow/internal/shared/logger"
	"github.com/assetflow/assetflow/internal/shared/utils"
)

type Handler struct {
	changeStatusUC usecases.ChangeStatusExecutor
	batchStatusUC  usecases.BatchChangeStatusExecutor
	historyUC      usecases.GetStatusHistoryExecutor
	logger         logger.Interface
}

func NewHandler(
	changeStatusUC usecases.ChangeStatusExecutor,
	batchStatusUC usecases.BatchChangeStatusExecutor,
	historyUC usecases.GetStatusHistoryExecutor,
	log logger.Interface,
) *Handler {
	return &Handler{
		changeStatusUC: changeStatusUC,
		batchStatusUC:  batchStatusUC,
		historyUC:      historyUC,
		logger:         log,
	}
}

// ChangeStatus godoc
// @Summary Change asset status
// @Description Apply one lifecycle transition. Setting the current status again is a no-op.
// @Tags assets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Asset ID"
// @Param request body ChangeStatusRequest true "Target status"
// @Success 200 {object} utils.APIResponse{data=dto.StatusChangeResultDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /assets/{id}/status [patch]
func (h *Handler) ChangeStatus(c *gin.Context) {
	userID, role, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	assetID, err := utils.ParseUintParam(c, "id", "asset")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangeStatusRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for status change", "asset_id", assetID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.changeStatusUC.Execute(c.Request.Context(), usecases.ChangeStatusCommand{
		AssetID:  assetID,
		Status:   req.Status,
		Actor:    asset.PlatformActor(userID, role),
		Reason:   req.Reason,
		Comments: req.Comments,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// BatchChangeStatus godoc
// @Summary Change status of many assets
// @Description Each asset is transitioned on its own; failures are reported per item.
// @Tags assets
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body BatchChangeStatusRequest true "Assets and target status"
// @Success 200 {object} utils.APIResponse{data=dto.BatchStatusResultDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /assets/status [post]
func (h *Handler) BatchChangeStatus(c *gin.Context) {
	userID, role, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req BatchChangeStatusRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for batch status change", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.batchStatusUC.Execute(c.Request.Context(), usecases.BatchChangeStatusCommand{
		AssetIDs: req.AssetIDs,
		Status:   req.Status,
		Actor:    asset.PlatformActor(userID, role),
		Reason:   req.Reason,
		Comments: req.Comments,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	msg := fmt.Sprintf("%d succeeded, %d failed", result.Succeeded, result.Failed)
	utils.MultiStatusResponse(c, result.Failed == 0, msg, result)
}

// GetStatusHistory godoc
// @Summary Asset status history
// @Description Append-only ledger of status changes, newest first.
// @Tags assets
// @Produce json
// @Security Bearer
// @Param id path int true "Asset ID"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.APIResponse{data=utils.PageResponse}
// @Failure 404 {object} utils.APIResponse
// @Router /assets/{id}/status-history [get]
func (h *Handler) GetStatusHistory(c *gin.Context) {
	assetID, err := utils.ParseUintParam(c, "id", "asset")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	p := utils.ParsePagination(c)
	result, err := h.historyUC.Execute(c.Request.Context(), usecases.GetStatusHistoryQuery{
		AssetID:  assetID,
		Page:     p.Page,
		PageSize: p.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.PageSuccessResponse(c, result.Entries, result.Total, p.Page, p.PageSize)
}
