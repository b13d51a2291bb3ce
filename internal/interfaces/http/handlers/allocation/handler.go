package allocation

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/assetflow/assetflow/internal/application/allocation/usecases"
	"github.com/assetflow/assetflow/internal/interfaces/http/middleware"
	"github.com/assetflow/assetflow/internal/shared/errors"
	"github.com/assetflow/assetflow/internal/shared/logger"
	"github.com/assetflow/assetflow/internal/shared/utils"
)

type Handler struct {
	assignUC   usecases.AssignExecutor
	unassignUC usecases.UnassignExecutor
	qaListsUC  usecases.ListQAAssetListsExecutor
	getListUC  usecases.GetAllocationListExecutor
	logger     logger.Interface
}

func NewHandler(
	assignUC usecases.AssignExecutor,
	unassignUC usecases.UnassignExecutor,
	qaListsUC usecases.ListQAAssetListsExecutor,
	getListUC usecases.GetAllocationListExecutor,
	log logger.Interface,
) *Handler {
	return &Handler{
		assignUC:   assignUC,
		unassignUC: unassignUC,
		qaListsUC:  qaListsUC,
		getListUC:  getListUC,
		logger:     log,
	}
}

// Assign godoc
// @Summary Assign assets
// @Description Bind assets to modelers or QA users. Modeler assignment creates one allocation list per user.
// @Tags allocation
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body AssignRequest true "Assignment request"
// @Success 201 {object} utils.APIResponse{data=dto.AssignResultDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /assets/assign [post]
func (h *Handler) Assign(c *gin.Context) {
	userID, _, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req AssignRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for assign", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd, err := req.ToCommand(userID)
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	result, err := h.assignUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Assets assigned successfully")
}

// Unassign godoc
// @Summary Unassign assets
// @Description Remove matching assignments and delete allocation lists left empty.
// @Tags allocation
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body UnassignRequest true "Unassignment request"
// @Success 200 {object} utils.APIResponse{data=dto.UnassignResultDTO}
// @Failure 400 {object} utils.APIResponse
// @Router /assets/assign [delete]
func (h *Handler) Unassign(c *gin.Context) {
	var req UnassignRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for unassign", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd, err := req.ToCommand()
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	result, err := h.unassignUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Assets unassigned successfully", result)
}

// ListQAAssetLists godoc
// @Summary List QA asset lists
// @Description Allocation lists the caller reviews as QA. Assets under a provisional override are shown only to the overriding QA.
// @Tags allocation
// @Produce json
// @Security Bearer
// @Param qaUserId query int false "QA user to inspect (admin only)"
// @Success 200 {object} utils.APIResponse{data=[]dto.QAAssetListDTO}
// @Router /qa/asset-lists [get]
func (h *Handler) ListQAAssetLists(c *gin.Context) {
	userID, role, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	qaUserID := userID
	if raw := c.Query("qaUserId"); raw != "" && role.IsAdmin() {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid QA user ID"))
			return
		}
		qaUserID = uint(id)
	}

	result, err := h.qaListsUC.Execute(c.Request.Context(), usecases.ListQAAssetListsQuery{QAUserID: qaUserID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetAllocationList godoc
// @Summary Get allocation list
// @Description Allocation list with its surviving assignments. Visible to admins and the list owner.
// @Tags allocation
// @Produce json
// @Security Bearer
// @Param id path int true "Allocation list ID"
// @Success 200 {object} utils.APIResponse{data=dto.AllocationListDetailDTO}
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /allocation-lists/{id} [get]
func (h *Handler) GetAllocationList(c *gin.Context) {
	userID, role, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	listID, err := utils.ParseUintParam(c, "id", "allocation list")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getListUC.Execute(c.Request.Context(), usecases.GetAllocationListQuery{
		ListID:        listID,
		RequesterID:   userID,
		RequesterRole: role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
