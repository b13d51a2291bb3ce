package review

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/assetflow/assetflow/internal/application/review/usecases"
	"github.com/assetflow/assetflow/internal/infrastructure/token"
	"github.com/assetflow/assetflow/internal/interfaces/http/middleware"
	"github.com/assetflow/assetflow/internal/shared/errors"
	"github.com/assetflow/assetflow/internal/shared/logger"
	"github.com/assetflow/assetflow/internal/shared/utils"
)

// Handler serves invitation management for platform users and the
// token authenticated review surface for external reviewers.
type Handler struct {
	createUC    usecases.CreateInvitationExecutor
	cancelUC    usecases.CancelInvitationExecutor
	overviewUC  usecases.GetReviewOverviewExecutor
	submitUC    usecases.SubmitResponsesExecutor
	annotations usecases.AnnotationManager
	logger      logger.Interface
}

func NewHandler(
	createUC usecases.CreateInvitationExecutor,
	cancelUC usecases.CancelInvitationExecutor,
	overviewUC usecases.GetReviewOverviewExecutor,
	submitUC usecases.SubmitResponsesExecutor,
	annotations usecases.AnnotationManager,
	log logger.Interface,
) *Handler {
	return &Handler{
		createUC:    createUC,
		cancelUC:    cancelUC,
		overviewUC:  overviewUC,
		submitUC:    submitUC,
		annotations: annotations,
		logger:      log,
	}
}

// CreateInvitation godoc
// @Summary Create a shared review
// @Description Issue a review link for a set of assets. The token is returned once.
// @Tags shared-reviews
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body CreateInvitationRequest true "Invitation"
// @Success 201 {object} utils.APIResponse{data=dto.CreatedInvitationDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /shared-reviews [post]
func (h *Handler) CreateInvitation(c *gin.Context) {
	userID, _, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req CreateInvitationRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create invitation", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), req.ToCommand(userID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Review link created")
}

// CancelInvitation godoc
// @Summary Cancel a shared review
// @Tags shared-reviews
// @Produce json
// @Security Bearer
// @Param id path int true "Invitation ID"
// @Success 200 {object} utils.APIResponse{data=dto.InvitationDTO}
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /review-invitations/{id} [delete]
func (h *Handler) CancelInvitation(c *gin.Context) {
	userID, role, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
		return
	}

	invitationID, err := utils.ParseUintParam(c, "id", "invitation")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.cancelUC.Execute(c.Request.Context(), usecases.CancelInvitationCommand{
		InvitationID:  invitationID,
		RequesterID:   userID,
		RequesterRole: role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Review link cancelled", result)
}

// GetOverview godoc
// @Summary Review overview
// @Description Assets in scope of the review link with any recorded responses.
// @Tags shared-reviews
// @Produce json
// @Param token path string true "Review token"
// @Success 200 {object} utils.APIResponse{data=dto.ReviewOverviewDTO}
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 410 {object} utils.APIResponse
// @Router /shared-reviews/{token} [get]
func (h *Handler) GetOverview(c *gin.Context) {
	tok, ok := h.reviewToken(c)
	if !ok {
		return
	}

	result, err := h.overviewUC.Execute(c.Request.Context(), tok)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Submit godoc
// @Summary Submit review responses
// @Description Approve or request a revision per asset. Re-submitting an asset overwrites its earlier response.
// @Tags shared-reviews
// @Accept json
// @Produce json
// @Param token path string true "Review token"
// @Param request body SubmitRequest true "Responses"
// @Success 200 {object} utils.APIResponse{data=dto.SubmitResultDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 410 {object} utils.APIResponse
// @Router /shared-reviews/{token}/submit [post]
func (h *Handler) Submit(c *gin.Context) {
	tok, ok := h.reviewToken(c)
	if !ok {
		return
	}

	var req SubmitRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid review submission", "token", utils.MaskToken(tok), "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.submitUC.Execute(c.Request.Context(), req.ToCommand(tok))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.MultiStatusResponse(c, result.Success, result.Message, result)
}

// ListAnnotations godoc
// @Summary List annotations
// @Tags shared-reviews
// @Produce json
// @Param token path string true "Review token"
// @Param assetId query int false "Filter by asset"
// @Success 200 {object} utils.APIResponse{data=[]dto.AnnotationDTO}
// @Router /shared-reviews/{token}/annotations [get]
func (h *Handler) ListAnnotations(c *gin.Context) {
	tok, ok := h.reviewToken(c)
	if !ok {
		return
	}

	var assetID *uint
	if raw := c.Query("assetId"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || v == 0 {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid asset ID"))
			return
		}
		id := uint(v)
		assetID = &id
	}

	result, err := h.annotations.List(c.Request.Context(), tok, assetID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// CreateAnnotation godoc
// @Summary Create annotation
// @Tags shared-reviews
// @Accept json
// @Produce json
// @Param token path string true "Review token"
// @Param request body CreateAnnotationRequest true "Annotation"
// @Success 201 {object} utils.APIResponse{data=dto.AnnotationDTO}
// @Router /shared-reviews/{token}/annotations [post]
func (h *Handler) CreateAnnotation(c *gin.Context) {
	tok, ok := h.reviewToken(c)
	if !ok {
		return
	}

	var req CreateAnnotationRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.annotations.Create(c.Request.Context(), usecases.CreateAnnotationCommand{
		Token:    tok,
		AssetID:  req.AssetID,
		Content:  req.Content,
		Position: req.Position,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Annotation created")
}

// UpdateAnnotation godoc
// @Summary Update annotation
// @Tags shared-reviews
// @Accept json
// @Produce json
// @Param token path string true "Review token"
// @Param annotationId path int true "Annotation ID"
// @Param request body UpdateAnnotationRequest true "Annotation"
// @Success 200 {object} utils.APIResponse{data=dto.AnnotationDTO}
// @Router /shared-reviews/{token}/annotations/{annotationId} [put]
func (h *Handler) UpdateAnnotation(c *gin.Context) {
	tok, ok := h.reviewToken(c)
	if !ok {
		return
	}

	annotationID, err := utils.ParseUintParam(c, "annotationId", "annotation")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateAnnotationRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.annotations.Update(c.Request.Context(), usecases.UpdateAnnotationCommand{
		Token:        tok,
		AnnotationID: annotationID,
		Content:      req.Content,
		Position:     req.Position,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Annotation updated", result)
}

// DeleteAnnotation godoc
// @Summary Delete annotation
// @Tags shared-reviews
// @Param token path string true "Review token"
// @Param annotationId path int true "Annotation ID"
// @Success 204
// @Router /shared-reviews/{token}/annotations/{annotationId} [delete]
func (h *Handler) DeleteAnnotation(c *gin.Context) {
	tok, ok := h.reviewToken(c)
	if !ok {
		return
	}

	annotationID, err := utils.ParseUintParam(c, "annotationId", "annotation")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.annotations.Delete(c.Request.Context(), tok, annotationID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// reviewToken rejects malformed tokens before any lookup.
func (h *Handler) reviewToken(c *gin.Context) (string, bool) {
	tok := c.Param("token")
	if !token.LooksValid(tok) {
		utils.ErrorResponseWithError(c, errors.NewNotFoundError("review link not found"))
		return "", false
	}
	return tok, true
}
