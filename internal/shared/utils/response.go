package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/assetflow/assetflow/internal/shared/errors"
)

// APIResponse is the envelope of every JSON body the API writes.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

type ErrorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// PageResponse wraps one page of a listing.
type PageResponse struct {
	Items    interface{} `json:"items"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

// typeByStatus names the error type for responses built from a bare status.
var typeByStatus = map[int]errors.ErrorType{
	http.StatusBadRequest:          errors.ErrorTypeBadRequest,
	http.StatusUnauthorized:        errors.ErrorTypeUnauthorized,
	http.StatusForbidden:           errors.ErrorTypeForbidden,
	http.StatusNotFound:            errors.ErrorTypeNotFound,
	http.StatusConflict:            errors.ErrorTypeConflict,
	http.StatusGone:                errors.ErrorTypeGone,
	http.StatusTooManyRequests:     errors.ErrorTypeRateLimited,
	http.StatusInternalServerError: errors.ErrorTypeInternal,
}

func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, APIResponse{Success: true, Data: data, Message: message})
}

func CreatedResponse(c *gin.Context, data interface{}, message ...string) {
	msg := "Resource created successfully"
	if len(message) > 0 {
		msg = message[0]
	}
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data, Message: msg})
}

// ErrorResponse writes an error envelope for a status the caller already knows.
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	t, ok := typeByStatus[statusCode]
	if !ok {
		t = "error"
	}
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error:   &ErrorInfo{Type: string(t), Message: message},
	})
}

// ErrorResponseWithError maps err onto a status and envelope. Errors that are
// not AppErrors become a generic 500 without their text.
func ErrorResponseWithError(c *gin.Context, err error) {
	status, info := errorInfoFor(err)
	c.JSON(status, APIResponse{Success: false, Error: &info})
}

func errorInfoFor(err error) (int, ErrorInfo) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		return http.StatusInternalServerError, ErrorInfo{
			Type:    string(errors.ErrorTypeInternal),
			Message: "Internal server error occurred",
		}
	}
	return appErr.Code, ErrorInfo{
		Type:    string(appErr.Type),
		Message: appErr.Message,
		Details: appErr.Details,
	}
}

func PageSuccessResponse(c *gin.Context, items interface{}, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data: PageResponse{
			Items:    items,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		},
	})
}

// MultiStatusResponse is used by batch endpoints whose items may partially
// fail. The status stays 200; success is false when at least one item failed.
func MultiStatusResponse(c *gin.Context, success bool, message string, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: success, Data: data, Message: message})
}

func NoContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
