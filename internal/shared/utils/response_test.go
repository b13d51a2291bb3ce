package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetflow/assetflow/internal/shared/errors"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestErrorResponse_TypesFromStatus(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{http.StatusUnauthorized, "unauthorized"},
		{http.StatusForbidden, "forbidden"},
		{http.StatusTooManyRequests, "rate_limited"},
		{http.StatusTeapot, "error"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c, w := newContext()

			ErrorResponse(c, tt.status, "nope")

			assert.Equal(t, tt.status, w.Code)
			resp := decode(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.want, resp.Error.Type)
			assert.Equal(t, "nope", resp.Error.Message)
		})
	}
}

func TestErrorResponseWithError(t *testing.T) {
	t.Run("app error keeps its status and details", func(t *testing.T) {
		c, w := newContext()

		ErrorResponseWithError(c, fmt.Errorf("wrapped: %w", errors.NewGoneError("review link expired", "expired at 2026-03-01")))

		assert.Equal(t, http.StatusGone, w.Code)
		resp := decode(t, w)
		assert.Equal(t, "gone", resp.Error.Type)
		assert.Equal(t, "review link expired", resp.Error.Message)
		assert.Equal(t, "expired at 2026-03-01", resp.Error.Details)
	})

	t.Run("plain error is hidden", func(t *testing.T) {
		c, w := newContext()

		ErrorResponseWithError(c, fmt.Errorf("dial tcp 10.0.0.3:3306: refused"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		resp := decode(t, w)
		assert.Equal(t, "internal_error", resp.Error.Type)
		assert.NotContains(t, resp.Error.Message, "10.0.0.3")
	})
}

func TestPageSuccessResponse(t *testing.T) {
	c, w := newContext()

	PageSuccessResponse(c, []int{1, 2}, 12, 2, 2)

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data PageResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(12), body.Data.Total)
	assert.Equal(t, 2, body.Data.Page)
}

func TestMultiStatusResponse_PartialFailure(t *testing.T) {
	c, w := newContext()

	MultiStatusResponse(c, false, "1 succeeded, 1 failed", map[string]int{"failed": 1})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "1 succeeded, 1 failed", resp.Message)
}
