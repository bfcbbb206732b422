package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaginationMeta(t *testing.T) {
	assert.Equal(t, PaginationMeta{Total: 21, TotalPages: 3, Page: 2, PageSize: 10}, NewPaginationMeta(21, 2, 10))
	assert.Equal(t, 0, NewPaginationMeta(5, 1, 0).TotalPages)
	assert.Equal(t, 1, NewPaginationMeta(10, 1, 10).TotalPages)
}

func TestEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		meta := NewPaginationMeta(1, 1, 1)

		Success(c, http.StatusCreated, gin.H{"id": "x"}, &meta)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, true, body["ok"])
		assert.Equal(t, "x", body["data"].(map[string]any)["id"])
		assert.NotContains(t, body, "error")
	})

	t.Run("error", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		Error(c, http.StatusConflict, "CONFLICT", "ticket is being processed", nil)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, false, body["ok"])
		errBody := body["error"].(map[string]any)
		assert.Equal(t, "CONFLICT", errBody["code"])
		assert.Equal(t, "ticket is being processed", errBody["message"])
		assert.NotContains(t, body, "data")
	})
}
