package requestid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, header string) (*httptest.ResponseRecorder, string, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var fromGin, fromRequest string
	router := gin.New()
	router.Use(Middleware())
	router.GET("/ping", func(c *gin.Context) {
		fromGin = Value(c)
		fromRequest = FromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if header != "" {
		req.Header.Set(headerKey, header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w, fromGin, fromRequest
}

func TestMiddleware(t *testing.T) {
	t.Run("Caller id is kept", func(t *testing.T) {
		w, fromGin, fromRequest := serve(t, "batch-7.run:2")

		assert.Equal(t, "batch-7.run:2", w.Header().Get(headerKey))
		assert.Equal(t, "batch-7.run:2", fromGin)
		assert.Equal(t, "batch-7.run:2", fromRequest)
	})

	t.Run("Missing id is generated", func(t *testing.T) {
		w, fromGin, fromRequest := serve(t, "")

		_, err := uuid.Parse(w.Header().Get(headerKey))
		require.NoError(t, err)
		assert.Equal(t, fromGin, fromRequest)
	})

	for name, header := range map[string]string{
		"Spaces":    "drop table",
		"Too long":  strings.Repeat("a", 65),
		"Injection": "id\",\"level\":\"fatal",
	} {
		t.Run(name, func(t *testing.T) {
			w, fromGin, _ := serve(t, header)

			assert.NotEqual(t, header, fromGin)
			_, err := uuid.Parse(w.Header().Get(headerKey))
			assert.NoError(t, err)
		})
	}
}

func TestFromContext(t *testing.T) {
	assert.Empty(t, FromContext(context.Background()))
	assert.Equal(t, "abc", FromContext(WithValue(context.Background(), "abc")))
}
