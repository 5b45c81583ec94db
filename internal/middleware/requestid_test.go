package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDGenerated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RequestID()(c)

	id := c.GetString(ContextRequestID)
	require.NotEmpty(t, id)
	assert.Equal(t, id, w.Header().Get("X-Request-ID"))
}

func TestRequestIDEchoesClientHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("X-Request-ID", "client-supplied")

	RequestID()(c)

	assert.Equal(t, "client-supplied", c.GetString(ContextRequestID))
	assert.Equal(t, "client-supplied", w.Header().Get("X-Request-ID"))
}
