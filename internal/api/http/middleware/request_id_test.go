package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRouter(seen *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) {
		*seen = GetRequestID(c.Request.Context())
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestRequestID_EchoesIncomingHeader(t *testing.T) {
	var seen string
	r := newRouter(&seen)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "abc-123", rr.Header().Get(HeaderRequestID))
	assert.Equal(t, "abc-123", seen)
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	var seen string
	r := newRouter(&seen)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))

	rid := rr.Header().Get(HeaderRequestID)
	assert.Len(t, rid, 36)
	assert.Equal(t, rid, seen)
}

func TestGetRequestID_Empty(t *testing.T) {
	assert.Equal(t, "", GetRequestID(context.Background()))
	assert.Equal(t, "job-1", GetRequestID(WithRequestID(context.Background(), "job-1")))
}
