package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err error
}

func (s *stubPinger) Ping(ctx context.Context) error {
	return s.err
}

func getHealth(pinger Pinger) (*httptest.ResponseRecorder, map[string]string) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", NewHealthHandler(pinger).Check)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestHealth_StoreReachable(t *testing.T) {
	w, body := getHealth(&stubPinger{})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "ok", body["store"])
}

func TestHealth_StoreUnreachable(t *testing.T) {
	w, body := getHealth(&stubPinger{err: errors.New("connection refused")})

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "unreachable", body["store"])
}
