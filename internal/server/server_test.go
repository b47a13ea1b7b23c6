package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"telegram-pager-bot/internal/pager"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer(t *testing.T) {
	registry := pager.NewRegistry()
	srv := New("localhost:8080", registry)

	t.Run("Health Check", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/health", nil)
		rr := httptest.NewRecorder()
		srv.HTTPServer.Handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp map[string]string
		err := json.NewDecoder(rr.Body).Decode(&resp)
		require.NoError(t, err)
		assert.Equal(t, "ok", resp["status"])
	})

	t.Run("Sessions Empty", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/sessions", nil)
		rr := httptest.NewRecorder()
		srv.HTTPServer.Handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			ActiveSessions int                `json:"active_sessions"`
			Refs           []pager.MessageRef `json:"refs"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, 0, resp.ActiveSessions)
		assert.Empty(t, resp.Refs)
	})

	t.Run("Sessions Listed", func(t *testing.T) {
		ref := pager.MessageRef{ChatID: 7, MessageID: 42}
		require.NoError(t, registry.Register(ref, stubHandler{}))
		defer registry.Deregister(ref)

		req := httptest.NewRequest("GET", "/api/v1/sessions", nil)
		rr := httptest.NewRecorder()
		srv.HTTPServer.Handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			ActiveSessions int                `json:"active_sessions"`
			Refs           []pager.MessageRef `json:"refs"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, 1, resp.ActiveSessions)
		require.Len(t, resp.Refs, 1)
		assert.Equal(t, ref, resp.Refs[0])
	})
}

type stubHandler struct{}

func (stubHandler) Authorized(int64) bool                 { return true }
func (stubHandler) HandleControl(pager.Activation) bool   { return true }
