package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"highpass/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueWSTicket(t *testing.T) {
	ts := newTestServer(t)
	user := ts.createUser(t, "Socket User", "socket@example.com", models.RoleTourist)
	token := ts.token(t, user)

	resp, body := ts.request(t, http.MethodPost, "/api/ws/ticket", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	ticket, _ := body["ticket"].(string)
	require.NotEmpty(t, ticket)
	assert.Equal(t, float64(30), body["expires_in"])

	// Stored in Redis keyed to the issuing user
	ctx := context.Background()
	stored, err := ts.rdb.Get(ctx, fmt.Sprintf("ws_ticket:%s", ticket)).Result()
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprint(user.ID), stored)

	ttl, err := ts.rdb.TTL(ctx, fmt.Sprintf("ws_ticket:%s", ticket)).Result()
	require.NoError(t, err)
	assert.LessOrEqual(t, ttl, 30*time.Second)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestAuthRequired_WSTicket(t *testing.T) {
	ts := newTestServer(t)
	user := ts.createUser(t, "Ticketed", "ticketed@example.com", models.RoleTourist)

	// A non-upgrade probe route behind the same middleware, since app.Test
	// cannot perform a real websocket handshake.
	ts.app.Get("/api/ws/probe", ts.srv.AuthRequired(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"userID": c.Locals("userID")})
	})

	issue := func(t *testing.T) string {
		resp, body := ts.request(t, http.MethodPost, "/api/ws/ticket", ts.token(t, user), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		return body["ticket"].(string)
	}

	t.Run("Valid Ticket Authenticates And Is Consumed", func(t *testing.T) {
		ticket := issue(t)

		req := httptest.NewRequest(http.MethodGet, "/api/ws/probe?ticket="+ticket, nil)
		resp, err := ts.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()

		// Single-use: the key is gone
		exists, err := ts.rdb.Exists(context.Background(), "ws_ticket:"+ticket).Result()
		require.NoError(t, err)
		assert.Equal(t, int64(0), exists)

		// Replaying the consumed ticket fails
		req2 := httptest.NewRequest(http.MethodGet, "/api/ws/probe?ticket="+ticket, nil)
		resp2, err := ts.app.Test(req2)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp2.StatusCode)
		_ = resp2.Body.Close()
	})

	t.Run("Invalid Ticket Rejected On WS Path", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/ws/probe?ticket=bogus", nil)
		resp, err := ts.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("Ticket Issuance Requires Auth", func(t *testing.T) {
		resp, _ := ts.request(t, http.MethodPost, "/api/ws/ticket", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
