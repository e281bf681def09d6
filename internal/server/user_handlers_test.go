package server

import (
	"fmt"
	"net/http"
	"testing"

	"highpass/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateMyProfile(t *testing.T) {
	ts := newTestServer(t)
	user := ts.createUser(t, "Old Name", "profile@example.com", models.RoleTourist)
	token := ts.token(t, user)

	resp, body := ts.request(t, http.MethodPut, "/api/users/me", token, map[string]interface{}{
		"name":   "New Name",
		"avatar": "https://img.example.com/a.png",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "New Name", body["name"])
	assert.Equal(t, "https://img.example.com/a.png", body["avatar"])

	var stored models.User
	require.NoError(t, ts.db.First(&stored, user.ID).Error)
	assert.Equal(t, "New Name", stored.Name)
}

func TestSetUserRole(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.createUser(t, "Admin", "roleadmin@example.com", models.RoleAdmin)
	tourist := ts.createUser(t, "Promotee", "promotee@example.com", models.RoleTourist)

	t.Run("Admin Promotes To Official", func(t *testing.T) {
		resp, body := ts.request(t, http.MethodPut, fmt.Sprintf("/api/users/%d/role", tourist.ID), ts.token(t, admin), map[string]interface{}{
			"role": "official",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "official", body["role"])
	})

	t.Run("Invalid Role", func(t *testing.T) {
		resp, _ := ts.request(t, http.MethodPut, fmt.Sprintf("/api/users/%d/role", tourist.ID), ts.token(t, admin), map[string]interface{}{
			"role": "superuser",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Non-Admin Forbidden", func(t *testing.T) {
		other := ts.createUser(t, "Plain", "plain@example.com", models.RoleTourist)
		resp, _ := ts.request(t, http.MethodPut, fmt.Sprintf("/api/users/%d/role", other.ID), ts.token(t, other), map[string]interface{}{
			"role": "admin",
		})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestGetDestinationsPublic(t *testing.T) {
	ts := newTestServer(t)
	ts.createDestination(t, "Dah-Hanu", "dah-hanu", 70000)
	inactive := &models.Destination{Name: "Closed Zone", Slug: "closed-zone", Active: false, Currency: "INR"}
	require.NoError(t, ts.db.Create(inactive).Error)

	t.Run("Lists Only Active Without Auth", func(t *testing.T) {
		resp, list := ts.requestList(t, http.MethodGet, "/api/destinations", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, list, 1)
		assert.Equal(t, "Dah-Hanu", list[0]["name"])
	})

	t.Run("Detail By Slug", func(t *testing.T) {
		resp, body := ts.request(t, http.MethodGet, "/api/destinations/dah-hanu", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(70000), body["price_per_night"])
	})

	t.Run("Unknown Slug", func(t *testing.T) {
		resp, body := ts.request(t, http.MethodGet, "/api/destinations/atlantis", "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", body["code"])
	})
}
