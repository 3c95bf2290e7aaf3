package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginAndAccessProtectedRoute(t *testing.T) {
	s, db := setupTestServer(t)
	app := newTestApp(s)
	createTestUser(t, db, "admin@example.com", "password123")

	token := loginTestUser(t, app, "admin@example.com", "password123")

	var profile struct {
		Success bool `json:"success"`
		Data    struct {
			Email string `json:"email"`
		} `json:"data"`
	}
	resp := doJSON(t, app, http.MethodGet, "/api/auth/profile", token, nil, &profile)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, profile.Success)
	assert.Equal(t, "admin@example.com", profile.Data.Email)
}

func TestVerifyEndpointEchoesCaller(t *testing.T) {
	s, db := setupTestServer(t)
	app := newTestApp(s)
	user := createTestUser(t, db, "admin@example.com", "password123")

	token := loginTestUser(t, app, "admin@example.com", "password123")

	var verified struct {
		Success bool `json:"success"`
		Data    struct {
			ID    uint   `json:"id"`
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"data"`
	}
	resp := doJSON(t, app, http.MethodGet, "/api/auth/verify", token, nil, &verified)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, verified.Success)
	assert.Equal(t, user.ID, verified.Data.ID)
	assert.Equal(t, "admin@example.com", verified.Data.Email)
	assert.Equal(t, "admin", verified.Data.Role)

	var anon struct {
		Success bool `json:"success"`
	}
	resp = doJSON(t, app, http.MethodGet, "/api/auth/verify", "", nil, &anon)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, anon.Success)
}

func TestLoginInvalidCredentials(t *testing.T) {
	s, db := setupTestServer(t)
	app := newTestApp(s)
	createTestUser(t, db, "admin@example.com", "password123")

	// Wrong password and unknown account must be indistinguishable.
	var messages []string
	for _, body := range []map[string]string{
		{"email": "admin@example.com", "password": "wrong-password"},
		{"email": "nobody@example.com", "password": "password123"},
	} {
		var parsed struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
		}
		resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", body, &parsed)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.False(t, parsed.Success)
		messages = append(messages, parsed.Message)
	}
	assert.Equal(t, messages[0], messages[1])
	assert.Equal(t, "Invalid credentials", messages[0])
}

func TestAuthRequiredRejectionMessages(t *testing.T) {
	s, _ := setupTestServer(t)
	app := newTestApp(s)

	var parsed struct {
		Message string `json:"message"`
	}
	resp := doJSON(t, app, http.MethodGet, "/api/auth/profile", "", nil, &parsed)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Access denied. No token provided.", parsed.Message)

	resp = doJSON(t, app, http.MethodGet, "/api/auth/profile", "not-a-real-token", nil, &parsed)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid token.", parsed.Message)
}

func TestDeactivatedUserTokenRejected(t *testing.T) {
	s, db := setupTestServer(t)
	app := newTestApp(s)
	user := createTestUser(t, db, "admin@example.com", "password123")

	token := loginTestUser(t, app, "admin@example.com", "password123")

	// Token works while the account is active.
	resp := doJSON(t, app, http.MethodGet, "/api/auth/profile", token, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Deactivation takes effect immediately, not at token expiry.
	if err := db.Model(user).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate user: %v", err)
	}

	var parsed struct {
		Message string `json:"message"`
	}
	resp = doJSON(t, app, http.MethodGet, "/api/auth/profile", token, nil, &parsed)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid token. User not found or inactive.", parsed.Message)
}

func TestRegisterRequiresAuthentication(t *testing.T) {
	s, _ := setupTestServer(t)
	app := newTestApp(s)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterAndChangePassword(t *testing.T) {
	s, db := setupTestServer(t)
	app := newTestApp(s)
	createTestUser(t, db, "admin@example.com", "password123")
	token := loginTestUser(t, app, "admin@example.com", "password123")

	var created struct {
		Success bool `json:"success"`
		Data    struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"data"`
	}
	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", token, map[string]string{
		"name":     "Second Admin",
		"email":    "Second@Example.com",
		"password": "secret123",
		"role":     "admin",
	}, &created)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "second@example.com", created.Data.Email)
	assert.Equal(t, "admin", created.Data.Role)

	// Duplicate email is rejected.
	resp = doJSON(t, app, http.MethodPost, "/api/auth/register", token, map[string]string{
		"name":     "Dup",
		"email":    "second@example.com",
		"password": "secret123",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Password change invalidates the old credential.
	resp = doJSON(t, app, http.MethodPut, "/api/auth/change-password", token, map[string]string{
		"currentPassword": "password123",
		"newPassword":     "betterpass456",
	}, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	body := jsonBody(t, map[string]string{"email": "admin@example.com", "password": "password123"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	oldLogin, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer oldLogin.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, oldLogin.StatusCode)

	loginTestUser(t, app, "admin@example.com", "betterpass456")
}
