package server

import (
	"fmt"
	"net/http"
	"testing"

	"portfolio/internal/models"

	"github.com/stretchr/testify/assert"
)

type projectEnvelope struct {
	Success bool           `json:"success"`
	Data    models.Project `json:"data"`
}

type projectListEnvelope struct {
	Success    bool              `json:"success"`
	Data       []models.Project  `json:"data"`
	Pagination models.Pagination `json:"pagination"`
}

func TestProjectListOrderingAndMeta(t *testing.T) {
	s, db := setupTestServer(t)
	app := newTestApp(s)
	createTestUser(t, db, "admin@example.com", "password123")
	token := loginTestUser(t, app, "admin@example.com", "password123")

	projects := []map[string]interface{}{
		{
			"title":        "CLI Tool",
			"description":  "A small command line helper.",
			"technologies": []string{"Go"},
			"images":       []string{"https://example.com/cli.png"},
			"category":     "cli",
			"featured":     false,
		},
		{
			"title":        "Web App",
			"description":  "The flagship project.",
			"technologies": []string{"Go", "React"},
			"images":       []string{"https://example.com/web.png"},
			"category":     "web",
			"featured":     true,
		},
	}
	for _, p := range projects {
		var created projectEnvelope
		resp := doJSON(t, app, http.MethodPost, "/api/projects", token, p, &created)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	// Featured projects sort first even when created earlier.
	var list projectListEnvelope
	resp := doJSON(t, app, http.MethodGet, "/api/projects", "", nil, &list)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, list.Data, 2)
	assert.Equal(t, "Web App", list.Data[0].Title)

	var featured projectListEnvelope
	resp = doJSON(t, app, http.MethodGet, "/api/projects?featured=true", "", nil, &featured)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, featured.Data, 1)

	var byTech projectListEnvelope
	resp = doJSON(t, app, http.MethodGet, "/api/projects?technology=React", "", nil, &byTech)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, byTech.Data, 1)
	assert.Equal(t, "Web App", byTech.Data[0].Title)

	var categories struct {
		Data []string `json:"data"`
	}
	resp = doJSON(t, app, http.MethodGet, "/api/projects/meta/categories", "", nil, &categories)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.ElementsMatch(t, []string{"cli", "web"}, categories.Data)

	var technologies struct {
		Data []string `json:"data"`
	}
	resp = doJSON(t, app, http.MethodGet, "/api/projects/meta/technologies", "", nil, &technologies)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.ElementsMatch(t, []string{"Go", "React"}, technologies.Data)
}

func TestProjectValidation(t *testing.T) {
	s, db := setupTestServer(t)
	app := newTestApp(s)
	createTestUser(t, db, "admin@example.com", "password123")
	token := loginTestUser(t, app, "admin@example.com", "password123")

	var parsed struct {
		Success bool `json:"success"`
		Errors  []struct {
			Field string `json:"field"`
		} `json:"errors"`
	}
	resp := doJSON(t, app, http.MethodPost, "/api/projects", token, map[string]interface{}{
		"title":       "No Tech",
		"description": "Missing required collections.",
	}, &parsed)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, parsed.Success)

	var fields []string
	for _, fe := range parsed.Errors {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, "technologies")
	assert.Contains(t, fields, "images")
}

func TestProjectUpdateAndDelete(t *testing.T) {
	s, db := setupTestServer(t)
	app := newTestApp(s)
	createTestUser(t, db, "admin@example.com", "password123")
	token := loginTestUser(t, app, "admin@example.com", "password123")

	var created projectEnvelope
	doJSON(t, app, http.MethodPost, "/api/projects", token, map[string]interface{}{
		"title":        "Mutable Project",
		"description":  "Before update.",
		"technologies": []string{"Go"},
		"images":       []string{"https://example.com/a.png"},
	}, &created)

	var updated projectEnvelope
	resp := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/projects/%d", created.Data.ID), token,
		map[string]interface{}{"description": "After update.", "featured": true}, &updated)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "After update.", updated.Data.Description)
	assert.True(t, updated.Data.Featured)
	// Untouched fields survive partial updates.
	assert.Equal(t, "Mutable Project", updated.Data.Title)
	assert.Equal(t, []string{"Go"}, updated.Data.Technologies)

	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/projects/%d", created.Data.ID), token, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/projects/%d", created.Data.ID), "", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
