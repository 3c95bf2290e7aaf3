package server

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"portfolio/internal/models"

	"github.com/stretchr/testify/assert"
)

type blogEnvelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    models.Blog `json:"data"`
}

type blogListEnvelope struct {
	Success    bool              `json:"success"`
	Data       []models.Blog     `json:"data"`
	Pagination models.Pagination `json:"pagination"`
}

func TestCreateBlogStampsPublishedAt(t *testing.T) {
	s, db := setupTestServer(t)
	app := newTestApp(s)
	createTestUser(t, db, "admin@example.com", "password123")
	token := loginTestUser(t, app, "admin@example.com", "password123")

	var created blogEnvelope
	resp := doJSON(t, app, http.MethodPost, "/api/blogs", token, map[string]interface{}{
		"title":       "Building a Portfolio API in Go",
		"excerpt":     "Notes from rebuilding my site backend.",
		"content":     "The first thing I did was sketch the data model.",
		"isPublished": true,
	}, &created)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "building-a-portfolio-api-in-go", created.Data.Slug)
	assert.NotNil(t, created.Data.PublishedAt)
	assert.GreaterOrEqual(t, created.Data.ReadTime, 1)

	firstPublished := *created.Data.PublishedAt

	// Unpublishing keeps the original timestamp.
	var updated blogEnvelope
	resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/blogs/%d", created.Data.ID), token,
		map[string]interface{}{"isPublished": false}, &updated)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, updated.Data.IsPublished)
	assert.NotNil(t, updated.Data.PublishedAt)

	// Republishing does not move it either.
	time.Sleep(10 * time.Millisecond)
	resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/blogs/%d", created.Data.ID), token,
		map[string]interface{}{"isPublished": true}, &updated)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotNil(t, updated.Data.PublishedAt)
	assert.True(t, updated.Data.PublishedAt.Equal(firstPublished))
}

func TestGetBlogBySlugCountsViews(t *testing.T) {
	s, db := setupTestServer(t)
	app := newTestApp(s)
	createTestUser(t, db, "admin@example.com", "password123")
	token := loginTestUser(t, app, "admin@example.com", "password123")

	var created blogEnvelope
	doJSON(t, app, http.MethodPost, "/api/blogs", token, map[string]interface{}{
		"title":       "Counting Views",
		"excerpt":     "A post about counters.",
		"content":     "Every fetch by slug is a view.",
		"isPublished": true,
	}, &created)

	var fetched blogEnvelope
	for i := 0; i < 3; i++ {
		resp := doJSON(t, app, http.MethodGet, "/api/blogs/counting-views", "", nil, &fetched)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
	assert.Equal(t, int64(3), fetched.Data.Views)

	var stored models.Blog
	if err := db.First(&stored, created.Data.ID).Error; err != nil {
		t.Fatalf("reload blog: %v", err)
	}
	assert.Equal(t, int64(3), stored.Views)
}

func TestDuplicateSlugRejected(t *testing.T) {
	s, db := setupTestServer(t)
	app := newTestApp(s)
	createTestUser(t, db, "admin@example.com", "password123")
	token := loginTestUser(t, app, "admin@example.com", "password123")

	post := map[string]interface{}{
		"title":       "First Post",
		"slug":        "shared-slug",
		"excerpt":     "The original.",
		"content":     "Original content.",
		"isPublished": true,
	}
	var created blogEnvelope
	resp := doJSON(t, app, http.MethodPost, "/api/blogs", token, post, &created)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	post["title"] = "Second Post"
	post["content"] = "Different content."
	var conflict struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	resp = doJSON(t, app, http.MethodPost, "/api/blogs", token, post, &conflict)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Blog with this slug already exists", conflict.Message)

	// The original post is untouched.
	var stored models.Blog
	if err := db.Where("slug = ?", "shared-slug").First(&stored).Error; err != nil {
		t.Fatalf("reload blog: %v", err)
	}
	assert.Equal(t, "First Post", stored.Title)
	assert.Equal(t, "Original content.", stored.Content)
}

func TestPublicListOmitsDraftsAndContent(t *testing.T) {
	s, db := setupTestServer(t)
	app := newTestApp(s)
	createTestUser(t, db, "admin@example.com", "password123")
	token := loginTestUser(t, app, "admin@example.com", "password123")

	for _, post := range []map[string]interface{}{
		{"title": "Published Post", "excerpt": "e", "content": "long body text", "isPublished": true},
		{"title": "Draft Post", "excerpt": "e", "content": "unfinished", "isPublished": false},
	} {
		resp := doJSON(t, app, http.MethodPost, "/api/blogs", token, post, nil)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	var list blogListEnvelope
	resp := doJSON(t, app, http.MethodGet, "/api/blogs", "", nil, &list)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, list.Data, 1)
	assert.Equal(t, "Published Post", list.Data[0].Title)
	assert.Empty(t, list.Data[0].Content)

	// The admin listing sees both.
	var all blogListEnvelope
	resp = doJSON(t, app, http.MethodGet, "/api/blogs/admin/all", token, nil, &all)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, all.Data, 2)

	var drafts blogListEnvelope
	resp = doJSON(t, app, http.MethodGet, "/api/blogs/admin/all?status=draft", token, nil, &drafts)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, drafts.Data, 1)
	assert.Equal(t, "Draft Post", drafts.Data[0].Title)
}

func TestDraftNotVisibleBySlug(t *testing.T) {
	s, db := setupTestServer(t)
	app := newTestApp(s)
	createTestUser(t, db, "admin@example.com", "password123")
	token := loginTestUser(t, app, "admin@example.com", "password123")

	resp := doJSON(t, app, http.MethodPost, "/api/blogs", token, map[string]interface{}{
		"title":       "Hidden Draft",
		"excerpt":     "e",
		"content":     "not ready yet",
		"isPublished": false,
	}, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/blogs/hidden-draft", "", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestDeleteBlog(t *testing.T) {
	s, db := setupTestServer(t)
	app := newTestApp(s)
	createTestUser(t, db, "admin@example.com", "password123")
	token := loginTestUser(t, app, "admin@example.com", "password123")

	var created blogEnvelope
	doJSON(t, app, http.MethodPost, "/api/blogs", token, map[string]interface{}{
		"title": "Short Lived", "excerpt": "e", "content": "c", "isPublished": true,
	}, &created)

	resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/blogs/%d", created.Data.ID), token, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/blogs/%d", created.Data.ID), token, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
