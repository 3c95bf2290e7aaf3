package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"portfolio/internal/config"
	"portfolio/internal/models"
	"portfolio/internal/repository"
	"portfolio/internal/service"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret-for-handler-tests-0123456789"

// setupTestServer builds a Server backed by an in-memory database.
// The prometheus middleware is left nil so repeated setup across tests
// does not re-register collectors.
func setupTestServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Blog{},
		&models.Project{},
		&models.Contact{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	cfg := &config.Config{
		JWTSecret:   testJWTSecret,
		SiteAuthor:  "Test Author",
		UploadDir:   t.TempDir(),
		MaxUploadMB: 50,
	}

	s := &Server{
		config:      cfg,
		db:          db,
		userRepo:    repository.NewUserRepository(db),
		blogRepo:    repository.NewBlogRepository(db),
		projectRepo: repository.NewProjectRepository(db),
		contactRepo: repository.NewContactRepository(db),
	}
	s.userService = service.NewUserService(s.userRepo, cfg.JWTSecret)
	s.blogService = service.NewBlogService(s.blogRepo, cfg.SiteAuthor)
	s.projectService = service.NewProjectService(s.projectRepo)
	s.contactService = service.NewContactService(s.contactRepo)
	s.uploadService = service.NewUploadService(cfg.UploadDir, int64(cfg.MaxUploadMB)*1024*1024)

	return s, db
}

func newTestApp(s *Server) *fiber.App {
	app := fiber.New()
	s.SetupRoutes(app)
	return app
}

// createTestUser inserts an active user with the given password hashed
// at the minimum cost to keep tests fast.
func createTestUser(t *testing.T, db *gorm.DB, email, password string) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		Name:     "Test User",
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

// loginTestUser performs a real login through the HTTP surface and
// returns the issued token.
func loginTestUser(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()

	body := jsonBody(t, map[string]string{"email": email, "password": password})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", resp.StatusCode)
	}

	var parsed struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if parsed.Data.Token == "" {
		t.Fatal("login: empty token")
	}
	return parsed.Data.Token
}

func jsonBody(t *testing.T, v interface{}) *bytes.Reader {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return bytes.NewReader(raw)
}

// doJSON issues a request with an optional bearer token and decodes the
// envelope into out (which may be nil).
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}, out interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		reader = jsonBody(t, body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if out != nil {
		defer resp.Body.Close()
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp
}
