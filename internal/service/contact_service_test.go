package service

import (
	"context"
	"testing"

	"portfolio/internal/models"
	"portfolio/internal/repository"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestContactService(t *testing.T) *ContactService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Contact{}); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return NewContactService(repository.NewContactRepository(db))
}

func TestSubmitCapturesClientMetadata(t *testing.T) {
	svc := newTestContactService(t)

	contact, err := svc.Submit(context.Background(), SubmitContactInput{
		Name:      "Visitor",
		Email:     "Visitor@Example.com",
		Message:   "Hello there",
		IPAddress: "203.0.113.7",
		UserAgent: "Mozilla/5.0",
	})
	assert.NoError(t, err)
	assert.Equal(t, "visitor@example.com", contact.Email)
	assert.Equal(t, "203.0.113.7", contact.IPAddress)
	assert.False(t, contact.IsRead)
}

func TestSubmitValidatesFields(t *testing.T) {
	svc := newTestContactService(t)

	_, err := svc.Submit(context.Background(), SubmitContactInput{
		Name:    "",
		Email:   "not-an-email",
		Message: "",
	})
	assert.Error(t, err)

	var appErr *models.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Len(t, appErr.Fields, 3)
}

func TestClientSummary(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want string
	}{
		{
			"chrome on windows",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Chrome 120 on Windows",
		},
		{
			"empty",
			"",
			"Unknown client",
		},
		{
			"gibberish",
			"definitely-not-a-browser",
			"Unknown client",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClientSummary(tt.ua))
		})
	}
}
