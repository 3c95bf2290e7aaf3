package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"portfolio/internal/models"
	"portfolio/internal/observability"
	"portfolio/internal/repository"
	"portfolio/internal/validation"

	"github.com/mileusna/useragent"
)

type ContactService struct {
	contactRepo repository.ContactRepository
}

func NewContactService(contactRepo repository.ContactRepository) *ContactService {
	return &ContactService{contactRepo: contactRepo}
}

type SubmitContactInput struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

type ListContactsInput struct {
	Page   int
	Limit  int
	Status string // "", "read" or "unread"
}

// Submit records an inbound contact message from the public site.
func (s *ContactService) Submit(ctx context.Context, in SubmitContactInput) (*models.Contact, error) {
	var fields []models.FieldError
	if err := validation.ValidateRequiredString("name", in.Name, validation.MaxNameLength); err != nil {
		fields = append(fields, models.FieldError{Field: "name", Message: err.Error()})
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		fields = append(fields, models.FieldError{Field: "email", Message: err.Error()})
	}
	if err := validation.ValidateRequiredString("message", in.Message, validation.MaxMessageLength); err != nil {
		fields = append(fields, models.FieldError{Field: "message", Message: err.Error()})
	}
	if len(fields) > 0 {
		return nil, models.NewFieldValidationError(fields...)
	}

	contact := &models.Contact{
		Name:      strings.TrimSpace(in.Name),
		Email:     validation.NormalizeEmail(in.Email),
		Message:   strings.TrimSpace(in.Message),
		IPAddress: in.IPAddress,
		UserAgent: in.UserAgent,
	}
	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, err
	}
	observability.ContactMessages.Inc()
	return contact, nil
}

// List returns a page of messages plus the total unread count, which
// the dashboard shows as a badge regardless of the active filter.
func (s *ContactService) List(ctx context.Context, caller *models.Caller, in ListContactsInput) ([]models.Contact, *models.Pagination, int64, error) {
	if caller == nil {
		return nil, nil, 0, models.NewUnauthorizedError("Authentication required")
	}

	in.Page, in.Limit = normalizePage(in.Page, in.Limit)
	filter := repository.ContactFilter{
		Page:  in.Page,
		Limit: in.Limit,
	}
	switch in.Status {
	case "":
	case "read":
		read := true
		filter.IsRead = &read
	case "unread":
		read := false
		filter.IsRead = &read
	default:
		return nil, nil, 0, models.NewFieldValidationError(models.FieldError{
			Field: "status", Message: "status must be 'read' or 'unread'",
		})
	}

	contacts, total, err := s.contactRepo.List(ctx, filter)
	if err != nil {
		return nil, nil, 0, err
	}
	unread, err := s.contactRepo.CountUnread(ctx)
	if err != nil {
		return nil, nil, 0, err
	}
	return contacts, models.NewPagination(in.Page, in.Limit, total), unread, nil
}

// Get fetches a single message and marks it read.
func (s *ContactService) Get(ctx context.Context, caller *models.Caller, id uint) (*models.Contact, error) {
	if caller == nil {
		return nil, models.NewUnauthorizedError("Authentication required")
	}

	contact, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !contact.IsRead {
		contact.IsRead = true
		if err := s.contactRepo.Update(ctx, contact); err != nil {
			return nil, err
		}
	}
	return contact, nil
}

// SetRead toggles the read flag in either direction.
func (s *ContactService) SetRead(ctx context.Context, caller *models.Caller, id uint, isRead bool) (*models.Contact, error) {
	if caller == nil {
		return nil, models.NewUnauthorizedError("Authentication required")
	}

	contact, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	contact.IsRead = isRead
	if err := s.contactRepo.Update(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// Reply records that the message was answered and what was said.
// A replied message is always read.
func (s *ContactService) Reply(ctx context.Context, caller *models.Caller, id uint, replyMessage string) (*models.Contact, error) {
	if caller == nil {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	if err := validation.ValidateRequiredString("replyMessage", replyMessage, validation.MaxMessageLength); err != nil {
		return nil, models.NewFieldValidationError(models.FieldError{
			Field: "replyMessage", Message: err.Error(),
		})
	}

	contact, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	contact.Replied = true
	contact.ReplyMessage = strings.TrimSpace(replyMessage)
	contact.RepliedAt = &now
	contact.IsRead = true

	if err := s.contactRepo.Update(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// Delete removes a message permanently.
func (s *ContactService) Delete(ctx context.Context, caller *models.Caller, id uint) error {
	if caller == nil {
		return models.NewUnauthorizedError("Authentication required")
	}
	return s.contactRepo.Delete(ctx, id)
}

// ClientSummary renders the captured User-Agent as a short
// human-readable label for the dashboard, e.g. "Chrome 120 on Windows".
func ClientSummary(rawUA string) string {
	if rawUA == "" {
		return "Unknown client"
	}
	ua := useragent.Parse(rawUA)
	if ua.Name == "" {
		return "Unknown client"
	}

	name := ua.Name
	if ua.Version != "" {
		name = fmt.Sprintf("%s %s", ua.Name, majorVersion(ua.Version))
	}
	if ua.OS == "" {
		return name
	}
	return fmt.Sprintf("%s on %s", name, ua.OS)
}

func majorVersion(v string) string {
	if i := strings.IndexByte(v, '.'); i > 0 {
		return v[:i]
	}
	return v
}
