package server

import (
	"portfolio/internal/models"
	"portfolio/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SubmitContact handles POST /api/contact
func (s *Server) SubmitContact(c *fiber.Ctx) error {
	var req service.SubmitContactInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	req.IPAddress = c.IP()
	req.UserAgent = c.Get("User-Agent")

	contact, err := s.contactService.Submit(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusCreated,
		"Thank you for your message! I will get back to you soon.", fiber.Map{
			"id": contact.ID,
		})
}

// GetContacts handles GET /api/contact
func (s *Server) GetContacts(c *fiber.Ctx) error {
	page := parsePageQuery(c)

	contacts, pagination, unread, err := s.contactService.List(c.Context(), callerFromCtx(c), service.ListContactsInput{
		Page:   page.Page,
		Limit:  page.Limit,
		Status: c.Query("status"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondPage(c, contacts, pagination, fiber.Map{
		"unreadCount": unread,
	})
}

// GetContact handles GET /api/contact/:id
func (s *Server) GetContact(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	contact, err := s.contactService.Get(c.Context(), callerFromCtx(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    contact,
		"meta": fiber.Map{
			"clientSummary": service.ClientSummary(contact.UserAgent),
		},
	})
}

// MarkContactRead handles PUT /api/contact/:id/read
func (s *Server) MarkContactRead(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	// Defaults to marking read; {"isRead": false} flips it back.
	req := struct {
		IsRead *bool `json:"isRead"`
	}{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid request body"))
		}
	}
	isRead := true
	if req.IsRead != nil {
		isRead = *req.IsRead
	}

	contact, err := s.contactService.SetRead(c.Context(), callerFromCtx(c), id, isRead)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "Contact updated successfully", contact)
}

// ReplyContact handles POST /api/contact/:id/reply
func (s *Server) ReplyContact(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		ReplyMessage string `json:"replyMessage"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	contact, err := s.contactService.Reply(c.Context(), callerFromCtx(c), id, req.ReplyMessage)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "Reply recorded successfully", contact)
}

// DeleteContact handles DELETE /api/contact/:id
func (s *Server) DeleteContact(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.contactService.Delete(c.Context(), callerFromCtx(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Contact deleted successfully",
	})
}
