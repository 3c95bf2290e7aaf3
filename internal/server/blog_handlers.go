package server

import (
	"portfolio/internal/models"
	"portfolio/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetBlogs handles GET /api/blogs
func (s *Server) GetBlogs(c *fiber.Ctx) error {
	page := parsePageQuery(c)

	blogs, pagination, err := s.blogService.ListPublished(c.Context(), service.ListBlogsInput{
		Page:   page.Page,
		Limit:  page.Limit,
		Tag:    c.Query("tag"),
		Search: c.Query("search"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondPage(c, blogs, pagination, nil)
}

// GetBlogBySlug handles GET /api/blogs/:slug
func (s *Server) GetBlogBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Slug is required"))
	}

	blog, err := s.blogService.GetBySlug(c.Context(), slug)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "", blog)
}

// GetAllBlogs handles GET /api/blogs/admin/all
func (s *Server) GetAllBlogs(c *fiber.Ctx) error {
	page := parsePageQuery(c)

	blogs, pagination, err := s.blogService.ListAll(c.Context(), callerFromCtx(c), service.ListAllBlogsInput{
		Page:   page.Page,
		Limit:  page.Limit,
		Status: c.Query("status"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondPage(c, blogs, pagination, nil)
}

// GetBlogByID handles GET /api/blogs/admin/:id
func (s *Server) GetBlogByID(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	blog, err := s.blogService.GetByID(c.Context(), callerFromCtx(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "", blog)
}

// CreateBlog handles POST /api/blogs
func (s *Server) CreateBlog(c *fiber.Ctx) error {
	var req service.CreateBlogInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	blog, err := s.blogService.Create(c.Context(), callerFromCtx(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusCreated, "Blog created successfully", blog)
}

// UpdateBlog handles PUT /api/blogs/:id
func (s *Server) UpdateBlog(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.UpdateBlogInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	blog, err := s.blogService.Update(c.Context(), callerFromCtx(c), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, fiber.StatusOK, "Blog updated successfully", blog)
}

// DeleteBlog handles DELETE /api/blogs/:id
func (s *Server) DeleteBlog(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.blogService.Delete(c.Context(), callerFromCtx(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Blog deleted successfully",
	})
}
