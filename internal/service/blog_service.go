package service

import (
	"context"
	"strings"
	"time"

	"portfolio/internal/models"
	"portfolio/internal/observability"
	"portfolio/internal/repository"
	"portfolio/internal/validation"
)

// wordsPerMinute is the reading speed used to estimate readTime when
// the client does not supply one.
const wordsPerMinute = 200

type BlogService struct {
	blogRepo      repository.BlogRepository
	defaultAuthor string
}

func NewBlogService(blogRepo repository.BlogRepository, defaultAuthor string) *BlogService {
	return &BlogService{
		blogRepo:      blogRepo,
		defaultAuthor: defaultAuthor,
	}
}

type ListBlogsInput struct {
	Page   int
	Limit  int
	Tag    string
	Search string
}

type ListAllBlogsInput struct {
	Page   int
	Limit  int
	Status string // "", "published" or "draft"
}

type CreateBlogInput struct {
	Title         string   `json:"title"`
	Slug          string   `json:"slug"`
	Excerpt       string   `json:"excerpt"`
	Content       string   `json:"content"`
	FeaturedImage string   `json:"featuredImage"`
	Tags          []string `json:"tags"`
	IsPublished   bool     `json:"isPublished"`
	Author        string   `json:"author"`
	ReadTime      int      `json:"readTime"`
	Featured      bool     `json:"featured"`
}

type UpdateBlogInput struct {
	Title         *string   `json:"title"`
	Slug          *string   `json:"slug"`
	Excerpt       *string   `json:"excerpt"`
	Content       *string   `json:"content"`
	FeaturedImage *string   `json:"featuredImage"`
	Tags          *[]string `json:"tags"`
	IsPublished   *bool     `json:"isPublished"`
	Author        *string   `json:"author"`
	ReadTime      *int      `json:"readTime"`
	Featured      *bool     `json:"featured"`
}

// ListPublished returns a page of published posts for the public site.
// Post bodies are omitted from list responses.
func (s *BlogService) ListPublished(ctx context.Context, in ListBlogsInput) ([]models.Blog, *models.Pagination, error) {
	in.Page, in.Limit = normalizePage(in.Page, in.Limit)
	published := true
	filter := repository.BlogFilter{
		Published:       &published,
		Tag:             strings.TrimSpace(in.Tag),
		Search:          strings.TrimSpace(in.Search),
		OmitContent:     true,
		SortByPublished: true,
		Page:            in.Page,
		Limit:           in.Limit,
	}
	blogs, total, err := s.blogRepo.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	return blogs, models.NewPagination(in.Page, in.Limit, total), nil
}

// GetBySlug fetches a published post and records the read. The view
// counter is incremented atomically in storage; the returned copy
// reflects the new count.
func (s *BlogService) GetBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	blog, err := s.blogRepo.GetBySlug(ctx, slug, true)
	if err != nil {
		return nil, err
	}
	if err := s.blogRepo.IncrementViews(ctx, blog.ID); err != nil {
		return nil, err
	}
	blog.Views++
	observability.BlogViews.WithLabelValues(blog.Slug).Inc()
	return blog, nil
}

// ListAll returns every post regardless of publish state, for the
// admin dashboard. Sorted by creation time, newest first.
func (s *BlogService) ListAll(ctx context.Context, caller *models.Caller, in ListAllBlogsInput) ([]models.Blog, *models.Pagination, error) {
	if caller == nil {
		return nil, nil, models.NewUnauthorizedError("Authentication required")
	}

	in.Page, in.Limit = normalizePage(in.Page, in.Limit)
	filter := repository.BlogFilter{
		Page:  in.Page,
		Limit: in.Limit,
	}
	switch in.Status {
	case "":
	case "published":
		published := true
		filter.Published = &published
	case "draft":
		published := false
		filter.Published = &published
	default:
		return nil, nil, models.NewFieldValidationError(models.FieldError{
			Field: "status", Message: "status must be 'published' or 'draft'",
		})
	}

	blogs, total, err := s.blogRepo.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	return blogs, models.NewPagination(in.Page, in.Limit, total), nil
}

// GetByID fetches a post regardless of publish state. Does not count
// a view.
func (s *BlogService) GetByID(ctx context.Context, caller *models.Caller, id uint) (*models.Blog, error) {
	if caller == nil {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	return s.blogRepo.GetByID(ctx, id)
}

// Create stores a new post. The slug is derived from the title when
// not supplied. Publishing stamps publishedAt.
func (s *BlogService) Create(ctx context.Context, caller *models.Caller, in CreateBlogInput) (*models.Blog, error) {
	if caller == nil {
		return nil, models.NewUnauthorizedError("Authentication required")
	}

	var fields []models.FieldError
	if err := validation.ValidateRequiredString("title", in.Title, validation.MaxTitleLength); err != nil {
		fields = append(fields, models.FieldError{Field: "title", Message: err.Error()})
	}
	if err := validation.ValidateRequiredString("excerpt", in.Excerpt, validation.MaxExcerptLength); err != nil {
		fields = append(fields, models.FieldError{Field: "excerpt", Message: err.Error()})
	}
	if strings.TrimSpace(in.Content) == "" {
		fields = append(fields, models.FieldError{Field: "content", Message: "content is required"})
	}
	if err := validation.ValidateURL("featuredImage", in.FeaturedImage); err != nil {
		fields = append(fields, models.FieldError{Field: "featuredImage", Message: err.Error()})
	}
	if in.ReadTime < 0 {
		fields = append(fields, models.FieldError{Field: "readTime", Message: "readTime must not be negative"})
	}

	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = validation.Slugify(in.Title)
	} else {
		slug = strings.ToLower(slug)
		if !validation.IsValidSlug(slug) {
			fields = append(fields, models.FieldError{Field: "slug", Message: "slug may only contain lowercase letters, numbers and hyphens"})
		}
	}
	if len(fields) > 0 {
		return nil, models.NewFieldValidationError(fields...)
	}

	author := strings.TrimSpace(in.Author)
	if author == "" {
		author = s.defaultAuthor
	}
	readTime := in.ReadTime
	if readTime == 0 {
		readTime = EstimateReadTime(in.Content)
	}

	blog := &models.Blog{
		Title:         strings.TrimSpace(in.Title),
		Slug:          slug,
		Excerpt:       strings.TrimSpace(in.Excerpt),
		Content:       in.Content,
		FeaturedImage: in.FeaturedImage,
		Tags:          validation.NormalizeTags(in.Tags),
		IsPublished:   in.IsPublished,
		Author:        author,
		ReadTime:      readTime,
		Featured:      in.Featured,
	}
	blog.ApplyPublishState(time.Now().UTC())

	if err := s.blogRepo.Create(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

// Update applies a partial update. Fields absent from the input keep
// their stored values. Re-publishing a post that was published before
// keeps the original publishedAt.
func (s *BlogService) Update(ctx context.Context, caller *models.Caller, id uint, in UpdateBlogInput) (*models.Blog, error) {
	if caller == nil {
		return nil, models.NewUnauthorizedError("Authentication required")
	}

	var fields []models.FieldError
	if in.Title != nil {
		if err := validation.ValidateRequiredString("title", *in.Title, validation.MaxTitleLength); err != nil {
			fields = append(fields, models.FieldError{Field: "title", Message: err.Error()})
		}
	}
	if in.Excerpt != nil {
		if err := validation.ValidateRequiredString("excerpt", *in.Excerpt, validation.MaxExcerptLength); err != nil {
			fields = append(fields, models.FieldError{Field: "excerpt", Message: err.Error()})
		}
	}
	if in.Content != nil && strings.TrimSpace(*in.Content) == "" {
		fields = append(fields, models.FieldError{Field: "content", Message: "content is required"})
	}
	if in.FeaturedImage != nil {
		if err := validation.ValidateURL("featuredImage", *in.FeaturedImage); err != nil {
			fields = append(fields, models.FieldError{Field: "featuredImage", Message: err.Error()})
		}
	}
	if in.ReadTime != nil && *in.ReadTime < 0 {
		fields = append(fields, models.FieldError{Field: "readTime", Message: "readTime must not be negative"})
	}
	var slug string
	if in.Slug != nil {
		slug = strings.ToLower(strings.TrimSpace(*in.Slug))
		if !validation.IsValidSlug(slug) {
			fields = append(fields, models.FieldError{Field: "slug", Message: "slug may only contain lowercase letters, numbers and hyphens"})
		}
	}
	if len(fields) > 0 {
		return nil, models.NewFieldValidationError(fields...)
	}

	blog, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		blog.Title = strings.TrimSpace(*in.Title)
	}
	if in.Slug != nil {
		blog.Slug = slug
	}
	if in.Excerpt != nil {
		blog.Excerpt = strings.TrimSpace(*in.Excerpt)
	}
	if in.Content != nil {
		blog.Content = *in.Content
	}
	if in.FeaturedImage != nil {
		blog.FeaturedImage = *in.FeaturedImage
	}
	if in.Tags != nil {
		blog.Tags = validation.NormalizeTags(*in.Tags)
	}
	if in.Author != nil {
		blog.Author = strings.TrimSpace(*in.Author)
	}
	if in.ReadTime != nil {
		// Zero means "estimate from content", same as on create.
		if *in.ReadTime == 0 {
			blog.ReadTime = EstimateReadTime(blog.Content)
		} else {
			blog.ReadTime = *in.ReadTime
		}
	}
	if in.Featured != nil {
		blog.Featured = *in.Featured
	}
	if in.IsPublished != nil {
		blog.IsPublished = *in.IsPublished
	}
	blog.ApplyPublishState(time.Now().UTC())

	if err := s.blogRepo.Update(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

// Delete removes a post permanently.
func (s *BlogService) Delete(ctx context.Context, caller *models.Caller, id uint) error {
	if caller == nil {
		return models.NewUnauthorizedError("Authentication required")
	}
	return s.blogRepo.Delete(ctx, id)
}

// normalizePage clamps page and limit to sane values so callers can
// pass query parameters through unchecked.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	} else if limit > 100 {
		limit = 100
	}
	return page, limit
}

// EstimateReadTime returns the reading time of a text in whole
// minutes, never less than one.
func EstimateReadTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
