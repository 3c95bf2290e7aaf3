package repository

import (
	"context"
	"errors"
	"strings"

	"portfolio/internal/models"

	"gorm.io/gorm"
)

// BlogFilter narrows blog list queries.
type BlogFilter struct {
	// Published restricts by publish state when non-nil.
	Published *bool
	// Tag matches a single lowercase tag.
	Tag string
	// Search matches title, content and tags.
	Search string
	// OmitContent drops the content column from list results.
	OmitContent bool
	// SortByPublished orders by published_at desc instead of created_at desc.
	SortByPublished bool
	Page            int
	Limit           int
}

// BlogRepository defines persistence operations for blog articles.
type BlogRepository interface {
	List(ctx context.Context, f BlogFilter) ([]models.Blog, int64, error)
	GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.Blog, error)
	GetByID(ctx context.Context, id uint) (*models.Blog, error)
	Create(ctx context.Context, blog *models.Blog) error
	Update(ctx context.Context, blog *models.Blog) error
	Delete(ctx context.Context, id uint) error
	IncrementViews(ctx context.Context, id uint) error
}

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository returns a new BlogRepository implementation.
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) List(ctx context.Context, f BlogFilter) ([]models.Blog, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Blog{})

	if f.Published != nil {
		q = q.Where("is_published = ?", *f.Published)
	}
	if f.Tag != "" {
		// Tags are stored as a JSON array of lowercase strings.
		q = q.Where("tags LIKE ?", `%"`+strings.ToLower(f.Tag)+`"%`)
	}
	if f.Search != "" {
		needle := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR tags LIKE ?",
			needle, needle, needle)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	if f.OmitContent {
		q = q.Omit("content")
	}
	if f.SortByPublished {
		q = q.Order("published_at DESC")
	} else {
		q = q.Order("created_at DESC")
	}

	var blogs []models.Blog
	err := q.Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&blogs).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return blogs, total, nil
}

func (r *blogRepository) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.Blog, error) {
	q := r.db.WithContext(ctx).Where("slug = ?", slug)
	if publishedOnly {
		q = q.Where("is_published = ?", true)
	}

	var blog models.Blog
	if err := q.First(&blog).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Blog")
		}
		return nil, models.NewInternalError(err)
	}
	return &blog, nil
}

func (r *blogRepository) GetByID(ctx context.Context, id uint) (*models.Blog, error) {
	var blog models.Blog
	if err := r.db.WithContext(ctx).First(&blog, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Blog")
		}
		return nil, models.NewInternalError(err)
	}
	return &blog, nil
}

func (r *blogRepository) Create(ctx context.Context, blog *models.Blog) error {
	if err := r.db.WithContext(ctx).Create(blog).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Blog with this slug already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *blogRepository) Update(ctx context.Context, blog *models.Blog) error {
	if err := r.db.WithContext(ctx).Save(blog).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Blog with this slug already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *blogRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Blog{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Blog")
	}
	return nil
}

// IncrementViews bumps the view counter in a single UPDATE so that
// concurrent fetches never lose updates.
func (r *blogRepository) IncrementViews(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Model(&models.Blog{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
