package repository

import (
	"context"
	"errors"
	"sort"

	"portfolio/internal/models"

	"gorm.io/gorm"
)

// ProjectFilter narrows project list queries.
type ProjectFilter struct {
	// Featured restricts to featured projects when non-nil and true.
	Featured *bool
	// Technology matches a single technology entry.
	Technology string
	Page       int
	Limit      int
}

// ProjectRepository defines persistence operations for portfolio projects.
type ProjectRepository interface {
	List(ctx context.Context, f ProjectFilter) ([]models.Project, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Project, error)
	Create(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uint) error
	DistinctCategories(ctx context.Context) ([]string, error)
	DistinctTechnologies(ctx context.Context) ([]string, error)
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository returns a new ProjectRepository implementation.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) List(ctx context.Context, f ProjectFilter) ([]models.Project, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Project{})

	if f.Featured != nil {
		q = q.Where("featured = ?", *f.Featured)
	}
	if f.Technology != "" {
		// Technologies are stored as a JSON array.
		q = q.Where("technologies LIKE ?", `%"`+f.Technology+`"%`)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var projects []models.Project
	err := q.Order("featured DESC").
		Order("created_at DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&projects).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return projects, total, nil
}

func (r *projectRepository) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Project")
		}
		return nil, models.NewInternalError(err)
	}
	return &project, nil
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *projectRepository) Update(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Save(project).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *projectRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Project{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Project")
	}
	return nil
}

func (r *projectRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&models.Project{}).
		Where("category <> ''").
		Distinct().
		Order("category").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return categories, nil
}

// DistinctTechnologies unnests the JSON-encoded technology lists in Go,
// keeping the query portable between postgres and the sqlite test driver.
func (r *projectRepository) DistinctTechnologies(ctx context.Context) ([]string, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).Model(&models.Project{}).
		Select("technologies").
		Find(&projects).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	seen := make(map[string]struct{})
	var techs []string
	for _, p := range projects {
		for _, t := range p.Technologies {
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				techs = append(techs, t)
			}
		}
	}
	sort.Strings(techs)
	return techs, nil
}
