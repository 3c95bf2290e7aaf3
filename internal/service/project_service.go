package service

import (
	"context"
	"strings"

	"portfolio/internal/models"
	"portfolio/internal/repository"
	"portfolio/internal/validation"
)

type ProjectService struct {
	projectRepo repository.ProjectRepository
}

func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo}
}

type ListProjectsInput struct {
	Page       int
	Limit      int
	Featured   *bool
	Technology string
}

type CreateProjectInput struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	LiveURL      string   `json:"liveUrl"`
	GithubURL    string   `json:"githubUrl"`
	Images       []string `json:"images"`
	Category     string   `json:"category"`
	Featured     bool     `json:"featured"`
}

type UpdateProjectInput struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	Technologies *[]string `json:"technologies"`
	LiveURL      *string   `json:"liveUrl"`
	GithubURL    *string   `json:"githubUrl"`
	Images       *[]string `json:"images"`
	Category     *string   `json:"category"`
	Featured     *bool     `json:"featured"`
}

// List returns a page of projects, featured ones first.
func (s *ProjectService) List(ctx context.Context, in ListProjectsInput) ([]models.Project, *models.Pagination, error) {
	in.Page, in.Limit = normalizePage(in.Page, in.Limit)
	filter := repository.ProjectFilter{
		Featured:   in.Featured,
		Technology: strings.TrimSpace(in.Technology),
		Page:       in.Page,
		Limit:      in.Limit,
	}
	projects, total, err := s.projectRepo.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	return projects, models.NewPagination(in.Page, in.Limit, total), nil
}

// Get fetches a single project.
func (s *ProjectService) Get(ctx context.Context, id uint) (*models.Project, error) {
	return s.projectRepo.GetByID(ctx, id)
}

// Create stores a new project. A project must have at least one
// technology and at least one image.
func (s *ProjectService) Create(ctx context.Context, caller *models.Caller, in CreateProjectInput) (*models.Project, error) {
	if caller == nil {
		return nil, models.NewUnauthorizedError("Authentication required")
	}

	var fields []models.FieldError
	if err := validation.ValidateRequiredString("title", in.Title, validation.MaxTitleLength); err != nil {
		fields = append(fields, models.FieldError{Field: "title", Message: err.Error()})
	}
	if err := validation.ValidateRequiredString("description", in.Description, validation.MaxDescLength); err != nil {
		fields = append(fields, models.FieldError{Field: "description", Message: err.Error()})
	}
	technologies := validation.NormalizeTags(in.Technologies)
	if len(technologies) == 0 {
		fields = append(fields, models.FieldError{Field: "technologies", Message: "at least one technology is required"})
	}
	if len(in.Images) == 0 {
		fields = append(fields, models.FieldError{Field: "images", Message: "at least one image is required"})
	}
	if err := validation.ValidateURL("liveUrl", in.LiveURL); err != nil {
		fields = append(fields, models.FieldError{Field: "liveUrl", Message: err.Error()})
	}
	if err := validation.ValidateGithubURL(in.GithubURL); err != nil {
		fields = append(fields, models.FieldError{Field: "githubUrl", Message: err.Error()})
	}
	if len(fields) > 0 {
		return nil, models.NewFieldValidationError(fields...)
	}

	project := &models.Project{
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		Technologies: technologies,
		LiveURL:      in.LiveURL,
		GithubURL:    in.GithubURL,
		Images:       in.Images,
		Category:     strings.TrimSpace(in.Category),
		Featured:     in.Featured,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Update applies a partial update. Fields absent from the input keep
// their stored values.
func (s *ProjectService) Update(ctx context.Context, caller *models.Caller, id uint, in UpdateProjectInput) (*models.Project, error) {
	if caller == nil {
		return nil, models.NewUnauthorizedError("Authentication required")
	}

	var fields []models.FieldError
	if in.Title != nil {
		if err := validation.ValidateRequiredString("title", *in.Title, validation.MaxTitleLength); err != nil {
			fields = append(fields, models.FieldError{Field: "title", Message: err.Error()})
		}
	}
	if in.Description != nil {
		if err := validation.ValidateRequiredString("description", *in.Description, validation.MaxDescLength); err != nil {
			fields = append(fields, models.FieldError{Field: "description", Message: err.Error()})
		}
	}
	var technologies []string
	if in.Technologies != nil {
		technologies = validation.NormalizeTags(*in.Technologies)
		if len(technologies) == 0 {
			fields = append(fields, models.FieldError{Field: "technologies", Message: "at least one technology is required"})
		}
	}
	if in.Images != nil && len(*in.Images) == 0 {
		fields = append(fields, models.FieldError{Field: "images", Message: "at least one image is required"})
	}
	if in.LiveURL != nil {
		if err := validation.ValidateURL("liveUrl", *in.LiveURL); err != nil {
			fields = append(fields, models.FieldError{Field: "liveUrl", Message: err.Error()})
		}
	}
	if in.GithubURL != nil {
		if err := validation.ValidateGithubURL(*in.GithubURL); err != nil {
			fields = append(fields, models.FieldError{Field: "githubUrl", Message: err.Error()})
		}
	}
	if len(fields) > 0 {
		return nil, models.NewFieldValidationError(fields...)
	}

	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		project.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		project.Description = strings.TrimSpace(*in.Description)
	}
	if in.Technologies != nil {
		project.Technologies = technologies
	}
	if in.LiveURL != nil {
		project.LiveURL = *in.LiveURL
	}
	if in.GithubURL != nil {
		project.GithubURL = *in.GithubURL
	}
	if in.Images != nil {
		project.Images = *in.Images
	}
	if in.Category != nil {
		project.Category = strings.TrimSpace(*in.Category)
	}
	if in.Featured != nil {
		project.Featured = *in.Featured
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes a project permanently.
func (s *ProjectService) Delete(ctx context.Context, caller *models.Caller, id uint) error {
	if caller == nil {
		return models.NewUnauthorizedError("Authentication required")
	}
	return s.projectRepo.Delete(ctx, id)
}

// Categories returns the distinct non-empty category values in use.
func (s *ProjectService) Categories(ctx context.Context) ([]string, error) {
	return s.projectRepo.DistinctCategories(ctx)
}

// Technologies returns the distinct technologies across all projects.
func (s *ProjectService) Technologies(ctx context.Context) ([]string, error) {
	return s.projectRepo.DistinctTechnologies(ctx)
}
