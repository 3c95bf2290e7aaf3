// Package seed populates the database with realistic demo content for
// local development.
package seed

import (
	"fmt"
	"strings"
	"time"

	"portfolio/internal/models"
	"portfolio/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

var titleCaser = cases.Title(language.English)

type Seeder struct {
	db *gorm.DB
}

func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// ClearAll removes all seeded content. User accounts are kept so a
// provisioned admin login survives reseeding.
func (s *Seeder) ClearAll() error {
	for _, model := range []interface{}{&models.Blog{}, &models.Project{}, &models.Contact{}} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}
	}
	return nil
}

var blogTags = []string{"go", "backend", "devops", "databases", "web", "performance", "tooling", "career"}

// SeedBlogs creates n posts, roughly four out of five published.
func (s *Seeder) SeedBlogs(n int) error {
	for i := 0; i < n; i++ {
		title := titleCaser.String(strings.TrimSuffix(gofakeit.HipsterSentence(4), "."))
		content := gofakeit.Paragraph(6, 5, 30, "\n\n")
		published := gofakeit.Number(0, 4) > 0

		blog := models.Blog{
			Title:       title,
			Slug:        fmt.Sprintf("%s-%d", validation.Slugify(title), i),
			Excerpt:     gofakeit.HipsterSentence(12),
			Content:     content,
			Tags:        pickSome(blogTags, 1, 3),
			IsPublished: published,
			Author:      gofakeit.Name(),
			ReadTime:    gofakeit.Number(2, 12),
			Views:       int64(gofakeit.Number(0, 5000)),
			Likes:       int64(gofakeit.Number(0, 300)),
			Featured:    gofakeit.Number(0, 9) == 0,
		}
		if published {
			at := gofakeit.DateRange(time.Now().AddDate(-2, 0, 0), time.Now())
			blog.PublishedAt = &at
		}
		if err := s.db.Create(&blog).Error; err != nil {
			return fmt.Errorf("blog seeding failed: %w", err)
		}
	}
	return nil
}

var projectTech = []string{"Go", "PostgreSQL", "Docker", "React", "TypeScript", "Redis", "Kubernetes", "gRPC", "Terraform"}
var projectCategories = []string{"web", "api", "cli", "infrastructure"}

// SeedProjects creates n portfolio projects.
func (s *Seeder) SeedProjects(n int) error {
	for i := 0; i < n; i++ {
		name := gofakeit.AppName()
		project := models.Project{
			Title:        name,
			Description:  gofakeit.HipsterParagraph(1, 3, 15, " "),
			Technologies: pickSome(projectTech, 2, 5),
			LiveURL:      gofakeit.URL(),
			GithubURL:    fmt.Sprintf("https://github.com/%s/%s", gofakeit.Username(), validation.Slugify(name)),
			Images:       []string{gofakeit.ImageURL(1200, 630)},
			Category:     projectCategories[gofakeit.Number(0, len(projectCategories)-1)],
			Featured:     gofakeit.Number(0, 3) == 0,
		}
		if err := s.db.Create(&project).Error; err != nil {
			return fmt.Errorf("project seeding failed: %w", err)
		}
	}
	return nil
}

// SeedContacts creates n inbound messages, some already read or replied.
func (s *Seeder) SeedContacts(n int) error {
	for i := 0; i < n; i++ {
		contact := models.Contact{
			Name:      gofakeit.Name(),
			Email:     gofakeit.Email(),
			Message:   gofakeit.Paragraph(1, 3, 12, " "),
			IsRead:    gofakeit.Bool(),
			IPAddress: gofakeit.IPv4Address(),
			UserAgent: gofakeit.UserAgent(),
		}
		if contact.IsRead && gofakeit.Bool() {
			at := gofakeit.DateRange(time.Now().AddDate(0, -6, 0), time.Now())
			contact.Replied = true
			contact.ReplyMessage = gofakeit.Sentence(15)
			contact.RepliedAt = &at
		}
		if err := s.db.Create(&contact).Error; err != nil {
			return fmt.Errorf("contact seeding failed: %w", err)
		}
	}
	return nil
}

func pickSome(pool []string, min, max int) []string {
	count := gofakeit.Number(min, max)
	picked := make([]string, 0, count)
	seen := make(map[string]bool)
	for len(picked) < count {
		v := pool[gofakeit.Number(0, len(pool)-1)]
		if seen[v] {
			continue
		}
		seen[v] = true
		picked = append(picked, v)
	}
	return picked
}
