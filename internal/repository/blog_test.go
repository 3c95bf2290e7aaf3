package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"portfolio/internal/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupBlogRepoTest(t *testing.T) BlogRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Blog{}); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return NewBlogRepository(db)
}

func seedBlogs(t *testing.T, repo BlogRepository, n int, published bool, tags []string) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		blog := &models.Blog{
			Title:       fmt.Sprintf("Post %d published=%v", i, published),
			Slug:        fmt.Sprintf("post-%v-%d", published, i),
			Excerpt:     "excerpt",
			Content:     "body text",
			Tags:        tags,
			IsPublished: published,
		}
		if published {
			at := time.Now().Add(-time.Duration(i) * time.Hour)
			blog.PublishedAt = &at
		}
		if err := repo.Create(ctx, blog); err != nil {
			t.Fatalf("seed blog: %v", err)
		}
	}
}

func TestBlogListPublishedFilter(t *testing.T) {
	repo := setupBlogRepoTest(t)
	seedBlogs(t, repo, 3, true, []string{"go"})
	seedBlogs(t, repo, 2, false, nil)

	published := true
	blogs, total, err := repo.List(context.Background(), BlogFilter{
		Published: &published,
		Page:      1,
		Limit:     10,
	})
	assert.NoError(t, err)
	assert.Len(t, blogs, 3)
	assert.Equal(t, int64(3), total)

	blogs, total, err = repo.List(context.Background(), BlogFilter{Page: 1, Limit: 10})
	assert.NoError(t, err)
	assert.Len(t, blogs, 5)
	assert.Equal(t, int64(5), total)
}

func TestBlogListTagFilter(t *testing.T) {
	repo := setupBlogRepoTest(t)
	seedBlogs(t, repo, 2, true, []string{"go", "backend"})
	seedBlogs(t, repo, 1, true, []string{"golang"})

	// "go" must not match "golang".
	blogs, _, err := repo.List(context.Background(), BlogFilter{
		Tag:   "go",
		Page:  1,
		Limit: 10,
	})
	assert.NoError(t, err)
	assert.Len(t, blogs, 2)
}

func TestBlogListOmitContent(t *testing.T) {
	repo := setupBlogRepoTest(t)
	seedBlogs(t, repo, 1, true, nil)

	blogs, _, err := repo.List(context.Background(), BlogFilter{
		OmitContent: true,
		Page:        1,
		Limit:       10,
	})
	assert.NoError(t, err)
	assert.Len(t, blogs, 1)
	assert.Empty(t, blogs[0].Content)
	assert.Equal(t, "excerpt", blogs[0].Excerpt)
}

func TestBlogListPagination(t *testing.T) {
	repo := setupBlogRepoTest(t)
	seedBlogs(t, repo, 25, true, nil)

	blogs, total, err := repo.List(context.Background(), BlogFilter{Page: 3, Limit: 10})
	assert.NoError(t, err)
	assert.Len(t, blogs, 5)
	assert.Equal(t, int64(25), total)
}

func TestIncrementViewsIsAtomicExpression(t *testing.T) {
	repo := setupBlogRepoTest(t)
	ctx := context.Background()
	seedBlogs(t, repo, 1, true, nil)

	blog, err := repo.GetBySlug(ctx, "post-true-0", true)
	assert.NoError(t, err)

	for i := 0; i < 4; i++ {
		assert.NoError(t, repo.IncrementViews(ctx, blog.ID))
	}

	reloaded, err := repo.GetByID(ctx, blog.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), reloaded.Views)
	// The row's UpdatedAt is not bumped by the counter.
	assert.WithinDuration(t, blog.UpdatedAt, reloaded.UpdatedAt, time.Second)
}

func TestDeleteMissingBlogReturnsNotFound(t *testing.T) {
	repo := setupBlogRepoTest(t)

	err := repo.Delete(context.Background(), 42)
	assert.Error(t, err)

	var appErr *models.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}
