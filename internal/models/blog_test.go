package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyPublishState(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	later := now.Add(48 * time.Hour)

	blog := &Blog{IsPublished: false}

	// Drafts never get a timestamp.
	blog.ApplyPublishState(now)
	assert.Nil(t, blog.PublishedAt)

	// First publish stamps it.
	blog.IsPublished = true
	blog.ApplyPublishState(now)
	if assert.NotNil(t, blog.PublishedAt) {
		assert.True(t, blog.PublishedAt.Equal(now))
	}

	// Unpublishing keeps the timestamp.
	blog.IsPublished = false
	blog.ApplyPublishState(later)
	if assert.NotNil(t, blog.PublishedAt) {
		assert.True(t, blog.PublishedAt.Equal(now))
	}

	// Republishing does not move it.
	blog.IsPublished = true
	blog.ApplyPublishState(later)
	if assert.NotNil(t, blog.PublishedAt) {
		assert.True(t, blog.PublishedAt.Equal(now))
	}
}
