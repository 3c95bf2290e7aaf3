package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("visitor@example.com"))
	assert.NoError(t, ValidateEmail("first.last+tag@sub.domain.io"))

	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("missing@tld"))
	assert.Error(t, ValidateEmail("spaces in@example.com"))
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword("short"))
	assert.NoError(t, ValidatePassword("longenough"))
}

func TestValidateRequiredString(t *testing.T) {
	assert.Error(t, ValidateRequiredString("title", "", MaxTitleLength))
	assert.Error(t, ValidateRequiredString("title", "   ", MaxTitleLength))
	assert.NoError(t, ValidateRequiredString("title", "Hello", MaxTitleLength))

	long := make([]byte, MaxTitleLength+1)
	for i := range long {
		long[i] = 'a'
	}
	assert.Error(t, ValidateRequiredString("title", string(long), MaxTitleLength))
}

func TestValidateURL(t *testing.T) {
	assert.NoError(t, ValidateURL("live URL", "https://example.com/app"))
	assert.NoError(t, ValidateURL("live URL", "http://example.com"))
	assert.Error(t, ValidateURL("live URL", "ftp://example.com"))
	assert.Error(t, ValidateURL("live URL", "example.com"))
	// Optional fields skip validation when empty.
	assert.NoError(t, ValidateURL("live URL", ""))
}

func TestValidateGithubURL(t *testing.T) {
	assert.NoError(t, ValidateGithubURL("https://github.com/owner/repo"))
	assert.NoError(t, ValidateGithubURL("https://www.github.com/owner/repo"))
	assert.Error(t, ValidateGithubURL("https://gitlab.com/owner/repo"))
	assert.Error(t, ValidateGithubURL("https://github.com/"))
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" Go ", "WEB", "", "api"})
	assert.Equal(t, []string{"go", "web", "api"}, got)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Building a REST API!  ", "building-a-rest-api"},
		{"Crème Brûlée", "creme-brulee"},
		{"already-a-slug", "already-a-slug"},
		{"Multiple   Spaces", "multiple-spaces"},
		{"--edges--", "edges"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}

func TestIsValidSlug(t *testing.T) {
	assert.True(t, IsValidSlug("my-first-post"))
	assert.True(t, IsValidSlug("post2"))
	assert.False(t, IsValidSlug(""))
	assert.False(t, IsValidSlug("Upper-Case"))
	assert.False(t, IsValidSlug("-leading"))
	assert.False(t, IsValidSlug("trailing-"))
	assert.False(t, IsValidSlug("double--hyphen"))
}
