package models

import (
	"time"
)

// Project is a portfolio work item. The first element of Images is the
// primary image.
type Project struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:200;not null" json:"title"`
	Description  string    `gorm:"size:1000;not null" json:"description"`
	Technologies []string  `gorm:"serializer:json" json:"technologies"`
	LiveURL      string    `json:"liveUrl,omitempty"`
	GithubURL    string    `json:"githubUrl,omitempty"`
	Images       []string  `gorm:"serializer:json" json:"images"`
	Category     string    `gorm:"size:100" json:"category,omitempty"`
	Featured     bool      `gorm:"not null;default:false;index" json:"featured"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PrimaryImage returns the first image, or "" when none are set.
func (p *Project) PrimaryImage() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}
