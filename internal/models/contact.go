package models

import (
	"time"
)

// Contact is an inbound message from a site visitor. IP address and
// user agent are captured at submission time for audit and are not
// validated.
type Contact struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"size:100;not null" json:"name"`
	Email        string     `gorm:"size:255;not null;index" json:"email"`
	Message      string     `gorm:"size:2000;not null" json:"message"`
	IsRead       bool       `gorm:"not null;default:false;index" json:"isRead"`
	Replied      bool       `gorm:"not null;default:false" json:"replied"`
	ReplyMessage string     `gorm:"size:2000" json:"replyMessage,omitempty"`
	RepliedAt    *time.Time `json:"repliedAt,omitempty"`
	IPAddress    string     `gorm:"size:64" json:"ipAddress,omitempty"`
	UserAgent    string     `json:"userAgent,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
