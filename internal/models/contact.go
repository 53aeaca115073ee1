package models

import "time"

// Contact is a CRM record scoped to a single workspace.
type Contact struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	WorkspaceID uint      `gorm:"index;not null" json:"workspaceId"`
	Name        string    `gorm:"not null" json:"name"`
	Email       string    `gorm:"index" json:"email"`
	Phone       string    `json:"phone"`
	Company     string    `json:"company"`
	Title       string    `json:"title"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
