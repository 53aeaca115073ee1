package models

import "time"

const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
	RoleGuest  = "guest"
)

// ValidWorkspaceRole reports whether role is one of the four membership
// roles.
func ValidWorkspaceRole(role string) bool {
	switch role {
	case RoleOwner, RoleAdmin, RoleMember, RoleGuest:
		return true
	}
	return false
}

// Workspace is the tenant boundary. Every workspace has exactly one owner,
// who also holds an owner membership row.
type Workspace struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	Logo        string    `json:"logo"`
	Description string    `json:"description"`
	OwnerID     uint      `gorm:"index;not null" json:"ownerId"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type WorkspaceMember struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	WorkspaceID uint      `gorm:"uniqueIndex:idx_workspace_user;not null" json:"workspaceId"`
	UserID      uint      `gorm:"uniqueIndex:idx_workspace_user;not null" json:"userId"`
	Role        string    `gorm:"not null;default:member" json:"role"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`

	User User `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

// WorkspaceInvitation converts into a WorkspaceMember row when an
// authenticated user redeems its token before expiresAt.
type WorkspaceInvitation struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	WorkspaceID uint      `gorm:"index;not null" json:"workspaceId"`
	Email       string    `gorm:"not null" json:"email"`
	Role        string    `gorm:"not null;default:member" json:"role"`
	Token       string    `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt   time.Time `gorm:"not null" json:"expiresAt"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
}

func (invitation *WorkspaceInvitation) Expired(now time.Time) bool {
	return !invitation.ExpiresAt.After(now)
}
