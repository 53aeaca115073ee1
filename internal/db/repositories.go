package db

import "gorm.io/gorm"

type Repositories struct {
	Users          *UserRepository
	Sessions       *SessionRepository
	PasswordResets *PasswordResetRepository
	Workspaces     *WorkspaceRepository
	Invitations    *InvitationRepository
	Contacts       *ContactRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:          NewUserRepository(database),
		Sessions:       NewSessionRepository(database),
		PasswordResets: NewPasswordResetRepository(database),
		Workspaces:     NewWorkspaceRepository(database),
		Invitations:    NewInvitationRepository(database),
		Contacts:       NewContactRepository(database),
	}
}
