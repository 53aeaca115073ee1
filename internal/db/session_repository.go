package db

import (
	"github.com/winslowhq/cordial/internal/models"
	"gorm.io/gorm"
)

type SessionRepository struct {
	database *gorm.DB
}

func NewSessionRepository(database *gorm.DB) *SessionRepository {
	return &SessionRepository{database: database}
}

func (repo *SessionRepository) Create(session *models.Session) error {
	return repo.database.Create(session).Error
}

// FindByTokenWithUser loads a session row together with its owning user in
// a single query. Expiry is not filtered here; callers decide how stale
// rows are treated.
func (repo *SessionRepository) FindByTokenWithUser(token string) (models.Session, error) {
	var session models.Session
	if err := repo.database.Preload("User").
		Where("token = ?", token).
		First(&session).Error; err != nil {
		return models.Session{}, err
	}
	return session, nil
}

func (repo *SessionRepository) DeleteByToken(token string) error {
	return repo.database.Where("token = ?", token).Delete(&models.Session{}).Error
}

func (repo *SessionRepository) DeleteAllForUser(userID uint) error {
	return repo.database.Where("user_id = ?", userID).Delete(&models.Session{}).Error
}

func (repo *SessionRepository) CountForUser(userID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.Session{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
