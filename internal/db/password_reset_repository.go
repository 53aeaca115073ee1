package db

import (
	"github.com/winslowhq/cordial/internal/models"
	"gorm.io/gorm"
)

type PasswordResetRepository struct {
	database *gorm.DB
}

func NewPasswordResetRepository(database *gorm.DB) *PasswordResetRepository {
	return &PasswordResetRepository{database: database}
}

// Replace removes any outstanding token for the user before storing the
// fresh one, so at most one reset token is live per account.
func (repo *PasswordResetRepository) Replace(reset *models.PasswordReset) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", reset.UserID).
			Delete(&models.PasswordReset{}).Error; err != nil {
			return err
		}
		return tx.Create(reset).Error
	})
}

func (repo *PasswordResetRepository) FindByToken(token string) (models.PasswordReset, error) {
	var reset models.PasswordReset
	if err := repo.database.Where("token = ?", token).First(&reset).Error; err != nil {
		return models.PasswordReset{}, err
	}
	return reset, nil
}

func (repo *PasswordResetRepository) DeleteByID(resetID uint) error {
	return repo.database.Delete(&models.PasswordReset{}, resetID).Error
}
