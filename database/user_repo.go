package database

import (
	"fmt"

	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// Ensure creates the author row when id is unknown. The placeholder identity
// is derived from the id so two lazily created authors never share an email.
func (r *UserRepo) Ensure(tx *gorm.DB, id string) error {
	user := models.User{
		ID:    id,
		Email: placeholderEmail(id),
		Name:  "Admin User",
		Role:  models.RoleAdmin,
	}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(&user).Error
	if err != nil {
		return fmt.Errorf("ensure author %s: %w", id, err)
	}
	return nil
}

func placeholderEmail(id string) string {
	return fmt.Sprintf("admin+%s@example.com", id)
}
