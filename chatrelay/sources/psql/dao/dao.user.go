package dao

import (
	"context"
	"fmt"
	"strings"

	"chatrelay/chatrelay/sources/psql/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserDAO struct {
	DB *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{DB: db}
}

func (dao *UserDAO) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	err := dao.DB.WithContext(ctx).First(&user, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (dao *UserDAO) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := dao.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetOrCreateUser resolves a username to a user row, inserting it when
// absent. The insert rides the unique index on username, so two
// concurrent first calls still end up with a single row.
func (dao *UserDAO) GetOrCreateUser(ctx context.Context, username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}

	user := models.User{Username: username}
	err := dao.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			DoNothing: true,
		}).
		Create(&user).Error
	if err != nil {
		return nil, err
	}
	if user.ID != 0 {
		return &user, nil
	}

	// Conflict path: the row already existed, fetch it.
	return dao.GetUserByUsername(ctx, username)
}
