package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bunshack-api/models"

	"gorm.io/gorm"
)

// UserRepository persists accounts for the identity layer.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	EmailOrUserNameTaken(ctx context.Context, email, userName string) (bool, error)
	UpdateUser(ctx context.Context, user *models.User) error
	SetAdmin(ctx context.Context, email string, isAdmin bool) (*models.User, error)
}

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// CreateUser fails with ErrDuplicate when the email or username is in use,
// ignoring case.
func (s *UserStore) CreateUser(ctx context.Context, user *models.User) error {
	user.Email = models.NormalizeEmail(user.Email)
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := identityTaken(tx, user.Email, user.UserName)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicate
		}
		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicate
			}
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
}

func (s *UserStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.findUser(ctx, "id = ?", id)
}

func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, "email = ?", models.NormalizeEmail(email))
}

func (s *UserStore) EmailOrUserNameTaken(ctx context.Context, email, userName string) (bool, error) {
	return identityTaken(s.db.WithContext(ctx), models.NormalizeEmail(email), userName)
}

// identityTaken expects email already normalized; usernames compare case-insensitively
func identityTaken(db *gorm.DB, email, userName string) (bool, error) {
	var n int64
	err := db.Model(&models.User{}).
		Where("email = ? OR LOWER(user_name) = ?", email, strings.ToLower(userName)).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return n > 0, nil
}

// UpdateUser saves every column of user and stamps ModifiedDate.
func (s *UserStore) UpdateUser(ctx context.Context, user *models.User) error {
	user.ModifiedDate = time.Now().UTC()
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return fmt.Errorf("update user %s: %w", user.ID, err)
	}
	return nil
}

func (s *UserStore) SetAdmin(ctx context.Context, email string, isAdmin bool) (*models.User, error) {
	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	err = s.db.WithContext(ctx).Model(user).Updates(map[string]interface{}{
		"is_admin":      isAdmin,
		"modified_date": now,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("set admin flag for %s: %w", email, err)
	}
	user.IsAdmin = isAdmin
	user.ModifiedDate = now
	return user, nil
}

func (s *UserStore) findUser(ctx context.Context, query string, arg string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where(query, arg).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}
