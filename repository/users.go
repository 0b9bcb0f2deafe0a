package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pizza-store/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// hashCost is lowered by tests.
var hashCost = bcrypt.DefaultCost

// NewUser is a self-registration request.
type NewUser struct {
	Login    string `validate:"required,max=50"`
	Password string `validate:"required,max=72"`
	PhoneNum string `validate:"max=16"`
}

// UserField names a single column a profile or admin update may change.
type UserField string

const (
	UserPassword  UserField = "password"
	UserRole      UserField = "role"
	UserFavorites UserField = "favoriteitems"
	UserPhone     UserField = "phonenum"
)

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func isBcryptHash(stored string) bool {
	if !strings.HasPrefix(stored, "$2") {
		return false
	}
	_, err := bcrypt.Cost([]byte(stored))
	return err == nil
}

// passwordMatches compares ignoring surrounding whitespace. Rows written before hashing was
// introduced still hold plaintext and are compared directly.
func passwordMatches(stored, given string) bool {
	stored = strings.TrimSpace(stored)
	given = strings.TrimSpace(given)
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return stored == given
}

// CreateUser registers a customer account.
func (r *Repository) CreateUser(ctx context.Context, in NewUser) (*models.User, error) {
	in.Login = strings.TrimSpace(in.Login)
	in.Password = strings.TrimSpace(in.Password)
	in.PhoneNum = strings.TrimSpace(in.PhoneNum)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	exists, err := r.UserExists(ctx, in.Login)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrLoginTaken
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Login:    in.Login,
		Password: hash,
		Role:     models.RoleCustomer,
		PhoneNum: in.PhoneNum,
	}
	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &user, nil
}

// Authenticate checks a login/password pair. Both sides are compared after trimming.
func (r *Repository) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil, ErrInvalidCredentials
	}

	var candidates []models.User
	if err := r.db.WithContext(ctx).Where("TRIM(login) = ?", login).Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	for _, u := range candidates {
		if passwordMatches(u.Password, password) {
			u.Login = strings.TrimSpace(u.Login)
			u.Role = models.UserRole(strings.TrimSpace(string(u.Role)))
			return &u, nil
		}
	}
	return nil, ErrInvalidCredentials
}

func (r *Repository) GetUser(ctx context.Context, login string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("TRIM(login) = ?", strings.TrimSpace(login)).First(&user).Error
	switch {
	case err == nil:
		return &user, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrUserNotFound
	default:
		return nil, fmt.Errorf("select user: %w", err)
	}
}

// CurrentRole returns the role a user holds right now.
func (r *Repository) CurrentRole(ctx context.Context, login string) (models.UserRole, error) {
	user, err := r.GetUser(ctx, login)
	if err != nil {
		return "", err
	}
	return models.UserRole(strings.TrimSpace(string(user.Role))), nil
}

func (r *Repository) UserExists(ctx context.Context, login string) (bool, error) {
	n, err := r.conn.QueryCount(ctx, `SELECT 1 FROM users WHERE TRIM(login) = ?`, strings.TrimSpace(login))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// UpdateUserField changes one column of a user row. Passwords are hashed, roles validated and
// empty favourites cleared to NULL.
func (r *Repository) UpdateUserField(ctx context.Context, login string, field UserField, value string) error {
	value = strings.TrimSpace(value)
	var column interface{} = value

	switch field {
	case UserPassword:
		if value == "" {
			return fmt.Errorf("%w: password is empty", ErrInvalidInput)
		}
		hash, err := hashPassword(value)
		if err != nil {
			return err
		}
		column = hash
	case UserRole:
		if !models.UserRole(value).Valid() {
			return ErrInvalidRole
		}
	case UserFavorites:
		if value == "" {
			column = nil
		}
	case UserPhone:
	default:
		return fmt.Errorf("%w: unknown field %q", ErrInvalidInput, field)
	}

	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("TRIM(login) = ?", strings.TrimSpace(login)).
		Update(string(field), column)
	if res.Error != nil {
		return fmt.Errorf("update user %s: %w", field, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
