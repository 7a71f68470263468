// Package usermgmt administers operator accounts from the command line.
// The web UI has no registration flow; this is the only way users are made.
package usermgmt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"asset-inventory/internal/models"
	"asset-inventory/internal/util"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

// UserInput is what an operator types when creating or updating a user.
// Empty fields on update mean "keep current value".
type UserInput struct {
	Username string `validate:"omitempty,min=3,max=64"`
	Email    string `validate:"omitempty,email,max=255"`
	Name     string `validate:"omitempty,max=128"`
	Password string `validate:"omitempty,min=8,max=72"`
}

type Manager struct {
	db       *gorm.DB
	validate *validator.Validate
}

func NewManager(db *gorm.DB) *Manager {
	return &Manager{db: db, validate: validator.New()}
}

func (m *Manager) check(in UserInput) error {
	if err := m.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", strings.ToLower(fe.Field()), fe.Tag()))
			}
			return fmt.Errorf("invalid input: %s", strings.Join(msgs, ", "))
		}
		return err
	}
	if in.Username != "" {
		if err := util.ValidateUsername(in.Username); err != nil {
			return err
		}
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Create adds a user; username and password are required.
func (m *Manager) Create(ctx context.Context, in UserInput) (*models.User, error) {
	if in.Username == "" || in.Password == "" {
		return nil, errors.New("username and password are required")
	}
	if err := m.check(in); err != nil {
		return nil, err
	}

	hash, err := util.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Username:     in.Username,
		PasswordHash: hash,
		Name:         optional(in.Name),
		Email:        optional(in.Email),
	}
	if err := m.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("username or email already in use")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

func (m *Manager) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := m.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (m *Manager) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := m.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// Update applies the non-empty fields of in. A password change signs the
// user out everywhere. It reports whether anything changed.
func (m *Manager) Update(ctx context.Context, id uint, in UserInput) (bool, error) {
	if err := m.check(in); err != nil {
		return false, err
	}
	user, err := m.Get(ctx, id)
	if err != nil {
		return false, err
	}

	changes := map[string]any{}
	if in.Username != "" && in.Username != user.Username {
		changes["username"] = in.Username
	}
	if in.Email != "" {
		changes["email"] = in.Email
	}
	if in.Name != "" {
		changes["name"] = in.Name
	}
	if in.Password != "" {
		hash, err := util.HashPassword(in.Password)
		if err != nil {
			return false, err
		}
		changes["password_hash"] = hash
	}
	if len(changes) == 0 {
		return false, nil
	}

	err = m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(user).Updates(changes).Error; err != nil {
			return err
		}
		if in.Password != "" {
			return tx.Where("user_id = ?", user.ID).Delete(&models.Session{}).Error
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, fmt.Errorf("username or email already in use")
		}
		return false, fmt.Errorf("update user: %w", err)
	}
	return true, nil
}

// Delete removes the user; its sessions go with it.
func (m *Manager) Delete(ctx context.Context, id uint) error {
	res := m.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// PrintUsers writes the listing format of the usermgmt tool.
func PrintUsers(w io.Writer, users []models.User) {
	if len(users) == 0 {
		fmt.Fprintln(w, "No users found")
		return
	}
	const rule = "--------------------------------------"
	fmt.Fprintln(w, "\nUsers:")
	fmt.Fprintln(w, rule)
	for _, u := range users {
		fmt.Fprintf(w, "ID: %d\n", u.ID)
		fmt.Fprintf(w, "Username: %s\n", u.Username)
		fmt.Fprintf(w, "Email: %s\n", deref(u.Email))
		fmt.Fprintf(w, "Created: %s\n", u.CreatedAt.UTC().Format(time.RFC3339))
		fmt.Fprintln(w, rule)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
