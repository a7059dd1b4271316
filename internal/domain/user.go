package domain

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ErrDuplicateEmail is returned by the repository when an insert or update
// loses the unique-index race on users.email.
var ErrDuplicateEmail = errors.New("email already registered")

type User struct {
	ID           string `gorm:"primaryKey;size:32" json:"id"`
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Name         string `gorm:"size:64;not null" json:"name"`
	PasswordHash string `gorm:"size:100;not null" json:"-"`
	Role         string `gorm:"size:16;not null;default:user" json:"role"` // "user"/"admin"

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// UserFinder is the lookup the auth gate needs: resolve a token's subject
// to a live user without loading the password hash. Not-found is (nil, nil).
type UserFinder interface {
	FindForAuth(id string) (*User, error)
}

type UserRepository interface {
	UserFinder
	Create(u *User) error
	FindByID(id string) (*User, error)
	FindByEmail(email string) (*User, error)
	// EmailTaken reports whether email belongs to a user other than excludeID.
	EmailTaken(email, excludeID string) (bool, error)
	List(offset, limit int, q string, withDeleted bool) ([]User, int64, error)
	Update(u *User) error
	SoftDelete(id string) error
}
