package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"alhyra_organics/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const AdminUserID = "admin-1"

var (
	ErrInvalidCredentials = errors.New("Invalid Admin password.")
	ErrEmailRequired      = errors.New("Email is required")
)

// UserRepository signs people in. The configured admin must give the exact
// password; any other email is let in as a customer and remembered so their
// id, and with it their order history, survives later logins.
type UserRepository struct {
	Store     models.Store
	Delay     time.Duration
	adminName string
	adminMail string
	adminHash []byte
}

func NewUserRepository(store models.Store, adminEmail, adminPassword, adminName string, delay time.Duration) (*UserRepository, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), 12)
	if err != nil {
		return nil, err
	}
	return &UserRepository{
		Store:     store,
		Delay:     delay,
		adminName: adminName,
		adminMail: strings.TrimSpace(adminEmail),
		adminHash: hash,
	}, nil
}

func (m *UserRepository) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	if m.Delay > 0 {
		t := time.NewTimer(m.Delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return models.User{}, ctx.Err()
		}
	}

	email = strings.TrimSpace(email)
	if email == "" {
		return models.User{}, ErrEmailRequired
	}

	if strings.EqualFold(email, m.adminMail) {
		err := bcrypt.CompareHashAndPassword(m.adminHash, []byte(password))
		if err != nil {
			if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
				return models.User{}, ErrInvalidCredentials
			}
			return models.User{}, err
		}
		return models.User{
			ID:    AdminUserID,
			Name:  m.adminName,
			Email: m.adminMail,
			Role:  models.RoleAdmin,
		}, nil
	}

	return m.customer(ctx, email)
}

func (m *UserRepository) customer(ctx context.Context, email string) (models.User, error) {
	user, err := m.Store.GetUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, models.ErrNoRecord) {
		return models.User{}, err
	}

	name, _, _ := strings.Cut(email, "@")
	user = models.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     strings.ToLower(email),
		Role:      models.RoleCustomer,
		CreatedAt: time.Now().UTC(),
	}
	err = m.Store.InsertUser(ctx, user)
	if errors.Is(err, models.ErrDuplicate) {
		// Someone else signed up with this email in between.
		return m.Store.GetUserByEmail(ctx, email)
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}
