package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/google/uuid"

	"userboard/internal/domain"
	"userboard/internal/repository"
)

var (
	// ErrUserNotFound indicates no record exists for the given id.
	ErrUserNotFound = errors.New("user not found")
	// ErrWrongPassword indicates the supplied credential does not match the stored one.
	ErrWrongPassword = errors.New("wrong password")
)

// UserService exposes record lifecycle operations. Update and delete are
// gated on knowledge of the record's current password.
type UserService interface {
	Create(ctx context.Context, username, email, password string) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Count(ctx context.Context) (int64, error)
	Guard(ctx context.Context, id, password string) (*domain.User, error)
	UpdateUsername(ctx context.Context, id, password, newUsername string) error
	Delete(ctx context.Context, id, password string) error
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Create(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" {
		return nil, errors.New("username is required")
	}
	if email == "" {
		return nil, errors.New("email is required")
	}
	if password == "" {
		return nil, errors.New("password is required")
	}

	user := domain.User{
		ID:       uuid.NewString(),
		Username: username,
		Email:    email,
		Password: password,
	}

	if _, err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *userService) Count(ctx context.Context) (int64, error) {
	return s.users.Count(ctx)
}

// Guard authorizes a mutation of the record with the given id: the record
// must exist and the supplied password must equal the stored one exactly.
// The mutation itself is issued by the caller after a successful guard.
func (s *userService) Guard(ctx context.Context, id, password string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if subtle.ConstantTimeCompare([]byte(password), []byte(user.Password)) != 1 {
		return nil, ErrWrongPassword
	}
	return user, nil
}

func (s *userService) UpdateUsername(ctx context.Context, id, password, newUsername string) error {
	newUsername = strings.TrimSpace(newUsername)
	if newUsername == "" {
		return errors.New("username is required")
	}

	if _, err := s.Guard(ctx, id, password); err != nil {
		return err
	}

	affected, err := s.users.UpdateUsername(ctx, id, newUsername)
	if err != nil {
		return err
	}
	// record vanished between check and act
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *userService) Delete(ctx context.Context, id, password string) error {
	if _, err := s.Guard(ctx, id, password); err != nil {
		return err
	}

	affected, err := s.users.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}
