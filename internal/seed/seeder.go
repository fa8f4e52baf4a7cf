package seed

import (
	"context"
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"userboard/internal/domain"
	"userboard/internal/repository"
)

// Seeder bulk-inserts a batch of synthetic users at startup. It is
// fire-and-forget: the caller logs a failure and keeps the server running.
type Seeder struct {
	users  repository.UserRepository
	logger *logrus.Logger
	count  int
}

func NewSeeder(users repository.UserRepository, logger *logrus.Logger, count int) *Seeder {
	return &Seeder{
		users:  users,
		logger: logger,
		count:  count,
	}
}

func (s *Seeder) Run(ctx context.Context) error {
	users := make([]domain.User, 0, s.count)
	for i := 0; i < s.count; i++ {
		users = append(users, RandomUser())
	}

	affected, err := s.users.InsertMany(ctx, users)
	if err != nil {
		return fmt.Errorf("insert seed users: %w", err)
	}

	s.logger.Infof("seeded %d users", affected)
	return nil
}

// RandomUser generates one synthetic record with a fresh id.
func RandomUser() domain.User {
	return domain.User{
		ID:       uuid.NewString(),
		Username: gofakeit.Username(),
		Email:    gofakeit.Email(),
		Password: gofakeit.Password(true, true, true, false, false, 12),
	}
}
