package category

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("category not found")

// Category labels transactions (rent, groceries, informal loan, ...).
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	CreatedAt time.Time
}

type Repository interface {
	CreateCategory(ctx context.Context, c *Category) error
	ListCategories(ctx context.Context, userID uuid.UUID) ([]*Category, error)
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, userID, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, name string) (*Category, error) {
	c := &Category{UserID: userID, Name: name}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Category, error) {
	return s.repo.ListCategories(ctx, userID)
}

func (s *Service) Update(ctx context.Context, c *Category) error {
	return s.repo.UpdateCategory(ctx, c)
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.DeleteCategory(ctx, userID, id)
}
