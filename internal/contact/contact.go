package contact

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("contact not found")

// Contact is a party the user owes or is owed by.
type Contact struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Phone     string
	Note      string
	CreatedAt time.Time
}

type Repository interface {
	CreateContact(ctx context.Context, c *Contact) error
	ListContacts(ctx context.Context, userID uuid.UUID) ([]*Contact, error)
	UpdateContact(ctx context.Context, c *Contact) error
	DeleteContact(ctx context.Context, userID, id uuid.UUID) error
	GetContact(ctx context.Context, userID, id uuid.UUID) (*Contact, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, name, phone, note string) (*Contact, error) {
	c := &Contact{
		UserID: userID,
		Name:   name,
		Phone:  phone,
		Note:   note,
	}
	if err := s.repo.CreateContact(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Contact, error) {
	return s.repo.ListContacts(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Contact, error) {
	return s.repo.GetContact(ctx, userID, id)
}

func (s *Service) Update(ctx context.Context, c *Contact) error {
	return s.repo.UpdateContact(ctx, c)
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.DeleteContact(ctx, userID, id)
}
