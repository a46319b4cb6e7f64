package users

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// DocumentPurger releases everything a user has stored, files included. It is
// satisfied by the documents service.
type DocumentPurger interface {
	DeleteAllForUser(ctx context.Context, userID string) error
}

type Service struct {
	Repo      Repo
	Documents DocumentPurger
}

func NewService(repo Repo, documents DocumentPurger) *Service {
	return &Service{Repo: repo, Documents: documents}
}

// Register creates or refreshes the user row for an asserted identity.
func (s *Service) Register(ctx context.Context, user User) (User, error) {
	if strings.TrimSpace(user.Email) == "" {
		return User{}, errors.New("email is required")
	}
	if strings.TrimSpace(user.ID) == "" {
		user.ID = uuid.NewString()
	}
	if err := s.Repo.Upsert(ctx, user); err != nil {
		return User{}, err
	}
	return s.Repo.GetByID(ctx, user.ID)
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("user id is required")
	}
	return s.Repo.GetByID(ctx, userID)
}

// Delete removes the user and everything they stored. Documents go first so
// their files are released; the row delete then cascades any stragglers.
func (s *Service) Delete(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return errors.New("user id is required")
	}
	if s.Documents != nil {
		if err := s.Documents.DeleteAllForUser(ctx, userID); err != nil {
			return err
		}
	}
	return s.Repo.Delete(ctx, userID)
}
