package users

import (
	"context"
	"errors"
	"testing"
)

type recordingPurger struct {
	purged []string
}

func (r *recordingPurger) DeleteAllForUser(ctx context.Context, userID string) error {
	r.purged = append(r.purged, userID)
	return nil
}

func TestRegisterAssignsID(t *testing.T) {
	svc := NewService(NewMemoryRepo(), nil)

	user, err := svc.Register(context.Background(), User{Email: "cat@example.com", DisplayName: "Cat Person"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected an assigned id")
	}
	if user.CreatedAt.IsZero() {
		t.Fatal("expected createdAt to be set")
	}
}

func TestRegisterRequiresEmail(t *testing.T) {
	svc := NewService(NewMemoryRepo(), nil)
	if _, err := svc.Register(context.Background(), User{DisplayName: "No Email"}); err == nil {
		t.Fatal("expected error for missing email")
	}
}

func TestRegisterIsUpsert(t *testing.T) {
	svc := NewService(NewMemoryRepo(), nil)
	ctx := context.Background()

	first, err := svc.Register(ctx, User{ID: "user-1", Email: "cat@example.com"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	second, err := svc.Register(ctx, User{ID: "user-1", Email: "cat@example.com", DisplayName: "Renamed"})
	if err != nil {
		t.Fatalf("second Register: %v", err)
	}
	if second.DisplayName != "Renamed" {
		t.Fatalf("displayName = %q, want updated", second.DisplayName)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatal("createdAt must survive re-registration")
	}
}

func TestDeletePurgesDocumentsFirst(t *testing.T) {
	repo := NewMemoryRepo()
	purger := &recordingPurger{}
	svc := NewService(repo, purger)
	ctx := context.Background()

	if _, err := svc.Register(ctx, User{ID: "user-1", Email: "cat@example.com"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := svc.Delete(ctx, "user-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if len(purger.purged) != 1 || purger.purged[0] != "user-1" {
		t.Fatalf("purged = %v, want the user's documents released", purger.purged)
	}
	if _, err := svc.GetByID(ctx, "user-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound after delete", err)
	}
}

func TestDeleteUnknownUser(t *testing.T) {
	svc := NewService(NewMemoryRepo(), &recordingPurger{})
	if err := svc.Delete(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
