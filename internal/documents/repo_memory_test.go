package documents

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryRepoVersionConflict(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	doc := New("user-1", "report", "report.pdf", "key-1", FormatPDF, 100)
	if err := repo.Create(ctx, doc); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Two readers pick up the same version.
	a, _ := repo.GetByID(ctx, doc.ID)
	b, _ := repo.GetByID(ctx, doc.ID)

	a.BeginProcessing()
	if err := repo.Update(ctx, a); err != nil {
		t.Fatalf("first update: %v", err)
	}

	b.BeginProcessing()
	if err := repo.Update(ctx, b); !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("second update: got %v, want ErrVersionConflict", err)
	}
}

func TestMemoryRepoCopiesOnRead(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	doc := New("user-1", "report", "report.pdf", "key-1", FormatPDF, 100)
	if err := repo.Create(ctx, doc); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, _ := repo.GetByID(ctx, doc.ID)
	got.BeginProcessing()

	// The store must not observe mutations made on the returned copy.
	fresh, _ := repo.GetByID(ctx, doc.ID)
	if fresh.Status() != StatusUploaded {
		t.Fatalf("stored status = %s, want %s", fresh.Status(), StatusUploaded)
	}
}

func TestMemoryRepoListNewestFirst(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	older := New("user-1", "a", "a.pdf", "key-a", FormatPDF, 10)
	newer := New("user-1", "b", "b.pdf", "key-b", FormatPDF, 10)
	newer.CreatedAt = older.CreatedAt.Add(1)
	repo.Create(ctx, older)
	repo.Create(ctx, newer)

	docs, err := repo.ListByUser(ctx, "user-1", 20, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(docs) != 2 || docs[0].ID != newer.ID {
		t.Fatalf("expected newest first, got %d docs", len(docs))
	}
}
