package animals

import (
	"context"
	"errors"
	"testing"

	"mikombo-backend/internal/models"
	"mikombo-backend/internal/store"
)

type fakePhotos struct{ n int }

func (f *fakePhotos) Save(ctx context.Context, prefix, filename string, data []byte) (string, error) {
	f.n++
	return "/uploads/" + prefix + "/" + filename, nil
}

func newTestService() *Service {
	return NewService(NewRepository(store.NewMemoryCollection[models.Animal]()), &fakePhotos{})
}

func TestCreateDefaults(t *testing.T) {
	svc := newTestService()
	item, err := svc.Create(context.Background(), UpsertRequest{Species: "Chèvre", Name: "Bella", Enclosure: "A1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.Health != models.DefaultHealth || !item.Visible {
		t.Fatalf("unexpected defaults %+v", item)
	}
}

func TestPublicListHidesInvisible(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	hidden := false
	if _, err := svc.Create(ctx, UpsertRequest{Species: "Lapin", Name: "Caramel", Enclosure: "B"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, UpsertRequest{Species: "Âne", Name: "Gris", Enclosure: "C", Visible: &hidden}); err != nil {
		t.Fatalf("create: %v", err)
	}

	public, err := svc.ListPublic(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	admin, err := svc.ListAdmin(ctx)
	if err != nil {
		t.Fatalf("list admin: %v", err)
	}
	if len(public.Items) != 1 || len(admin.Items) != 2 {
		t.Fatalf("expected 1 public and 2 admin animals, got %d and %d", len(public.Items), len(admin.Items))
	}
}

func TestSetPhotoReplaces(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	item, err := svc.Create(ctx, UpsertRequest{Species: "Chèvre", Name: "Bella", Enclosure: "A1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.SetPhoto(ctx, item.ID, "one.jpg", []byte("x")); err != nil {
		t.Fatalf("first photo: %v", err)
	}
	second, err := svc.SetPhoto(ctx, item.ID, "two.jpg", []byte("x"))
	if err != nil {
		t.Fatalf("second photo: %v", err)
	}

	page, err := svc.ListAdmin(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Items[0].Photo != second {
		t.Fatalf("expected photo %q, got %q", second, page.Items[0].Photo)
	}
}

func TestUnknownAnimal(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	if err := svc.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on delete, got %v", err)
	}
	if _, err := svc.SetPhoto(ctx, "missing", "a.jpg", nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on photo, got %v", err)
	}
}
