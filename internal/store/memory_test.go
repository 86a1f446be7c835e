package store

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

type testDoc struct {
	ID        string    `bson:"id"`
	Email     string    `bson:"email"`
	Category  string    `bson:"categorie"`
	Visible   bool      `bson:"visible"`
	Photos    []string  `bson:"photos"`
	CreatedAt time.Time `bson:"created_at"`
}

func TestMemoryCollectionCRUD(t *testing.T) {
	ctx := context.Background()
	col := NewMemoryCollection[testDoc]("email")

	if err := col.Insert(ctx, testDoc{ID: "a", Email: "a@x.test", Category: "Fruits", Visible: true}); err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if err := col.Insert(ctx, testDoc{ID: "b", Email: "b@x.test", Category: "Légumes", Visible: false}); err != nil {
		t.Fatalf("Insert error: %v", err)
	}

	if err := col.Insert(ctx, testDoc{ID: "c", Email: "a@x.test"}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate on unique field, got %v", err)
	}
	if err := col.Insert(ctx, testDoc{ID: "a", Email: "z@x.test"}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate on id, got %v", err)
	}

	visible, err := col.Find(ctx, bson.M{"visible": true}, 10)
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}
	if len(visible) != 1 || visible[0].ID != "a" {
		t.Fatalf("unexpected visible docs: %+v", visible)
	}

	all, err := col.Find(ctx, nil, 10)
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}
	if len(all) != 2 || all[0].ID != "b" {
		t.Fatalf("expected newest first, got %+v", all)
	}

	updated, err := col.Update(ctx, "b", bson.M{"visible": true})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if !updated.Visible || updated.Email != "b@x.test" {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	if n, _ := col.Count(ctx, bson.M{"visible": true}); n != 2 {
		t.Fatalf("expected 2 visible docs after update, got %d", n)
	}

	if err := col.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := col.FindByID(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := col.Delete(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting twice, got %v", err)
	}
	if _, err := col.Update(ctx, "missing", bson.M{"visible": true}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound updating missing doc, got %v", err)
	}
}

func TestMemoryCollectionPush(t *testing.T) {
	ctx := context.Background()
	col := NewMemoryCollection[testDoc]()
	_ = col.Insert(ctx, testDoc{ID: "p"})

	doc, err := col.Push(ctx, "p", "photos", "/uploads/produits/1.jpg")
	if err != nil {
		t.Fatalf("Push error: %v", err)
	}
	doc, err = col.Push(ctx, "p", "photos", "/uploads/produits/2.jpg")
	if err != nil {
		t.Fatalf("Push error: %v", err)
	}
	if len(doc.Photos) != 2 || doc.Photos[1] != "/uploads/produits/2.jpg" {
		t.Fatalf("unexpected photos: %v", doc.Photos)
	}
	if _, err := col.Push(ctx, "p", "email", "x"); err == nil {
		t.Fatalf("expected error pushing onto a scalar field")
	}
}

func TestListReportsTruncation(t *testing.T) {
	ctx := context.Background()
	col := NewMemoryCollection[testDoc]()
	for i := 0; i < MaxList+1; i++ {
		_ = col.Insert(ctx, testDoc{ID: "doc-" + strconv.Itoa(i)})
	}

	page, err := List[testDoc](ctx, col, nil)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if !page.Truncated || len(page.Items) != MaxList {
		t.Fatalf("expected truncated page of %d, got %d truncated=%v", MaxList, len(page.Items), page.Truncated)
	}

	_ = col.Delete(ctx, page.Items[0].ID)
	page, err = List[testDoc](ctx, col, nil)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if page.Truncated || len(page.Items) != MaxList {
		t.Fatalf("expected complete page, got %d truncated=%v", len(page.Items), page.Truncated)
	}
}
