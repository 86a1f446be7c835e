package products

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"mikombo-backend/internal/models"
	"mikombo-backend/internal/store"
)

type Repository interface {
	Create(ctx context.Context, item models.Product) error
	Get(ctx context.Context, id string) (models.Product, error)
	Update(ctx context.Context, id string, set bson.M) (models.Product, error)
	AddPhoto(ctx context.Context, id, url string) (models.Product, error)
	Delete(ctx context.Context, id string) error
	ListVisible(ctx context.Context, category string) (store.Page[models.Product], error)
	ListAll(ctx context.Context) (store.Page[models.Product], error)
}

type DocumentRepository struct {
	col store.Collection[models.Product]
}

func NewRepository(col store.Collection[models.Product]) *DocumentRepository {
	return &DocumentRepository{col: col}
}

func (r *DocumentRepository) Create(ctx context.Context, item models.Product) error {
	return r.col.Insert(ctx, item)
}

func (r *DocumentRepository) Get(ctx context.Context, id string) (models.Product, error) {
	return r.col.FindByID(ctx, id)
}

func (r *DocumentRepository) Update(ctx context.Context, id string, set bson.M) (models.Product, error) {
	return r.col.Update(ctx, id, set)
}

// AddPhoto appends atomically so concurrent uploads do not lose each other.
func (r *DocumentRepository) AddPhoto(ctx context.Context, id, url string) (models.Product, error) {
	return r.col.Push(ctx, id, "photos", url)
}

func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	return r.col.Delete(ctx, id)
}

func (r *DocumentRepository) ListVisible(ctx context.Context, category string) (store.Page[models.Product], error) {
	filter := bson.M{"visible": true}
	if category != "" {
		filter["categorie"] = category
	}
	return store.List(ctx, r.col, filter)
}

func (r *DocumentRepository) ListAll(ctx context.Context) (store.Page[models.Product], error) {
	return store.List(ctx, r.col, bson.M{})
}
