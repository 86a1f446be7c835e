package cultures

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"mikombo-backend/internal/models"
	"mikombo-backend/internal/store"
)

type Repository interface {
	Create(ctx context.Context, item models.Culture) error
	Update(ctx context.Context, id string, set bson.M) (models.Culture, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) (store.Page[models.Culture], error)
}

type DocumentRepository struct {
	col store.Collection[models.Culture]
}

func NewRepository(col store.Collection[models.Culture]) *DocumentRepository {
	return &DocumentRepository{col: col}
}

func (r *DocumentRepository) Create(ctx context.Context, item models.Culture) error {
	return r.col.Insert(ctx, item)
}

func (r *DocumentRepository) Update(ctx context.Context, id string, set bson.M) (models.Culture, error) {
	return r.col.Update(ctx, id, set)
}

func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	return r.col.Delete(ctx, id)
}

func (r *DocumentRepository) List(ctx context.Context) (store.Page[models.Culture], error) {
	return store.List(ctx, r.col, bson.M{})
}
