package animals

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"mikombo-backend/internal/models"
	"mikombo-backend/internal/store"
)

type Repository interface {
	Create(ctx context.Context, item models.Animal) error
	Get(ctx context.Context, id string) (models.Animal, error)
	Update(ctx context.Context, id string, set bson.M) (models.Animal, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, visibleOnly bool) (store.Page[models.Animal], error)
}

type DocumentRepository struct {
	col store.Collection[models.Animal]
}

func NewRepository(col store.Collection[models.Animal]) *DocumentRepository {
	return &DocumentRepository{col: col}
}

func (r *DocumentRepository) Create(ctx context.Context, item models.Animal) error {
	return r.col.Insert(ctx, item)
}

func (r *DocumentRepository) Get(ctx context.Context, id string) (models.Animal, error) {
	return r.col.FindByID(ctx, id)
}

func (r *DocumentRepository) Update(ctx context.Context, id string, set bson.M) (models.Animal, error) {
	return r.col.Update(ctx, id, set)
}

func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	return r.col.Delete(ctx, id)
}

func (r *DocumentRepository) List(ctx context.Context, visibleOnly bool) (store.Page[models.Animal], error) {
	filter := bson.M{}
	if visibleOnly {
		filter["visible"] = true
	}
	return store.List(ctx, r.col, filter)
}
