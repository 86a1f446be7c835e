package orders

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"mikombo-backend/internal/models"
	"mikombo-backend/internal/store"
)

type Repository interface {
	Create(ctx context.Context, item models.Order) error
	Get(ctx context.Context, id string) (models.Order, error)
	SetStatus(ctx context.Context, id, status string, updatedAt time.Time) (models.Order, error)
	ListByUser(ctx context.Context, userID string) (store.Page[models.Order], error)
	ListAll(ctx context.Context) (store.Page[models.Order], error)
}

type DocumentRepository struct {
	col store.Collection[models.Order]
}

func NewRepository(col store.Collection[models.Order]) *DocumentRepository {
	return &DocumentRepository{col: col}
}

func (r *DocumentRepository) Create(ctx context.Context, item models.Order) error {
	return r.col.Insert(ctx, item)
}

func (r *DocumentRepository) Get(ctx context.Context, id string) (models.Order, error) {
	return r.col.FindByID(ctx, id)
}

func (r *DocumentRepository) SetStatus(ctx context.Context, id, status string, updatedAt time.Time) (models.Order, error) {
	return r.col.Update(ctx, id, bson.M{"statut": status, "updated_at": updatedAt})
}

func (r *DocumentRepository) ListByUser(ctx context.Context, userID string) (store.Page[models.Order], error) {
	return store.List(ctx, r.col, bson.M{"user_id": userID})
}

func (r *DocumentRepository) ListAll(ctx context.Context) (store.Page[models.Order], error) {
	return store.List(ctx, r.col, bson.M{})
}
