package reservations

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"mikombo-backend/internal/models"
	"mikombo-backend/internal/store"
)

type Repository interface {
	Create(ctx context.Context, item models.Reservation) error
	SetStatus(ctx context.Context, id, status string) (models.Reservation, error)
	ListByUser(ctx context.Context, userID string) (store.Page[models.Reservation], error)
	ListAll(ctx context.Context) (store.Page[models.Reservation], error)
}

type DocumentRepository struct {
	col store.Collection[models.Reservation]
}

func NewRepository(col store.Collection[models.Reservation]) *DocumentRepository {
	return &DocumentRepository{col: col}
}

func (r *DocumentRepository) Create(ctx context.Context, item models.Reservation) error {
	return r.col.Insert(ctx, item)
}

func (r *DocumentRepository) SetStatus(ctx context.Context, id, status string) (models.Reservation, error) {
	return r.col.Update(ctx, id, bson.M{"statut": status})
}

func (r *DocumentRepository) ListByUser(ctx context.Context, userID string) (store.Page[models.Reservation], error) {
	return store.List(ctx, r.col, bson.M{"user_id": userID})
}

func (r *DocumentRepository) ListAll(ctx context.Context) (store.Page[models.Reservation], error) {
	return store.List(ctx, r.col, bson.M{})
}
