package users

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"mikombo-backend/internal/models"
	"mikombo-backend/internal/store"
)

type Repository interface {
	Create(ctx context.Context, user models.User) error
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
}

type DocumentRepository struct {
	col store.Collection[models.User]
}

func NewRepository(col store.Collection[models.User]) *DocumentRepository {
	return &DocumentRepository{col: col}
}

func (r *DocumentRepository) Create(ctx context.Context, user models.User) error {
	return r.col.Insert(ctx, user)
}

func (r *DocumentRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	return r.col.FindByID(ctx, id)
}

func (r *DocumentRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return r.col.FindOne(ctx, bson.M{"email": email})
}
