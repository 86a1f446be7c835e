package cultures

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"mikombo-backend/internal/models"
	"mikombo-backend/internal/store"
)

var ErrNotFound = errors.New("culture not found")

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) List(ctx context.Context) (store.Page[models.Culture], error) {
	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, req UpsertRequest) (models.Culture, error) {
	item := models.Culture{
		ID:               uuid.NewString(),
		CropType:         strings.TrimSpace(req.CropType),
		Surface:          *req.Surface,
		ProductionPeriod: strings.TrimSpace(req.ProductionPeriod),
		Status:           status(req.Status),
		CreatedAt:        store.Timestamp(s.now()),
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return models.Culture{}, err
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpsertRequest) (models.Culture, error) {
	item, err := s.repo.Update(ctx, id, bson.M{
		"type_culture":       strings.TrimSpace(req.CropType),
		"surface":            *req.Surface,
		"periode_production": strings.TrimSpace(req.ProductionPeriod),
		"statut":             status(req.Status),
	})
	if errors.Is(err, store.ErrNotFound) {
		return item, ErrNotFound
	}
	return item, err
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func status(v string) string {
	if v == "" {
		return models.CultureInProduction
	}
	return v
}
