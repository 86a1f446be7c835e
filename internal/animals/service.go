package animals

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

var ErrNotFound = errors.New("animal not found")

const photoPrefix = "animaux"

type PhotoStore interface {
	Save(ctx context.Context, prefix, filename string, data []byte) (string, error)
}

type Service struct {
	repo   Repository
	photos PhotoStore
	now    func() time.Time
}

func NewService(repo Repository, photos PhotoStore) *Service {
	return &Service{
		repo:   repo,
		photos: photos,
		now:    time.Now,
	}
}

func (s *Service) ListPublic(ctx context.Context) (store.Page[models.Animal], error) {
	return s.repo.List(ctx, true)
}

func (s *Service) ListAdmin(ctx context.Context) (store.Page[models.Animal], error) {
	return s.repo.List(ctx, false)
}

func (s *Service) Create(ctx context.Context, req UpsertRequest) (models.Animal, error) {
	item := models.Animal{
		ID:          uuid.NewString(),
		Species:     strings.TrimSpace(req.Species),
		Name:        strings.TrimSpace(req.Name),
		Enclosure:   strings.TrimSpace(req.Enclosure),
		Health:      health(req.Health),
		Description: strings.TrimSpace(req.Description),
		Visible:     req.Visible == nil || *req.Visible,
		CreatedAt:   store.Timestamp(s.now()),
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return models.Animal{}, err
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpsertRequest) (models.Animal, error) {
	set := bson.M{
		"espece":      strings.TrimSpace(req.Species),
		"nom":         strings.TrimSpace(req.Name),
		"enclos":      strings.TrimSpace(req.Enclosure),
		"etat_sante":  health(req.Health),
		"description": strings.TrimSpace(req.Description),
		"visible":     req.Visible == nil || *req.Visible,
	}
	item, err := s.repo.Update(ctx, id, set)
	return item, notFound(err)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return notFound(s.repo.Delete(ctx, id))
}

// SetPhoto stores the image and replaces the animal's single photo.
func (s *Service) SetPhoto(ctx context.Context, id, filename string, data []byte) (string, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return "", notFound(err)
	}
	url, err := s.photos.Save(ctx, photoPrefix, filename, data)
	if err != nil {
		return "", err
	}
	if _, err := s.repo.Update(ctx, id, bson.M{"photo": url}); err != nil {
		return "", notFound(err)
	}
	return url, nil
}

func health(v string) string {
	if v = strings.TrimSpace(v); v == "" {
		return models.DefaultHealth
	}
	return v
}

func notFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
