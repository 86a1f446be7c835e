package products

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

var ErrNotFound = errors.New("product not found")

const photoPrefix = "produits"

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

func (s *Service) ListPublic(ctx context.Context, category string) (store.Page[models.Product], error) {
	return s.repo.ListVisible(ctx, strings.TrimSpace(category))
}

func (s *Service) ListAdmin(ctx context.Context) (store.Page[models.Product], error) {
	return s.repo.ListAll(ctx)
}

// Get ignores visibility: a hidden product stays reachable by id.
func (s *Service) Get(ctx context.Context, id string) (models.Product, error) {
	item, err := s.repo.Get(ctx, id)
	return item, notFound(err)
}

func (s *Service) Create(ctx context.Context, req UpsertRequest) (models.Product, error) {
	item := models.Product{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Category:    strings.TrimSpace(req.Category),
		Description: strings.TrimSpace(req.Description),
		Price:       *req.Price,
		Unit:        strings.TrimSpace(req.Unit),
		Stock:       *req.Stock,
		Seasonal:    req.Seasonal,
		Photos:      []string{},
		Visible:     req.visible(),
		CreatedAt:   store.Timestamp(s.now()),
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return models.Product{}, err
	}
	return item, nil
}

// Update replaces the editable fields. Photos and created_at are kept.
func (s *Service) Update(ctx context.Context, id string, req UpsertRequest) (models.Product, error) {
	set := bson.M{
		"nom":         strings.TrimSpace(req.Name),
		"categorie":   strings.TrimSpace(req.Category),
		"description": strings.TrimSpace(req.Description),
		"prix":        *req.Price,
		"unite":       strings.TrimSpace(req.Unit),
		"stock":       *req.Stock,
		"saison":      req.Seasonal,
		"visible":     req.visible(),
	}
	item, err := s.repo.Update(ctx, id, set)
	return item, notFound(err)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return notFound(s.repo.Delete(ctx, id))
}

// AddPhoto stores the image and appends its URL to the product's photos.
func (s *Service) AddPhoto(ctx context.Context, id, filename string, data []byte) (string, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return "", notFound(err)
	}
	url, err := s.photos.Save(ctx, photoPrefix, filename, data)
	if err != nil {
		return "", err
	}
	if _, err := s.repo.AddPhoto(ctx, id, url); err != nil {
		return "", notFound(err)
	}
	return url, nil
}

func notFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
