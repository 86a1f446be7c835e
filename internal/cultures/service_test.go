package cultures

import (
	"context"
	"errors"
	"testing"

	"mikombo-backend/internal/models"
	"mikombo-backend/internal/store"
	"mikombo-backend/internal/validation"
)

func newTestService() *Service {
	return NewService(NewRepository(store.NewMemoryCollection[models.Culture]()))
}

func TestCreateDefaultsToInProduction(t *testing.T) {
	surface := 1.5
	item, err := newTestService().Create(context.Background(), UpsertRequest{CropType: "Maïs", Surface: &surface, ProductionPeriod: "mars-juin"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.Status != models.CultureInProduction {
		t.Fatalf("expected default status, got %q", item.Status)
	}
}

func TestUpdateStatus(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	surface := 2.0
	item, err := svc.Create(ctx, UpsertRequest{CropType: "Manioc", Surface: &surface, ProductionPeriod: "toute l'année"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, item.ID, UpsertRequest{CropType: "Manioc", Surface: &surface, ProductionPeriod: "toute l'année", Status: models.CultureOffSeason})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != models.CultureOffSeason || !updated.CreatedAt.Equal(item.CreatedAt) {
		t.Fatalf("unexpected update result %+v", updated)
	}
}

func TestUnknownCulture(t *testing.T) {
	svc := newTestService()
	surface := 1.0
	if _, err := svc.Update(context.Background(), "missing", UpsertRequest{CropType: "x", Surface: &surface, ProductionPeriod: "y"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on delete, got %v", err)
	}
}

func TestStatusValidation(t *testing.T) {
	val := validation.New()
	surface := 1.0
	err := val.Struct(UpsertRequest{CropType: "Maïs", Surface: &surface, ProductionPeriod: "été", Status: "recolte"})
	details := val.ValidationErrors(err)
	if len(details) != 1 || details[0].Field() != "statut" {
		t.Fatalf("expected statut validation error, got %v", err)
	}
}
