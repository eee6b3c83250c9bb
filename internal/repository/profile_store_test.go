package repository

import (
	"context"
	"testing"

	"GeoPulse/internal/domain/models"
)

func storeProfile(id string) models.RegionProfile {
	return models.RegionProfile{
		ID:                id,
		Name:              "Test Region",
		ProxyType:         "ports",
		PhysBaseline:      0.1,
		PhysVolatility:    0.08,
		WeekendMultiplier: 0.7,
		Persistence:       0.6,
		VolumeBaseline:    100,
		HypeTendency:      0.5,
		DiversityBaseline: 0.5,
		RegimeWeights:     map[models.RegimeType]float64{models.RegimeRealGrowth: 1},
	}
}

func TestProfileStoreGetAndList(t *testing.T) {
	store, err := NewConfigProfileStore([]models.RegionProfile{
		storeProfile("suez_logistics"),
		storeProfile("la_port"),
	})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	p, err := store.Get(ctx, "la_port")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.ID != "la_port" {
		t.Fatalf("wrong profile %s", p.ID)
	}

	if _, err := store.Get(ctx, "atlantis"); err == nil {
		t.Fatalf("unknown region should error")
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(list))
	}
	if list[0].ID != "la_port" || list[1].ID != "suez_logistics" {
		t.Fatalf("list not sorted by id: %s, %s", list[0].ID, list[1].ID)
	}
}

func TestProfileStoreRejectsBadInput(t *testing.T) {
	if _, err := NewConfigProfileStore(nil); err == nil {
		t.Fatalf("empty profile set should error")
	}

	if _, err := NewConfigProfileStore([]models.RegionProfile{
		storeProfile("dup"), storeProfile("dup"),
	}); err == nil {
		t.Fatalf("duplicate ids should error")
	}

	bad := storeProfile("bad")
	bad.Persistence = 2
	if _, err := NewConfigProfileStore([]models.RegionProfile{bad}); err == nil {
		t.Fatalf("invalid profile should error")
	}
}
