package repository

import (
	"context"
	"testing"
	"time"

	"github.com/kitshop/internal/constants"
	"github.com/kitshop/internal/models"
)

func TestKitRequestRepositoryListNewestFirst(t *testing.T) {
	db := openRepositoryTestDB(t, "kit_request_list")
	repo := NewKitRequestRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	older := &models.KitRequest{KitName: "Kit Solar", Name: "Ana", Email: "ana@example.com", CreatedAt: base}
	newer := &models.KitRequest{KitName: "Kit Eólico", Name: "Luis", Email: "luis@example.com", CreatedAt: base.Add(time.Minute)}
	for _, req := range []*models.KitRequest{older, newer} {
		if err := repo.Create(ctx, req); err != nil {
			t.Fatalf("create kit request failed: %v", err)
		}
	}
	stored, err := repo.GetByID(ctx, older.ID)
	if err != nil || stored == nil || stored.Status != constants.KitRequestStatusPending {
		t.Fatalf("expected default status pending, got %+v err=%v", stored, err)
	}

	list, total, err := repo.List(ctx, KitRequestListFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(list) != 2 {
		t.Fatalf("expected 2 requests, got total=%d len=%d", total, len(list))
	}
	if list[0].ID != newer.ID {
		t.Fatalf("expected newest first, got %d", list[0].ID)
	}

	byEmail, total, err := repo.List(ctx, KitRequestListFilter{Email: "ana@example.com"})
	if err != nil || total != 1 || byEmail[0].ID != older.ID {
		t.Fatalf("expected email filter to match older request, got total=%d err=%v", total, err)
	}
}

func TestKitRequestRepositoryUpdateStatus(t *testing.T) {
	db := openRepositoryTestDB(t, "kit_request_status")
	repo := NewKitRequestRepository(db)
	ctx := context.Background()

	req := &models.KitRequest{KitName: "Kit Solar", Name: "Ana", Email: "ana@example.com"}
	if err := repo.Create(ctx, req); err != nil {
		t.Fatalf("create kit request failed: %v", err)
	}
	ok, err := repo.UpdateStatus(ctx, req.ID, constants.KitRequestStatusContacted)
	if err != nil || !ok {
		t.Fatalf("expected status update, got ok=%v err=%v", ok, err)
	}
	got, err := repo.GetByID(ctx, req.ID)
	if err != nil || got == nil || got.Status != constants.KitRequestStatusContacted {
		t.Fatalf("expected contacted status, got %+v err=%v", got, err)
	}

	pending, total, err := repo.List(ctx, KitRequestListFilter{Status: constants.KitRequestStatusPending})
	if err != nil || total != 0 || len(pending) != 0 {
		t.Fatalf("expected no pending requests, got total=%d err=%v", total, err)
	}

	ok, err = repo.UpdateStatus(ctx, req.ID+100, constants.KitRequestStatusClosed)
	if err != nil || ok {
		t.Fatalf("expected missing request to report false, got ok=%v err=%v", ok, err)
	}
	missing, err := repo.GetByID(ctx, req.ID+100)
	if err != nil || missing != nil {
		t.Fatalf("expected nil for missing request, got %+v err=%v", missing, err)
	}
}
