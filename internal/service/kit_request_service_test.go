package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/kitshop/internal/constants"
	"github.com/kitshop/internal/models"
	"github.com/kitshop/internal/repository"
)

type recordingLeadNotifier struct {
	mu  sync.Mutex
	ids []uint
}

func (n *recordingLeadNotifier) KitRequestReceived(_ context.Context, req *models.KitRequest) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ids = append(n.ids, req.ID)
}

func TestKitRequestCreateNormalizesAndNotifies(t *testing.T) {
	f := newShopFixture(t, "kit_request_create")
	notifier := &recordingLeadNotifier{}
	svc := NewKitRequestService(f.kitRequests, f.catalog, notifier)
	ctx := context.Background()

	req, err := svc.Create(ctx, KitRequestInput{
		KitName: "  Kit Solar 200W ",
		Name:    " Ana ",
		Email:   " Ana@Example.COM ",
		Locale:  "es-MX",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if req.ID == 0 || req.Email != "ana@example.com" || req.Name != "Ana" || req.KitName != "Kit Solar 200W" {
		t.Fatalf("unexpected stored request: %+v", req)
	}
	if req.Status != constants.KitRequestStatusPending || req.Message != "" || req.Locale != "es" {
		t.Fatalf("unexpected defaults: %+v", req)
	}
	if len(notifier.ids) != 1 || notifier.ids[0] != req.ID {
		t.Fatalf("expected one notification, got %v", notifier.ids)
	}
}

func TestKitRequestCreateValidation(t *testing.T) {
	f := newShopFixture(t, "kit_request_validation")
	notifier := &recordingLeadNotifier{}
	svc := NewKitRequestService(f.kitRequests, f.catalog, notifier)
	ctx := context.Background()

	cases := []struct {
		input KitRequestInput
		want  error
	}{
		{KitRequestInput{KitName: "Kit", Email: "ana@example.com"}, ErrKitRequestNameRequired},
		{KitRequestInput{KitName: "Kit", Name: "Ana", Email: "  "}, ErrKitRequestNameRequired},
		{KitRequestInput{KitName: "Kit", Name: "Ana", Email: "ana-at-example"}, ErrInvalidEmail},
		{KitRequestInput{Name: "Ana", Email: "ana@example.com"}, ErrKitRequestKitRequired},
		{KitRequestInput{KitID: 404, Name: "Ana", Email: "ana@example.com"}, ErrCatalogItemNotFound},
		{KitRequestInput{KitName: "Kit", Name: "Ana", Email: "ana@example.com", Message: strings.Repeat("m", 5001)}, ErrKitRequestFieldTooLong},
	}
	for i, tc := range cases {
		if _, err := svc.Create(ctx, tc.input); !errors.Is(err, tc.want) {
			t.Fatalf("case %d: expected %v, got %v", i, tc.want, err)
		}
	}
	if len(notifier.ids) != 0 {
		t.Fatalf("rejected requests must not notify, got %v", notifier.ids)
	}
}

func TestKitRequestCreateFromCatalogKit(t *testing.T) {
	f := newShopFixture(t, "kit_request_catalog")
	kit := f.seedKit(t, 77, "Kit Eólico", "120.00")
	svc := NewKitRequestService(f.kitRequests, f.catalog, nil)

	req, err := svc.Create(context.Background(), KitRequestInput{KitID: kit.ID, Name: "Luis", Email: "luis@example.com", Message: "hola"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if req.KitID == nil || *req.KitID != kit.ID || req.KitName != "Kit Eólico" {
		t.Fatalf("expected kit resolved from catalog, got %+v", req)
	}
}

func TestKitRequestListAndStatus(t *testing.T) {
	f := newShopFixture(t, "kit_request_list")
	svc := NewKitRequestService(f.kitRequests, f.catalog, nil)
	ctx := context.Background()

	if _, _, err := svc.List(ctx, repository.KitRequestListFilter{}); !errors.Is(err, ErrKitRequestNotFound) {
		t.Fatalf("expected not found on empty list, got %v", err)
	}

	first, err := svc.Create(ctx, KitRequestInput{KitName: "Kit A", Name: "Ana", Email: "ana@example.com"})
	if err != nil {
		t.Fatalf("create first failed: %v", err)
	}
	if _, err := svc.Create(ctx, KitRequestInput{KitName: "Kit B", Name: "Luis", Email: "luis@example.com"}); err != nil {
		t.Fatalf("create second failed: %v", err)
	}
	list, total, err := svc.List(ctx, repository.KitRequestListFilter{})
	if err != nil || total != 2 || len(list) != 2 {
		t.Fatalf("expected 2 requests, got total=%d err=%v", total, err)
	}
	if list[0].KitName != "Kit B" {
		t.Fatalf("expected newest first, got %s", list[0].KitName)
	}

	if _, _, err := svc.List(ctx, repository.KitRequestListFilter{Status: "archived"}); !errors.Is(err, ErrKitRequestStatusInvalid) {
		t.Fatalf("expected invalid status filter, got %v", err)
	}
	updated, err := svc.UpdateStatus(ctx, first.ID, " Contacted ")
	if err != nil || updated.Status != constants.KitRequestStatusContacted {
		t.Fatalf("expected contacted, got %+v err=%v", updated, err)
	}
	if _, err := svc.UpdateStatus(ctx, first.ID, "lost"); !errors.Is(err, ErrKitRequestStatusInvalid) {
		t.Fatalf("expected invalid status, got %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, first.ID+100, constants.KitRequestStatusClosed); !errors.Is(err, ErrKitRequestNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, total, err := svc.List(ctx, repository.KitRequestListFilter{Status: constants.KitRequestStatusPending}); err != nil || total != 1 {
		t.Fatalf("expected one pending request, got total=%d err=%v", total, err)
	}
}
