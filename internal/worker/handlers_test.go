package worker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/kitshop/internal/config"
	"github.com/kitshop/internal/constants"
	"github.com/kitshop/internal/models"
	"github.com/kitshop/internal/provider"
	"github.com/kitshop/internal/queue"
	"github.com/kitshop/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

type stubJobs struct {
	orderErr error
	kitErr   error
	orders   []uint
	requests []uint
}

func (s *stubJobs) SendOrderConfirmation(_ context.Context, orderID uint) error {
	s.orders = append(s.orders, orderID)
	return s.orderErr
}

func (s *stubJobs) SendKitRequestEmails(_ context.Context, requestID uint) error {
	s.requests = append(s.requests, requestID)
	return s.kitErr
}

func TestHandlersRejectBadPayloadWithoutRetry(t *testing.T) {
	jobs := &stubJobs{}
	h := NewHandlers(jobs)

	cases := []struct {
		name string
		run  func(context.Context, *asynq.Task) error
		task *asynq.Task
	}{
		{"order missing id", h.orderConfirmation, asynq.NewTask(queue.TaskOrderConfirmationEmail, []byte(`{"order_id":0}`))},
		{"order malformed", h.orderConfirmation, asynq.NewTask(queue.TaskOrderConfirmationEmail, []byte(`not-json`))},
		{"kit missing id", h.kitRequest, asynq.NewTask(queue.TaskKitRequestEmail, []byte(`{}`))},
		{"kit malformed", h.kitRequest, asynq.NewTask(queue.TaskKitRequestEmail, []byte(`[`))},
	}
	for _, tc := range cases {
		if err := tc.run(context.Background(), tc.task); !errors.Is(err, asynq.SkipRetry) {
			t.Fatalf("%s: want SkipRetry got %v", tc.name, err)
		}
	}
	if len(jobs.orders) != 0 || len(jobs.requests) != 0 {
		t.Fatalf("bad payloads must not reach the sender: %+v", jobs)
	}
}

func TestHandlersRetrySemantics(t *testing.T) {
	transient := errors.New("smtp timeout")
	cases := []struct {
		name      string
		err       error
		wantNil   bool
		wantSkip  bool
		wantRetry bool
	}{
		{name: "sent", err: nil, wantNil: true},
		{name: "missing record", err: service.ErrKitRequestNotFound, wantNil: true},
		{name: "email disabled", err: service.ErrEmailServiceDisabled, wantNil: true},
		{name: "recipient rejected", err: fmt.Errorf("%w: 550 user unknown", service.ErrEmailRecipientRejected), wantSkip: true},
		{name: "invalid email", err: service.ErrInvalidEmail, wantSkip: true},
		{name: "transient", err: transient, wantRetry: true},
	}
	for _, tc := range cases {
		jobs := &stubJobs{kitErr: tc.err}
		task, err := queue.NewKitRequestEmailTask(queue.KitRequestEmailPayload{RequestID: 7})
		if err != nil {
			t.Fatalf("build task failed: %v", err)
		}
		got := NewHandlers(jobs).kitRequest(context.Background(), task)
		switch {
		case tc.wantNil && got != nil:
			t.Fatalf("%s: want nil got %v", tc.name, got)
		case tc.wantSkip && !errors.Is(got, asynq.SkipRetry):
			t.Fatalf("%s: want SkipRetry got %v", tc.name, got)
		case tc.wantRetry && (got == nil || errors.Is(got, asynq.SkipRetry)):
			t.Fatalf("%s: want retryable error got %v", tc.name, got)
		}
		if len(jobs.requests) != 1 || jobs.requests[0] != 7 {
			t.Fatalf("%s: sender should receive request 7, got %v", tc.name, jobs.requests)
		}
	}

	// 订单任务的缺失记录判定使用订单错误
	jobs := &stubJobs{orderErr: service.ErrKitRequestNotFound}
	task, err := queue.NewOrderConfirmationEmailTask(queue.OrderConfirmationEmailPayload{OrderID: 3, UserID: 1})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := NewHandlers(jobs).orderConfirmation(context.Background(), task); err == nil {
		t.Fatalf("unrelated not-found error should be retried")
	}
}

func TestHandlersWithNotificationService(t *testing.T) {
	dsn := fmt.Sprintf("file:worker_handlers_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cfg := &config.Config{}
	cfg.UserJWT.SecretKey = "worker-test"
	container, err := provider.NewContainerWithDB(cfg, db)
	if err != nil {
		t.Fatalf("init container failed: %v", err)
	}
	h := NewHandlers(container.NotificationService)

	task, err := queue.NewOrderConfirmationEmailTask(queue.OrderConfirmationEmailPayload{OrderID: 999, UserID: 1})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := h.orderConfirmation(context.Background(), task); err != nil {
		t.Fatalf("missing order should be dropped, got %v", err)
	}

	req := models.KitRequest{KitName: "Kit Solar", Name: "Marta", Email: "marta@example.com", Status: constants.KitRequestStatusPending}
	if err := db.Create(&req).Error; err != nil {
		t.Fatalf("create kit request failed: %v", err)
	}
	task, err = queue.NewKitRequestEmailTask(queue.KitRequestEmailPayload{RequestID: req.ID})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := h.kitRequest(context.Background(), task); err != nil {
		t.Fatalf("disabled email should not fail the task, got %v", err)
	}
}

func TestNewServerRequiresEnabledQueue(t *testing.T) {
	if _, err := NewServer(&config.QueueConfig{Enabled: false}, NewHandlers(&stubJobs{})); !errors.Is(err, ErrQueueDisabled) {
		t.Fatalf("want ErrQueueDisabled got %v", err)
	}
	if _, err := NewServer(nil, NewHandlers(&stubJobs{})); !errors.Is(err, ErrQueueDisabled) {
		t.Fatalf("nil config want ErrQueueDisabled got %v", err)
	}
	if _, err := NewServer(&config.QueueConfig{Enabled: true}, nil); err == nil {
		t.Fatalf("expected error for nil handlers")
	}
}
