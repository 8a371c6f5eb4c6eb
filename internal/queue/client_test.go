package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/kitshop/internal/config"
	"github.com/kitshop/internal/constants"
)

func TestDisabledClientRejectsEnqueue(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("expected disabled client")
	}
	err = client.EnqueueOrderConfirmationEmail(context.Background(), OrderConfirmationEmailPayload{OrderID: 1})
	if !errors.Is(err, ErrQueueDisabled) {
		t.Fatalf("expected ErrQueueDisabled, got %v", err)
	}
	err = client.EnqueueKitRequestEmail(context.Background(), KitRequestEmailPayload{RequestID: 1})
	if !errors.Is(err, ErrQueueDisabled) {
		t.Fatalf("expected ErrQueueDisabled for kit request, got %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close disabled client: %v", err)
	}
}

func TestNilClientIsDisabled(t *testing.T) {
	var client *Client
	if client.Enabled() {
		t.Fatalf("nil client should be disabled")
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close nil client: %v", err)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(&config.QueueConfig{})
	if opt.Addr != "127.0.0.1:6379" {
		t.Fatalf("unexpected addr: %s", opt.Addr)
	}
	if cfg.Concurrency != 10 {
		t.Fatalf("unexpected concurrency: %d", cfg.Concurrency)
	}
	if cfg.Queues[constants.QueueCritical] <= cfg.Queues[constants.QueueDefault] {
		t.Fatalf("expected critical queue to outweigh default, got %+v", cfg.Queues)
	}

	opt, cfg = BuildServerConfig(&config.QueueConfig{Host: " redis ", Port: 6380, DB: 2, Queues: map[string]int{"default": 1}})
	if opt.Addr != "redis:6380" || opt.DB != 2 {
		t.Fatalf("unexpected redis opt: %+v", opt)
	}
	if len(cfg.Queues) != 1 {
		t.Fatalf("expected configured queues to replace defaults, got %+v", cfg.Queues)
	}
}

func TestTaskRoutes(t *testing.T) {
	if got := routeFor(TaskOrderConfirmationEmail).queue; got != constants.QueueCritical {
		t.Fatalf("order confirmation should route to critical, got %s", got)
	}
	if got := routeFor(TaskKitRequestEmail).queue; got != constants.QueueDefault {
		t.Fatalf("kit request should route to default, got %s", got)
	}
	if got := routeFor("unknown:task").queue; got != constants.QueueDefault {
		t.Fatalf("unknown task should route to default, got %s", got)
	}
	client := &Client{maxRetry: 3}
	if got := len(client.optionsFor(TaskKitRequestEmail, nil)); got != 3 {
		t.Fatalf("expected queue, timeout and retry options, got %d", got)
	}
}

func TestTaskPayloadParsing(t *testing.T) {
	task, err := NewOrderConfirmationEmailTask(OrderConfirmationEmailPayload{OrderID: 7, UserID: 3})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if task.Type() != TaskOrderConfirmationEmail {
		t.Fatalf("unexpected task type: %s", task.Type())
	}
	payload, err := ParseOrderConfirmationEmailPayload(task.Payload())
	if err != nil || payload.OrderID != 7 || payload.UserID != 3 {
		t.Fatalf("unexpected payload: %+v err=%v", payload, err)
	}
	if _, err := ParseOrderConfirmationEmailPayload([]byte(`{"user_id":3}`)); err == nil {
		t.Fatalf("expected error for missing order_id")
	}

	kitTask, err := NewKitRequestEmailTask(KitRequestEmailPayload{RequestID: 11})
	if err != nil {
		t.Fatalf("new kit task failed: %v", err)
	}
	kitPayload, err := ParseKitRequestEmailPayload(kitTask.Payload())
	if err != nil || kitPayload.RequestID != 11 {
		t.Fatalf("unexpected kit payload: %+v err=%v", kitPayload, err)
	}
	if _, err := ParseKitRequestEmailPayload([]byte(`{}`)); err == nil {
		t.Fatalf("expected error for missing request_id")
	}
	if _, err := ParseKitRequestEmailPayload([]byte(`nope`)); err == nil {
		t.Fatalf("expected decode error")
	}
}
