package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kitshop/internal/constants"
	"github.com/kitshop/internal/i18n"
	"github.com/kitshop/internal/logger"
	"github.com/kitshop/internal/metrics"
	"github.com/kitshop/internal/models"
	"github.com/kitshop/internal/repository"
)

const (
	kitRequestNameMaxLength    = 100
	kitRequestKitNameMaxLength = 200
	kitRequestMessageMaxLength = 5000
)

// KitRequestNotifier 新咨询通知
type KitRequestNotifier interface {
	KitRequestReceived(ctx context.Context, req *models.KitRequest)
}

// KitRequestInput 访客提交的咨询
type KitRequestInput struct {
	KitID   uint
	KitName string
	Name    string
	Email   string
	Message string
	Locale  string
}

// KitRequestService 套件咨询线索服务
type KitRequestService struct {
	repo     repository.KitRequestRepository
	catalog  CatalogResolver
	notifier KitRequestNotifier
}

// NewKitRequestService 创建套件咨询服务
func NewKitRequestService(repo repository.KitRequestRepository, catalog CatalogResolver, notifier KitRequestNotifier) *KitRequestService {
	return &KitRequestService{
		repo:     repo,
		catalog:  catalog,
		notifier: notifier,
	}
}

// Create 保存咨询并通知管理员与访客，通知失败不影响提交结果
func (s *KitRequestService) Create(ctx context.Context, input KitRequestInput) (*models.KitRequest, error) {
	req, err := s.normalize(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("save kit request: %w", err)
	}
	metrics.RecordKitRequest()
	logger.Infow("kit_request_received",
		"request_id", req.ID,
		"kit_name", req.KitName,
	)
	if s.notifier != nil {
		s.notifier.KitRequestReceived(ctx, req)
	}
	return req, nil
}

func (s *KitRequestService) normalize(ctx context.Context, input KitRequestInput) (*models.KitRequest, error) {
	name := strings.TrimSpace(input.Name)
	rawEmail := strings.TrimSpace(input.Email)
	if name == "" || rawEmail == "" {
		return nil, ErrKitRequestNameRequired
	}
	email, err := NormalizeEmail(rawEmail)
	if err != nil {
		return nil, err
	}

	kitName := strings.TrimSpace(input.KitName)
	var kitID *uint
	if input.KitID != 0 {
		if s.catalog == nil {
			return nil, ErrCatalogItemNotFound
		}
		kit, err := s.catalog.Resolve(ctx, ItemRef{ID: input.KitID, Kind: constants.ItemKindKit})
		if err != nil {
			return nil, err
		}
		id := kit.Ref.ID
		kitID = &id
		if kitName == "" {
			kitName = kit.Name
		}
	}
	if kitName == "" {
		return nil, ErrKitRequestKitRequired
	}

	message := strings.TrimSpace(input.Message)
	if utf8.RuneCountInString(name) > kitRequestNameMaxLength ||
		utf8.RuneCountInString(kitName) > kitRequestKitNameMaxLength ||
		utf8.RuneCountInString(message) > kitRequestMessageMaxLength {
		return nil, ErrKitRequestFieldTooLong
	}

	now := time.Now()
	return &models.KitRequest{
		KitName:   kitName,
		KitID:     kitID,
		Name:      name,
		Email:     email,
		Message:   message,
		Locale:    i18n.NormalizeLocale(input.Locale),
		Status:    constants.KitRequestStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// List 管理端咨询列表，没有任何记录时返回 ErrKitRequestNotFound
func (s *KitRequestService) List(ctx context.Context, filter repository.KitRequestListFilter) ([]models.KitRequest, int64, error) {
	if filter.Status != "" && !IsKitRequestStatus(filter.Status) {
		return nil, 0, ErrKitRequestStatusInvalid
	}
	requests, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list kit requests: %w", err)
	}
	if total == 0 {
		return nil, 0, ErrKitRequestNotFound
	}
	return requests, total, nil
}

// Get 获取单条咨询
func (s *KitRequestService) Get(ctx context.Context, id uint) (*models.KitRequest, error) {
	if id == 0 {
		return nil, ErrKitRequestNotFound
	}
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load kit request %d: %w", id, err)
	}
	if req == nil {
		return nil, ErrKitRequestNotFound
	}
	return req, nil
}

// UpdateStatus 更新跟进状态
func (s *KitRequestService) UpdateStatus(ctx context.Context, id uint, status string) (*models.KitRequest, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !IsKitRequestStatus(status) {
		return nil, ErrKitRequestStatusInvalid
	}
	ok, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("update kit request %d: %w", id, err)
	}
	if !ok {
		return nil, ErrKitRequestNotFound
	}
	logger.Infow("kit_request_status_updated", "request_id", id, "status", status)
	return s.Get(ctx, id)
}

// IsKitRequestStatus 判断是否为合法跟进状态
func IsKitRequestStatus(status string) bool {
	switch status {
	case constants.KitRequestStatusPending, constants.KitRequestStatusContacted, constants.KitRequestStatusClosed:
		return true
	}
	return false
}
