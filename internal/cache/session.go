package cache

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/kitshop/internal/constants"
	"github.com/kitshop/internal/models"
)

const sessionTTL = 10 * time.Minute

// Session 购物者鉴权快照，角色与 token 版本以此为准
type Session struct {
	UserID       uint   `json:"user_id"`
	Role         string `json:"role"`
	Status       string `json:"status"`
	TokenVersion uint64 `json:"token_version"`
	CachedAt     int64  `json:"cached_at"`
}

// SessionOf 从用户构建快照
func SessionOf(user *models.User) *Session {
	if user == nil {
		return nil
	}
	return &Session{
		UserID:       user.ID,
		Role:         user.Role,
		Status:       user.Status,
		TokenVersion: user.TokenVersion,
		CachedAt:     time.Now().Unix(),
	}
}

// Active 账号是否可用
func (s *Session) Active() bool {
	return s != nil && strings.EqualFold(strings.TrimSpace(s.Status), constants.UserStatusActive)
}

func (s *Store) sessionKey(userID uint) string {
	return s.Key("session", strconv.FormatUint(uint64(userID), 10))
}

// LoadSession 读取快照
func (s *Store) LoadSession(ctx context.Context, userID uint) (*Session, bool, error) {
	if userID == 0 {
		return nil, false, nil
	}
	var session Session
	hit, err := s.getJSON(ctx, s.sessionKey(userID), &session)
	if err != nil || !hit {
		return nil, false, err
	}
	return &session, true, nil
}

// SaveSession 写入快照
func (s *Store) SaveSession(ctx context.Context, session *Session) error {
	if session == nil || session.UserID == 0 {
		return nil
	}
	return s.setJSON(ctx, s.sessionKey(session.UserID), session, sessionTTL)
}
