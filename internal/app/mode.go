package app

import (
	"fmt"
	"strings"
)

// Mode 进程运行模式
type Mode string

const (
	ModeAll    Mode = "all"
	ModeAPI    Mode = "api"
	ModeWorker Mode = "worker"
)

// ParseMode 解析 -mode 参数，空值视为 all
func ParseMode(raw string) (Mode, error) {
	switch mode := Mode(strings.ToLower(strings.TrimSpace(raw))); mode {
	case "":
		return ModeAll, nil
	case ModeAll, ModeAPI, ModeWorker:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown run mode %q (want all, api or worker)", raw)
	}
}

func (m Mode) servesHTTP() bool {
	return m == ModeAll || m == ModeAPI
}

// consumesQueue all 模式仅在队列启用时同时消费；未启用时由 API 进程直接发送通知
func (m Mode) consumesQueue(queueEnabled bool) bool {
	return m == ModeWorker || (m == ModeAll && queueEnabled)
}
