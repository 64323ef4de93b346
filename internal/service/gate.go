package service

import (
	"github.com/prompthub/prompt-hub-service/pkg/code"
	"github.com/prompthub/prompt-hub-service/pkg/util"
)

// Gate 变更闸口，校验管理口令
// 所有写操作都要先过闸，销毁性操作另需先落备份
type Gate struct {
	secret string
}

// NewGate 创建闸口
func NewGate(secret string) *Gate {
	return &Gate{secret: secret}
}

// Authorize 校验口令，比较使用常数时间算法
func (g *Gate) Authorize(secret string) error {
	if !util.SecretEqual(secret, g.secret) {
		return code.ErrorUnauthorized
	}
	return nil
}

// authorize 请求级鉴权入口
func (svc *Service) authorize(secret string) error {
	return svc.hub.Gate.Authorize(secret)
}
