// Package service 业务逻辑层，负责实体一致性与版本账本维护
package service

import (
	"context"
	"sync"

	"github.com/prompthub/prompt-hub-service/global"
	"github.com/prompthub/prompt-hub-service/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Hub 进程级共享的服务资源
// mu 串行化全部变更操作，读操作不加锁，
// 依赖存储层的集合级原子保存保证读取方看到一致状态
type Hub struct {
	Store     domain.Store
	Gate      *Gate
	BackupDir string

	mu sync.Mutex
	sf singleflight.Group
}

// NewHub 创建服务资源容器
func NewHub(store domain.Store, gate *Gate, backupDir string) *Hub {
	return &Hub{
		Store:     store,
		Gate:      gate,
		BackupDir: backupDir,
	}
}

// Service 单次请求的服务实例
type Service struct {
	ctx context.Context
	hub *Hub
}

// New 创建请求级服务实例
func New(ctx context.Context, hub *Hub) *Service {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Service{ctx: ctx, hub: hub}
}

func (svc *Service) store() domain.Store {
	return svc.hub.Store
}

func (svc *Service) log() *zap.Logger {
	return global.Log()
}

// lock 获取全局变更锁
func (svc *Service) lock() func() {
	svc.hub.mu.Lock()
	return svc.hub.mu.Unlock
}
