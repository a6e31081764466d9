package repository

import "context"

// Store 暴露本地持久化仓储。
type Store interface {
	Settings() SettingRepository
}

// SettingRepository 处理本地配置键值的存取。
type SettingRepository interface {
	Get(ctx context.Context, key string) (*Setting, error)
	Upsert(ctx context.Context, setting *Setting) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]Setting, error)
}
