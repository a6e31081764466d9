package config

import (
	"log/slog"
	"time"
)

// Config 汇总 trackerctl 的全部配置。
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Demo     bool           `mapstructure:"demo"`
	State    StateConfig    `mapstructure:"state"`
	Log      LogConfig      `mapstructure:"log"`
	Exporter ExporterConfig `mapstructure:"exporter"`
	Output   string         `mapstructure:"output"`
}

// APIConfig 定义管理 API 的连接参数。
type APIConfig struct {
	URL   string `mapstructure:"url"`
	Token string `mapstructure:"token"`
	// RateLimit 为每分钟请求数上限，0 表示不限制。
	RateLimit int `mapstructure:"rate_limit"`
}

// StateConfig 定义本地持久化状态（连接信息）的存放位置。
type StateConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig 定义日志配置。
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	AddSource  bool   `mapstructure:"add_source"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// ExporterConfig 定义 Prometheus 导出器配置。
type ExporterConfig struct {
	Addr      string        `mapstructure:"addr"`
	Schedule  string        `mapstructure:"schedule"`
	Namespace string        `mapstructure:"namespace"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

func (c LogConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
