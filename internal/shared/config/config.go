package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultTokenExpiry 默认令牌有效期（7天）
const DefaultTokenExpiry = 7 * 24 * time.Hour

// DefaultRetentionDays 不活跃用户默认保留天数
const DefaultRetentionDays = 30

// Duration 支持"168h"这类字符串写法的时长配置
type Duration time.Duration

// UnmarshalYAML 实现yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("无效的时长配置 %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// ServerConfig 服务器配置
type ServerConfig struct {
	App struct {
		Name           string `yaml:"name"`
		Listen         string `yaml:"listen"`
		Mode           string `yaml:"mode"`
		ReadTimeout    int    `yaml:"read_timeout"`
		WriteTimeout   int    `yaml:"write_timeout"`
		IdleTimeout    int    `yaml:"idle_timeout"`
		MaxHeaderBytes int    `yaml:"max_header_bytes"`
	} `yaml:"app"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Auth struct {
		JWTSecret   string        `yaml:"jwt_secret"`
		TokenExpiry Duration      `yaml:"token_expiry"`
	} `yaml:"auth"`

	Data struct {
		TrackerFile  string `yaml:"tracker_file"`
		CalendarFile string `yaml:"calendar_file"`
	} `yaml:"data"`

	Web struct {
		DistPath string `yaml:"dist_path"`
	} `yaml:"web"`

	Cleanup struct {
		Enabled       bool   `yaml:"enabled"`
		Schedule      string `yaml:"schedule"`
		RetentionDays int    `yaml:"retention_days"`
	} `yaml:"cleanup"`
}

// LoadServerConfig 加载服务器配置文件
func LoadServerConfig(path string) (*ServerConfig, error) {
	cfg := defaultServerConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	applyEnvOverrides(cfg)

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("缺少JWT密钥配置 (auth.jwt_secret 或环境变量 JWT_SECRET)")
	}

	return cfg, nil
}

// defaultServerConfig 默认配置
func defaultServerConfig() *ServerConfig {
	cfg := &ServerConfig{}
	cfg.App.Name = "PZ Loot Tracker"
	cfg.App.Listen = ":3000"
	cfg.App.Mode = "release"
	cfg.App.ReadTimeout = 15
	cfg.App.WriteTimeout = 15
	cfg.App.IdleTimeout = 60
	cfg.App.MaxHeaderBytes = 1
	cfg.Database.Path = "data/tracker.db"
	cfg.Auth.TokenExpiry = Duration(DefaultTokenExpiry)
	cfg.Data.TrackerFile = "data/tracker-data.json"
	cfg.Data.CalendarFile = "data/calendar-data.json"
	cfg.Web.DistPath = "web/dist"
	cfg.Cleanup.Enabled = false
	cfg.Cleanup.Schedule = "0 0 3 * * *"
	cfg.Cleanup.RetentionDays = DefaultRetentionDays
	return cfg
}

// applyEnvOverrides 环境变量覆盖敏感配置
func applyEnvOverrides(cfg *ServerConfig) {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}
	if listen := os.Getenv("LISTEN_ADDR"); listen != "" {
		cfg.App.Listen = listen
	}
	if dbPath := os.Getenv("DATABASE_PATH"); dbPath != "" {
		cfg.Database.Path = dbPath
	}
}
