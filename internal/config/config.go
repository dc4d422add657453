package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Task     TaskConfig     `mapstructure:"task"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

type AppConfig struct {
	Env           string `mapstructure:"env"`
	Listen        string `mapstructure:"listen"`
	EnableSwagger bool   `mapstructure:"enable_swagger"`
	EnableMetrics bool   `mapstructure:"enable_metrics"`
	OpsToken      string `mapstructure:"ops_token"`
}

// IsProduction 是否生产环境
func (c AppConfig) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // postgres | sqlite
	DSN    string `mapstructure:"dsn"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Issuer     string        `mapstructure:"issuer"`
	AccessTTL  time.Duration `mapstructure:"access_ttl"`
	RefreshTTL time.Duration `mapstructure:"refresh_ttl"`
}

type AuthConfig struct {
	SignInInterval time.Duration `mapstructure:"sign_in_interval"`
	SignUpInterval time.Duration `mapstructure:"sign_up_interval"`
}

type TaskConfig struct {
	MembershipRepairSpec      string `mapstructure:"membership_repair_spec"`
	NotificationCleanupSpec   string `mapstructure:"notification_cleanup_spec"`
	NotificationRetentionDays int    `mapstructure:"notification_retention_days"`
}

// NotificationRetention 通知保留时长
func (c TaskConfig) NotificationRetention() time.Duration {
	return time.Duration(c.NotificationRetentionDays) * 24 * time.Hour
}

type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

var (
	loadOnce     sync.Once
	GlobalConfig *Config
	loadErr      error
)

// setDefaults 全部配置项的默认值
func setDefaults(v *viper.Viper, env string) {
	v.SetDefault("app.env", env)
	v.SetDefault("app.listen", ":8080")
	v.SetDefault("app.enable_swagger", true)
	v.SetDefault("app.enable_metrics", true)
	v.SetDefault("app.ops_token", "")

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.dsn", "host=localhost user=postgres password=postgres dbname=law_office port=5432 sslmode=disable TimeZone=Asia/Seoul")

	v.SetDefault("jwt.secret", "law-office-dev-secret")
	v.SetDefault("jwt.issuer", "law-office")
	v.SetDefault("jwt.access_ttl", "2h")
	v.SetDefault("jwt.refresh_ttl", "336h")

	v.SetDefault("auth.sign_in_interval", "1s")
	v.SetDefault("auth.sign_up_interval", "0s")

	v.SetDefault("task.membership_repair_spec", "0 0 * * * *")
	v.SetDefault("task.notification_cleanup_spec", "0 30 3 * * *")
	v.SetDefault("task.notification_retention_days", 90)

	v.SetDefault("cors.allow_origins", []string{})
}

// Load 加载配置：.env -> config/app.yaml -> config/app.<env>.yaml -> APP_ 环境变量
func Load(env string) (*Config, error) {
	loadOnce.Do(func() {
		GlobalConfig, loadErr = load(env, "./config")
	})
	return GlobalConfig, loadErr
}

func load(env, dir string) (*Config, error) {
	// .env 不存在时忽略
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v, env)

	// 1. 设置文件目录与类型
	v.AddConfigPath(dir)
	v.SetConfigType("yaml")

	// 2. 公共配置
	v.SetConfigName("app")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	// 3. 环境配置覆盖
	if env != "" {
		v.SetConfigName("app." + env)
		if err := v.MergeInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("合并 %s 配置失败: %w", env, err)
			}
		}
	}

	// 4. 环境变量覆盖 (例如 APP_DATABASE_DSN)
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	return &cfg, nil
}
