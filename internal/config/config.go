package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

// JWTConfig 签名密钥和令牌过期时间
// 注意：不要在业务代码里到处 viper.GetString("jwt.secret")，
// 统一从这个结构体注入，方便测试时替换
type JWTConfig struct {
	Secret        string `mapstructure:"secret"`
	ExpireMinutes int    `mapstructure:"expire_minutes"`
}

// AccessTokenTTL 访问令牌有效期
func (c JWTConfig) AccessTokenTTL() time.Duration {
	if c.ExpireMinutes <= 0 {
		return 30 * time.Minute // 兜底默认 30 分钟
	}
	return time.Duration(c.ExpireMinutes) * time.Minute
}

// LoadConfig 读取配置文件
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config") // 配置文件名 (不带扩展名)
	viper.SetConfigType("yaml")   // 文件类型
	viper.AddConfigPath(".")      // 查找路径：根目录

	// 这一步是为了支持环境变量覆盖 (例如在 Docker 中)
	// 比如设置环境变量 TODOPILOT_JWT_SECRET 可以覆盖 yaml 里的值
	viper.SetEnvPrefix("TODOPILOT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	return &cfg, nil
}
