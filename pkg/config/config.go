package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config 全局配置
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Mysql  MysqlConfig  `mapstructure:"mysql"`
	JWT    JWTConfig    `mapstructure:"jwt"`
	Shop   ShopConfig   `mapstructure:"shop"`
	Wechat WechatConfig `mapstructure:"wechat"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	// 对外基础地址，用于拼接桌位二维码的扫码链接
	BaseURL string `mapstructure:"base_url"`
}

type MysqlConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DbName   string `mapstructure:"dbname"`
}

type JWTConfig struct {
	SecretKey string        `mapstructure:"secret_key"`
	ExpiresIn time.Duration `mapstructure:"expires_in"`
	Issuer    string        `mapstructure:"issuer"`
}

type ShopConfig struct {
	// 默认店铺 ID（单店部署）
	ID int64 `mapstructure:"id"`
	// 店铺拥有者（商家）用户 ID，订单通知的接收方
	MerchantUserID int64 `mapstructure:"merchant_user_id"`
}

// WechatConfig 微信支付参数（v2 签名口径）
type WechatConfig struct {
	AppID  string `mapstructure:"app_id"`
	MchID  string `mapstructure:"mch_id"`
	APIKey string `mapstructure:"api_key"`
}

// DSN 拼接 MySQL 连接串
func (m MysqlConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		m.User, m.Password, m.Host, m.Port, m.DbName)
}

// LoadConfig 读取配置文件，环境变量可覆盖（CANYIN_MYSQL_PASSWORD 等）
func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("CANYIN")
	viper.AutomaticEnv()

	// 默认值
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 5000)
	viper.SetDefault("server.base_url", "http://localhost:5000")
	viper.SetDefault("mysql.host", "127.0.0.1")
	viper.SetDefault("mysql.port", 3306)
	viper.SetDefault("mysql.user", "root")
	viper.SetDefault("mysql.dbname", "canyin_app")
	viper.SetDefault("jwt.secret_key", "dev-secret-key")
	viper.SetDefault("jwt.expires_in", time.Hour)
	viper.SetDefault("jwt.issuer", "canyin-app")
	viper.SetDefault("shop.id", 1)
	viper.SetDefault("shop.merchant_user_id", 1)
	viper.SetDefault("wechat.app_id", "wxappid_dev")
	viper.SetDefault("wechat.mch_id", "1900000000")
	viper.SetDefault("wechat.api_key", "dev-wechat-api-key")

	if err := viper.ReadInConfig(); err != nil {
		// 配置文件缺失时允许走默认值 + 环境变量
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
