package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Bank     BankConfig
	History  HistoryConfig
}

type AppConfig struct {
	Name     string
	Port     string
	Timezone string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

// BankConfig feeds the VietQR payment image URL.
type BankConfig struct {
	ID          string
	AccountNo   string
	AccountName string
}

type HistoryConfig struct {
	Limit int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "chot-tien-ban-hang")
	viper.SetDefault("APP_PORT", "3000")
	viper.SetDefault("APP_TIMEZONE", "Asia/Ho_Chi_Minh")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "chottien")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Ho_Chi_Minh")
	viper.SetDefault("BANK_ID", "MB")
	viper.SetDefault("BANK_ACCOUNT_NO", "0982094668")
	viper.SetDefault("BANK_ACCOUNT_NAME", "NGUYEN DANG HIEU")
	viper.SetDefault("HISTORY_LIMIT", 50)

	return &Config{
		App: AppConfig{
			Name:     viper.GetString("APP_NAME"),
			Port:     viper.GetString("APP_PORT"),
			Timezone: viper.GetString("APP_TIMEZONE"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		Bank: BankConfig{
			ID:          viper.GetString("BANK_ID"),
			AccountNo:   viper.GetString("BANK_ACCOUNT_NO"),
			AccountName: viper.GetString("BANK_ACCOUNT_NAME"),
		},
		History: HistoryConfig{
			Limit: viper.GetInt("HISTORY_LIMIT"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
