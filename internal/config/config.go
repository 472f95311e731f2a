package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort    string `mapstructure:"SERVER_PORT"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	JWTSecret     string `mapstructure:"JWT_SECRET"`
	DeviceKey     string `mapstructure:"DEVICE_KEY"`
	DeviceKeyHash string `mapstructure:"DEVICE_KEY_HASH"`

	MotionSource  string `mapstructure:"MOTION_SOURCE"`
	SimIntervalMS int    `mapstructure:"SIM_INTERVAL_MS"`
	KafkaBrokers  string `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic    string `mapstructure:"KAFKA_TOPIC"`
	KafkaGroup    string `mapstructure:"KAFKA_GROUP"`

	FixTimeoutMS int  `mapstructure:"FIX_TIMEOUT_MS"`
	ClearOnStart bool `mapstructure:"CLEAR_ON_START"`
	StampAtEvent bool `mapstructure:"STAMP_AT_EVENT"`
}

func Load() Config {
	viper.AutomaticEnv()
	viper.SetDefault("SERVER_PORT", ":8080")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("JWT_SECRET", "dev-secret-change-me")
	viper.SetDefault("DEVICE_KEY", "dev-device-key")
	viper.SetDefault("MOTION_SOURCE", "push")
	viper.SetDefault("SIM_INTERVAL_MS", 100)
	viper.SetDefault("KAFKA_TOPIC", "shaketrack.motion")
	viper.SetDefault("KAFKA_GROUP", "shaketrack")
	viper.SetDefault("FIX_TIMEOUT_MS", 5000)
	viper.SetDefault("CLEAR_ON_START", false)
	viper.SetDefault("STAMP_AT_EVENT", false)

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}

func (c Config) FixTimeout() time.Duration {
	return time.Duration(c.FixTimeoutMS) * time.Millisecond
}

func (c Config) SimInterval() time.Duration {
	return time.Duration(c.SimIntervalMS) * time.Millisecond
}

func (c Config) KafkaBrokerList() []string {
	if c.KafkaBrokers == "" {
		return nil
	}
	return strings.Split(c.KafkaBrokers, ",")
}
