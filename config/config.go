package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`
	Redis struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	RabbitMQ struct {
		URL      string `mapstructure:"url"`
		Exchange string `mapstructure:"exchange"`
		// Number of concurrent workers per subscribed queue.
		ConsumerWorkers int `mapstructure:"consumer_workers"`
	} `mapstructure:"rabbitmq"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	JWT struct {
		SecretKey       string        `mapstructure:"secret_key"`
		AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl"`
		RefreshTokenTTL time.Duration `mapstructure:"refresh_token_ttl"`
	} `mapstructure:"jwt"`
	WebSocket struct {
		// How long a session may stay silent before it is reaped.
		HeartbeatTimeout time.Duration `mapstructure:"heartbeat_timeout"`
		// Size of the per-session outbound buffer. A session whose buffer
		// stays full gets dropped rather than blocking delivery to others.
		SendBufferSize int `mapstructure:"send_buffer_size"`
	} `mapstructure:"websocket"`
}

var AppConfig Config

func LoadConfig(path string) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yml")

	viper.SetDefault("rabbitmq.exchange", "recruit.events")
	viper.SetDefault("rabbitmq.consumer_workers", 3)
	viper.SetDefault("jwt.access_token_ttl", 15*time.Minute)
	viper.SetDefault("jwt.refresh_token_ttl", 7*24*time.Hour)
	viper.SetDefault("websocket.heartbeat_timeout", 60*time.Second)
	viper.SetDefault("websocket.send_buffer_size", 16)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file, %s", err)
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
}
