// Package config provides configuration management for Montessa
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"
)

// SystemConfig represents a configuration entry stored in the database
type SystemConfig struct {
	ID          uint   `gorm:"primaryKey"`
	Key         string `gorm:"uniqueIndex;size:100;not null"`
	Value       string `gorm:"type:text"`
	Description string `gorm:"type:text"`
	UpdatedAt   time.Time
}

// TableName specifies the table name
func (SystemConfig) TableName() string {
	return "system_configs"
}

// ConfigService manages application configuration with database storage and env overrides
type ConfigService struct {
	db    *gorm.DB
	cache map[string]string
	mu    sync.RWMutex
}

// NewConfigService creates a new configuration service
func NewConfigService(db *gorm.DB) *ConfigService {
	svc := &ConfigService{
		db:    db,
		cache: make(map[string]string),
	}
	svc.loadCache()
	return svc
}

func (s *ConfigService) loadCache() {
	var configs []SystemConfig
	if err := s.db.Find(&configs).Error; err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range configs {
		s.cache[c.Key] = c.Value
	}
}

// Get returns a configuration value. Environment variables prefixed with
// MONTESSA_ take precedence over database values.
func (s *ConfigService) Get(key string) string {
	envKey := "MONTESSA_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	if v := os.Getenv(envKey); v != "" {
		return v
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache[key]
}

// GetWithDefault returns a configuration value or a default
func (s *ConfigService) GetWithDefault(key, def string) string {
	if v := s.Get(key); v != "" {
		return v
	}
	return def
}

// GetInt returns a configuration value as int
func (s *ConfigService) GetInt(key string, def int) int {
	v := s.Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// GetBool returns a configuration value as bool
func (s *ConfigService) GetBool(key string, def bool) bool {
	v := s.Get(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// Set stores a configuration value and refreshes the cache
func (s *ConfigService) Set(key, value, description string) error {
	config := SystemConfig{Key: key, Value: value, Description: description}
	err := s.db.Where("key = ?", key).
		Assign(SystemConfig{Value: value, Description: description}).
		FirstOrCreate(&config).Error
	if err != nil {
		return fmt.Errorf("failed to save config %s: %w", key, err)
	}

	s.mu.Lock()
	s.cache[key] = value
	s.mu.Unlock()
	return nil
}

// SetupDefaults seeds default configuration entries when missing
func (s *ConfigService) SetupDefaults() error {
	defaults := []SystemConfig{
		{Key: "server.port", Value: "8080", Description: "HTTP server port"},
		{Key: "server.host", Value: "0.0.0.0", Description: "HTTP server bind address"},
		{Key: "builder.autosave_idle_seconds", Value: "4", Description: "Idle time before builder autosave fires"},
		{Key: "builder.session_ttl_minutes", Value: "60", Description: "Idle time before a builder session is evicted"},
		{Key: "cors.allowed_origins", Value: "*", Description: "Comma separated list of allowed CORS origins"},
	}
	for _, d := range defaults {
		var existing SystemConfig
		if err := s.db.Where("key = ?", d.Key).First(&existing).Error; err == gorm.ErrRecordNotFound {
			if err := s.db.Create(&d).Error; err != nil {
				return fmt.Errorf("failed to seed config %s: %w", d.Key, err)
			}
			s.mu.Lock()
			s.cache[d.Key] = d.Value
			s.mu.Unlock()
		}
	}
	return nil
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host string
	Port int
}

// BuilderConfig holds site builder settings
type BuilderConfig struct {
	AutosaveIdle time.Duration
	SessionTTL   time.Duration
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// Config aggregates all runtime configuration
type Config struct {
	Server  ServerConfig
	Builder BuilderConfig
	CORS    CORSConfig
}

// Load builds the aggregate runtime configuration
func (s *ConfigService) Load() *Config {
	origins := strings.Split(s.GetWithDefault("cors.allowed_origins", "*"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return &Config{
		Server: ServerConfig{
			Host: s.GetWithDefault("server.host", "0.0.0.0"),
			Port: s.GetInt("server.port", 8080),
		},
		Builder: BuilderConfig{
			AutosaveIdle: time.Duration(s.GetInt("builder.autosave_idle_seconds", 4)) * time.Second,
			SessionTTL:   time.Duration(s.GetInt("builder.session_ttl_minutes", 60)) * time.Minute,
		},
		CORS: CORSConfig{
			AllowedOrigins: origins,
		},
	}
}
