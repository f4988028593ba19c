package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "EATNOW"

type AppConfig struct {
	v *viper.Viper
}

func NewAppConfig() *AppConfig {
	c := &AppConfig{v: viper.New()}

	setDefaults(c.v)

	return c
}

// Load merges every readable file in order; it reports whether any was loaded.
func (c *AppConfig) Load(filename ...string) bool {
	loaded := false

	for _, name := range filename {
		if name == "" {
			continue
		}

		c.v.SetConfigFile(name)

		if err := c.v.MergeInConfig(); err != nil {
			slog.Info(fmt.Sprintf("error loading config: %s", err.Error()))
		} else {
			loaded = true
		}
	}

	return loaded
}

// LoadEnv maps EATNOW_STORAGE_TYPE to storage.type and so on.
func (c *AppConfig) LoadEnv(prefix string) {
	c.v.SetEnvPrefix(prefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	c.v.AutomaticEnv()
}

func (c *AppConfig) Bool(key string) bool {
	return c.v.GetBool(key)
}

func (c *AppConfig) String(key string) string {
	return c.v.GetString(key)
}

func (c *AppConfig) Float64(key string) float64 {
	return c.v.GetFloat64(key)
}

func (c *AppConfig) Int(key string) int {
	return c.v.GetInt(key)
}

func (c *AppConfig) Duration(key string) time.Duration {
	return c.v.GetDuration(key)
}

func (c *AppConfig) Set(key string, v any) {
	c.v.Set(key, v)
}

func (c *AppConfig) APIURL() string {
	return strings.TrimRight(c.v.GetString("api_url"), "/")
}

func (c *AppConfig) DataDir() string {
	return c.v.GetString("data_dir")
}

func (c *AppConfig) StorageType() string {
	return strings.ToLower(c.v.GetString("storage.type"))
}

// StoragePath is the sqlite db or yaml file, relative to data_dir unless absolute.
func (c *AppConfig) StoragePath() string {
	name := c.v.GetString("storage.db")
	if c.StorageType() == "file" {
		name = c.v.GetString("storage.file")
	}

	if name == ":memory:" || filepath.IsAbs(name) || c.DataDir() == "" {
		return name
	}

	return filepath.Join(c.DataDir(), name)
}

func (c *AppConfig) LocationSource() string {
	return strings.ToLower(c.v.GetString("location.source"))
}

func (c *AppConfig) GpsdAddr() string {
	return c.v.GetString("location.gpsd")
}

func (c *AppConfig) StaticPosition() (float64, float64) {
	return c.v.GetFloat64("me.lat"), c.v.GetFloat64("me.lon")
}

func (c *AppConfig) ShellAddr() string {
	return c.v.GetString("shell.addr")
}

func (c *AppConfig) LogLevel() string {
	return c.v.GetString("log.level")
}

func (c *AppConfig) LogFormat() string {
	return c.v.GetString("log.format")
}

func (c *AppConfig) HTTPTimeout() time.Duration {
	return c.v.GetDuration("http.timeout")
}

func (c *AppConfig) AvatarTTL() time.Duration {
	return c.v.GetDuration("avatar.ttl")
}

func (c *AppConfig) P12File() string {
	return c.v.GetString("ssl.p12")
}

func (c *AppConfig) P12Password() string {
	return c.v.GetString("ssl.password")
}

func (c *AppConfig) Insecure() bool {
	return c.v.GetBool("ssl.insecure")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api_url", "http://127.0.0.1:5000")
	v.SetDefault("data_dir", "data")

	v.SetDefault("storage.type", "sqlite")
	v.SetDefault("storage.db", "eatnow.sqlite")
	v.SetDefault("storage.file", "storage.yml")

	v.SetDefault("location.source", "static")
	v.SetDefault("location.gpsd", "")
	v.SetDefault("me.lat", 53.3438)
	v.SetDefault("me.lon", -6.2546)

	v.SetDefault("shell.addr", "localhost:8088")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("http.timeout", "30s")
	v.SetDefault("avatar.ttl", "10m")

	v.SetDefault("ssl.password", "")
	v.SetDefault("ssl.insecure", false)
}
