package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultConfigName = "config"
)

type Config struct {
	// Remote engine endpoints. Both channels usually point at the same host.
	EngineHost string
	TCPPort    int
	UDPPort    int

	SimID   uint32
	SimName string

	ConnectTimeout time.Duration
	SendBurst      int
	PollInterval   time.Duration
	OwnThreads     bool

	DispatchBurst int

	StatusPort int

	// WireLogPath enables NDJSON telemetry when set. Leave empty to disable
	// file logging.
	WireLogPath string
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName(defaultConfigName)
	v.SetConfigType("yaml")

	// Config lives under repo-root config/; also support running from other
	// CWDs.
	v.AddConfigPath(".")
	v.AddConfigPath("config")

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("engine.host", "127.0.0.1")
	v.SetDefault("engine.tcp_port", 17000)
	v.SetDefault("engine.udp_port", 17001)

	v.SetDefault("sim.id", 1)
	v.SetDefault("sim.name", "appsim")

	v.SetDefault("transport.connect_timeout", "30s")
	v.SetDefault("transport.send_burst", 50)
	v.SetDefault("transport.poll_interval", "10ms")
	v.SetDefault("transport.own_threads", true)

	v.SetDefault("messenger.dispatch_burst", 5000)

	v.SetDefault("status.port", 17080)

	v.SetDefault("telemetry.wire_ndjson_path", "")

	// Config file is optional; env-only is fine.
	_ = v.ReadInConfig()

	cfg := Config{
		EngineHost:     strings.TrimSpace(v.GetString("engine.host")),
		TCPPort:        v.GetInt("engine.tcp_port"),
		UDPPort:        v.GetInt("engine.udp_port"),
		SimID:          v.GetUint32("sim.id"),
		SimName:        strings.TrimSpace(v.GetString("sim.name")),
		ConnectTimeout: v.GetDuration("transport.connect_timeout"),
		SendBurst:      v.GetInt("transport.send_burst"),
		PollInterval:   v.GetDuration("transport.poll_interval"),
		OwnThreads:     v.GetBool("transport.own_threads"),
		DispatchBurst:  v.GetInt("messenger.dispatch_burst"),
		StatusPort:     v.GetInt("status.port"),
		WireLogPath:    v.GetString("telemetry.wire_ndjson_path"),
	}

	if cfg.EngineHost == "" {
		return Config{}, fmt.Errorf("engine.host must not be empty")
	}
	if cfg.TCPPort <= 0 || cfg.TCPPort > 65535 {
		return Config{}, fmt.Errorf("invalid engine.tcp_port %d", cfg.TCPPort)
	}
	if cfg.UDPPort <= 0 || cfg.UDPPort > 65535 {
		return Config{}, fmt.Errorf("invalid engine.udp_port %d", cfg.UDPPort)
	}
	if cfg.SimID == 0 {
		return Config{}, fmt.Errorf("sim.id must be non-zero")
	}
	if cfg.SimName == "" {
		return Config{}, fmt.Errorf("sim.name must not be empty")
	}
	if cfg.ConnectTimeout <= 0 {
		return Config{}, fmt.Errorf("invalid transport.connect_timeout %s", cfg.ConnectTimeout)
	}
	if cfg.SendBurst <= 0 {
		return Config{}, fmt.Errorf("invalid transport.send_burst %d", cfg.SendBurst)
	}
	if cfg.DispatchBurst <= 0 {
		return Config{}, fmt.Errorf("invalid messenger.dispatch_burst %d", cfg.DispatchBurst)
	}
	if cfg.StatusPort < 0 || cfg.StatusPort > 65535 {
		return Config{}, fmt.Errorf("invalid status.port %d", cfg.StatusPort)
	}

	if strings.TrimSpace(cfg.WireLogPath) != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.WireLogPath), 0o755); err != nil {
			return Config{}, fmt.Errorf("create telemetry dir: %w", err)
		}
	}
	return cfg, nil
}
