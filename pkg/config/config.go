package config

import (
	"gopkg.in/ini.v1"
)

// Config holds solver-side settings shared by the CLI and the server.
type Config struct {
	Ambient float64 // °C default ambient soil temperature
	MaxTemp float64 // °C default conductor limit
	Damping float64 // fixed-point damping, 1 = undamped
	Quiet   bool
}

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Port            string
	WorkerCount     int
	WebhookURL      string
	DBPath          string
	EnableProfiling bool
	ProfilingPort   string
}

// DefaultConfig returns solver defaults matching a typical buried MV
// installation.
func DefaultConfig() *Config {
	return &Config{
		Ambient: 20,
		MaxTemp: 90,
		Damping: 1,
	}
}

// DefaultServerConfig returns server configuration with sensible defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:          "8080",
		WorkerCount:   5,
		DBPath:        "cabletherm.db",
		ProfilingPort: "6060",
	}
}

// Load reads an INI file and overlays it on the defaults. An empty path
// skips the file and returns the defaults.
func Load(path string) (*Config, *ServerConfig, error) {
	cfg := DefaultConfig()
	srv := DefaultServerConfig()
	if path == "" {
		return cfg, srv, nil
	}

	f, err := ini.Load(path)
	if err != nil {
		return nil, nil, err
	}

	solver := f.Section("solver")
	cfg.Ambient = solver.Key("ambient_c").MustFloat64(cfg.Ambient)
	cfg.MaxTemp = solver.Key("max_temp_c").MustFloat64(cfg.MaxTemp)
	cfg.Damping = solver.Key("damping").MustFloat64(cfg.Damping)
	cfg.Quiet = solver.Key("quiet").MustBool(cfg.Quiet)

	server := f.Section("server")
	srv.Port = server.Key("port").MustString(srv.Port)
	srv.WorkerCount = server.Key("workers").MustInt(srv.WorkerCount)
	srv.WebhookURL = server.Key("webhook_url").MustString(srv.WebhookURL)
	srv.DBPath = server.Key("db_path").MustString(srv.DBPath)
	srv.EnableProfiling = server.Key("profiling").MustBool(srv.EnableProfiling)
	srv.ProfilingPort = server.Key("profiling_port").MustString(srv.ProfilingPort)

	return cfg, srv, nil
}
