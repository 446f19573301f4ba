package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/diillson/restaurante-api/pkg/config"
	"gopkg.in/yaml.v3"
)

func main() {
	var (
		outputPath string
		force      bool
	)

	flag.StringVar(&outputPath, "output", "config.yaml", "Caminho para o arquivo de configuração de saída")
	flag.BoolVar(&force, "force", false, "Sobrescrever arquivo se existir")
	flag.Parse()

	if _, err := os.Stat(outputPath); err == nil && !force {
		fmt.Printf("Erro: arquivo %s já existe. Use --force para sobrescrever.\n", outputPath)
		os.Exit(1)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           8080,
			Host:           "0.0.0.0",
			ReadTimeout:    5 * time.Second,
			WriteTimeout:   10 * time.Second,
			IdleTimeout:    30 * time.Second,
			MaxHeaderBytes: 1 << 20, // 1 MB
			TLS:            false,
			Domains:        []string{"api.example.com"},
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Database: config.DatabaseConfig{
			Driver:          "sqlite",
			DSN:             "restaurante.db?_pragma=foreign_keys(1)",
			MaxIdleConns:    10,
			MaxOpenConns:    50,
			ConnMaxLifetime: time.Hour,
			LogLevel:        "warn",
			SlowThreshold:   200 * time.Millisecond,
			MigrationDir:    "./migrations",
		},
		Cache: config.CacheConfig{
			Enabled: true,
			Type:    "memory",
			TTL:     5 * time.Minute,
			Redis: config.RedisOptions{
				Address:      "localhost:6379",
				PoolSize:     10,
				MinIdleConns: 2,
				DialTimeout:  5 * time.Second,
				ReadTimeout:  3 * time.Second,
				WriteTimeout: 3 * time.Second,
			},
		},
		Auth: config.AuthConfig{
			TokenExpiration:    30 * time.Minute,
			PasswordMinLen:     6,
			LoginRateLimit:     10,
			LoginRateLimitTime: time.Minute,
		},
		Metrics: config.MetricsConfig{
			Enabled:        true,
			PrometheusPath: "/metrics",
		},
		Logging: config.LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "stdout",
			ErrorPath:  "stderr",
			Production: true,
		},
		Tracing: config.TracingConfig{
			Enabled:       false,
			Endpoint:      "localhost:4317",
			ServiceName:   "restaurante-api",
			SamplingRatio: 0.1,
		},
		Events: config.EventsConfig{
			Enabled:      false,
			Brokers:      []string{"localhost:9092"},
			Topic:        "restaurante.pedidos",
			WriteTimeout: 5 * time.Second,
		},
		Features: config.FeaturesConfig{
			RateLimiter:     true,
			SecurityHeaders: true,
			Reports:         true,
		},
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Printf("Erro ao serializar configuração: %v\n", err)
		os.Exit(1)
	}

	yamlStr := string(data)

	// Documentar opções que costumam ser alteradas por ambiente
	yamlStr = regexp.MustCompile(`(\s+skipmigrations:\s+false)`).
		ReplaceAllString(yamlStr, `$1  # true pula AutoMigrate e os arquivos SQL`)
	yamlStr = regexp.MustCompile(`(\s+jwtsecret:\s+"")`).
		ReplaceAllString(yamlStr, `$1  # mínimo de 32 caracteres; JWT_SECRET_KEY tem precedência`)

	if err := os.WriteFile(outputPath, []byte(yamlStr), 0o644); err != nil {
		fmt.Printf("Erro ao escrever arquivo: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Arquivo de configuração gerado em: %s\n", outputPath)
}
