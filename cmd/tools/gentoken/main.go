package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/diillson/restaurante-api/internal/adapter/database"
	"github.com/diillson/restaurante-api/pkg/config"
	"github.com/diillson/restaurante-api/pkg/logging"
	"github.com/diillson/restaurante-api/pkg/security"
)

func main() {
	var (
		username   string
		configPath string
		duration   time.Duration
	)

	flag.StringVar(&username, "username", "", "Usuário existente e ativo")
	flag.StringVar(&configPath, "config", "./config", "Diretório do config.yaml")
	flag.DurationVar(&duration, "duration", 0, "Validade do token (padrão: auth.tokenExpiration)")
	flag.Parse()

	if username == "" {
		fmt.Println("Erro: o nome do usuário não pode ser vazio.")
		fmt.Println("Uso: gentoken -username=<usuário> [-duration=1h]")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Erro ao carregar configuração: %v\n", err)
		os.Exit(1)
	}

	logCfg := cfg.Logging
	logCfg.Level = "error"
	logCfg.OutputPath = "stderr"
	logger, err := logging.NewLoggerFromConfig(logCfg)
	if err != nil {
		fmt.Printf("Erro ao inicializar logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Um token para usuário inexistente seria recusado pela API
	dbConfig := database.ConfigFrom(cfg.Database)
	dbConfig.SkipMigrations = true
	dbConfig.SkipSeed = true
	db, err := database.NewDatabase(context.Background(), dbConfig, logger)
	if err != nil {
		fmt.Printf("Erro ao conectar ao banco de dados: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	found, err := db.Store().Users().GetByUsername(context.Background(), username)
	if err != nil {
		fmt.Printf("Erro: usuário %q não encontrado: %v\n", username, err)
		os.Exit(1)
	}
	if !found.IsActive {
		fmt.Printf("Erro: usuário %q está inativo\n", username)
		os.Exit(1)
	}

	if os.Getenv("JWT_SECRET_KEY") == "" && cfg.Auth.JWTSecret == "" {
		fmt.Println("Erro: configure JWT_SECRET_KEY ou auth.jwtSecret; uma chave temporária geraria um token inútil.")
		os.Exit(1)
	}

	if duration <= 0 {
		duration = cfg.Auth.TokenExpiration
	}
	keyManager, err := security.NewKeyManager(security.GetJWTSecret(cfg, logger), duration, logger)
	if err != nil {
		fmt.Printf("Erro ao criar gerenciador de chaves: %v\n", err)
		os.Exit(1)
	}

	token, err := keyManager.GenerateToken(found.Username)
	if err != nil {
		fmt.Printf("Erro ao gerar token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "Usuário: %s, expira em: %s\n", found.Username, time.Now().Add(keyManager.Expiration()).Format(time.RFC3339))
}
