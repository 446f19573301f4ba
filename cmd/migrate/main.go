package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/diillson/restaurante-api/internal/adapter/database"
	"github.com/diillson/restaurante-api/pkg/config"
	"github.com/diillson/restaurante-api/pkg/logging"
	"go.uber.org/zap"
)

func main() {
	var (
		action     string
		name       string
		configPath string
		skipSeed   bool
	)

	flag.StringVar(&action, "action", "migrate", "Ação (migrate, create)")
	flag.StringVar(&name, "name", "", "Nome da migração (apenas para action=create)")
	flag.StringVar(&configPath, "config", "./config", "Diretório do config.yaml")
	flag.BoolVar(&skipSeed, "skip-seed", false, "Não gravar situações de mesa e formas de pagamento padrão")
	flag.Parse()

	logger, err := logging.NewLogger()
	if err != nil {
		fmt.Printf("Erro ao inicializar logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Fatal("Falha ao carregar configuração", zap.Error(err))
	}

	dbConfig := database.ConfigFrom(cfg.Database)
	dbConfig.SkipSeed = skipSeed

	ctx := context.Background()

	switch action {
	case "migrate":
		dbConfig.SkipMigrations = false
		db, err := database.NewDatabase(ctx, dbConfig, logger)
		if err != nil {
			logger.Fatal("Falha ao inicializar banco de dados", zap.Error(err))
		}
		defer db.Close()

		logger.Info("Migrações aplicadas com sucesso",
			zap.String("driver", cfg.Database.Driver),
			zap.String("dir", cfg.Database.MigrationDir))

	case "create":
		if name == "" {
			logger.Fatal("Nome da migração é obrigatório para action=create")
		}

		// Criar o arquivo não exige aplicar as migrações existentes
		dbConfig.SkipMigrations = true
		dbConfig.SkipSeed = true
		db, err := database.NewDatabase(ctx, dbConfig, logger)
		if err != nil {
			logger.Fatal("Falha ao inicializar banco de dados", zap.Error(err))
		}
		defer db.Close()

		path, err := db.CreateMigration(name)
		if err != nil {
			logger.Fatal("Falha ao criar migração", zap.Error(err))
		}

		logger.Info("Migração criada", zap.String("path", path))

	default:
		logger.Fatal("Ação desconhecida", zap.String("action", action))
	}
}
