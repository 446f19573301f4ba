package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/diillson/restaurante-api/internal/adapter/database"
	"github.com/diillson/restaurante-api/internal/app/user"
	"github.com/diillson/restaurante-api/internal/domain/model"
	"github.com/diillson/restaurante-api/pkg/config"
	apperrors "github.com/diillson/restaurante-api/pkg/errors"
	"github.com/diillson/restaurante-api/pkg/logging"
	"go.uber.org/zap"
)

func main() {
	var (
		username   string
		password   string
		configPath string
		reset      bool
		verbose    bool
	)

	flag.StringVar(&username, "username", "", "Nome do usuário")
	flag.StringVar(&password, "password", "", "Senha do usuário")
	flag.StringVar(&configPath, "config", "./config", "Diretório do config.yaml")
	flag.BoolVar(&reset, "reset", false, "Se o usuário existir, redefine a senha e reativa")
	flag.BoolVar(&verbose, "verbose", false, "Mostrar logs detalhados")
	flag.Parse()

	if username == "" || password == "" {
		fmt.Println("Erro: username e password são obrigatórios.")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Erro ao carregar configuração: %v\n", err)
		os.Exit(1)
	}

	// Sem -verbose só erros vão para stderr
	logCfg := cfg.Logging
	if !verbose {
		logCfg.Level = "error"
		logCfg.OutputPath = "stderr"
	}
	logger, err := logging.NewLoggerFromConfig(logCfg)
	if err != nil {
		fmt.Printf("Erro ao inicializar logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()
	db, err := database.NewDatabase(ctx, database.ConfigFrom(cfg.Database), logger)
	if err != nil {
		fmt.Printf("Erro ao conectar ao banco de dados: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	users := user.NewService(db.Store(), cfg.Auth.PasswordMinLen, logger)

	created, err := users.Create(ctx, model.UserCreate{Username: username, Password: password})
	if err == nil {
		fmt.Printf("Usuário %q criado (id %d)\n", created.Username, created.ID)
		return
	}

	if !errors.Is(err, apperrors.ErrConflict) || !reset {
		fmt.Printf("Erro ao criar usuário: %v\n", err)
		os.Exit(1)
	}

	existing, err := db.Store().Users().GetByUsername(ctx, username)
	if err != nil {
		logger.Error("Usuário não encontrado para redefinição", zap.Error(err))
		os.Exit(1)
	}

	active := true
	updated, err := users.Update(ctx, existing.ID, model.UserPatch{Password: &password, IsActive: &active})
	if err != nil {
		fmt.Printf("Erro ao redefinir usuário: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Senha de %q redefinida (id %d)\n", updated.Username, updated.ID)
}
