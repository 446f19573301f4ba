package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/diillson/restaurante-api/internal/app"
	"github.com/diillson/restaurante-api/pkg/config"
	"github.com/diillson/restaurante-api/pkg/logging"
	"github.com/diillson/restaurante-api/pkg/telemetry"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"
)

var tlsConfig = &tls.Config{
	MinVersion: tls.VersionTLS12,
	CipherSuites: []uint16{
		tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
		tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
		tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
		tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
		tls.TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305,
		tls.TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305,
	},
}

// setupServer escolhe entre HTTP, HTTPS com certificados próprios e Let's Encrypt
func setupServer(router *gin.Engine, cfg *config.Config, logger *zap.Logger) *http.Server {
	server := &http.Server{
		Addr:           fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	if !cfg.Server.TLS || os.Getenv("ENV") == "development" {
		logger.Info("Iniciando em modo HTTP",
			zap.Bool("tls_disabled", !cfg.Server.TLS),
			zap.Int("port", cfg.Server.Port))
		return server
	}

	if hasCertificates(cfg, logger) {
		logger.Info("Usando certificados TLS fornecidos pelo usuário",
			zap.String("certFile", cfg.Server.CertFile),
			zap.String("keyFile", cfg.Server.KeyFile))

		server.Addr = ":443"
		server.TLSConfig = tlsConfig.Clone()
		go startHTTPRedirector(http.HandlerFunc(redirectHTTPS), logger)
		return server
	}

	domains := letsEncryptDomains(cfg)
	if len(domains) == 0 {
		logger.Warn("Nenhum domínio válido configurado para Let's Encrypt. Usando HTTP.")
		return server
	}

	email := os.Getenv("LETSENCRYPT_EMAIL")
	if email == "" {
		logger.Warn("Email para Let's Encrypt não configurado. Usando valor anônimo.")
	}

	certManager := autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		HostPolicy: autocert.HostWhitelist(domains...),
		Cache:      autocert.DirCache("./certs"),
		Email:      email,
	}

	server.Addr = ":443"
	server.TLSConfig = tlsConfig.Clone()
	server.TLSConfig.GetCertificate = certManager.GetCertificate

	// Porta 80 atende os desafios ACME e redireciona o resto para HTTPS
	go startHTTPRedirector(certManager.HTTPHandler(http.HandlerFunc(redirectHTTPS)), logger)

	logger.Info("Servidor HTTPS com Let's Encrypt configurado", zap.Strings("domains", domains))
	return server
}

func hasCertificates(cfg *config.Config, logger *zap.Logger) bool {
	if cfg.Server.CertFile == "" || cfg.Server.KeyFile == "" {
		return false
	}
	for _, path := range []string{cfg.Server.CertFile, cfg.Server.KeyFile} {
		if _, err := os.Stat(path); err != nil {
			logger.Error("Arquivo TLS não encontrado", zap.String("path", path), zap.Error(err))
			return false
		}
	}
	return true
}

// letsEncryptDomains prioriza SERVER_DOMAINS e descarta endereços locais
func letsEncryptDomains(cfg *config.Config) []string {
	domains := cfg.Server.Domains
	if env := os.Getenv("SERVER_DOMAINS"); env != "" {
		domains = strings.Split(env, ",")
	}

	valid := make([]string, 0, len(domains))
	for _, domain := range domains {
		domain = strings.TrimSpace(domain)
		if domain != "" && domain != "localhost" && domain != "127.0.0.1" {
			valid = append(valid, domain)
		}
	}
	return valid
}

func startHTTPRedirector(handler http.Handler, logger *zap.Logger) {
	httpServer := &http.Server{
		Addr:              ":80",
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("Iniciando servidor HTTP para redirecionamento HTTPS", zap.String("addr", httpServer.Addr))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Erro no servidor HTTP para redirecionamento", zap.Error(err))
	}
}

func redirectHTTPS(w http.ResponseWriter, r *http.Request) {
	target := "https://" + r.Host + r.URL.Path
	if len(r.URL.RawQuery) > 0 {
		target += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, target, http.StatusMovedPermanently)
}

func main() {
	configPath := os.Getenv("RA_CONFIG_PATH")
	if configPath == "" {
		configPath = "./config"
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Erro ao carregar configuração: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewLoggerFromConfig(cfg.Logging)
	if err != nil {
		fmt.Printf("Erro ao inicializar logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()

	var tracer *telemetry.TracerProvider
	if cfg.Tracing.Enabled {
		tracer, err = telemetry.NewTracerProvider(ctx, cfg.Tracing, logger)
		if err != nil {
			logger.Error("Falha ao inicializar tracer", zap.Error(err))
		}
	}

	application, err := app.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Falha ao inicializar aplicação", zap.Error(err))
	}

	if cfg.Logging.Production {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	application.RegisterRoutes(router)

	server := setupServer(router, cfg, logger)

	go func() {
		var err error
		switch {
		case server.TLSConfig == nil:
			logger.Info("Iniciando servidor HTTP", zap.String("addr", server.Addr))
			err = server.ListenAndServe()
		case server.TLSConfig.GetCertificate != nil:
			logger.Info("Iniciando servidor HTTPS (Let's Encrypt)", zap.String("addr", server.Addr))
			err = server.ListenAndServeTLS("", "")
		default:
			logger.Info("Iniciando servidor HTTPS", zap.String("addr", server.Addr))
			err = server.ListenAndServeTLS(cfg.Server.CertFile, cfg.Server.KeyFile)
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Erro ao iniciar servidor", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Erro ao encerrar servidor", zap.Error(err))
	}
	if err := application.Close(); err != nil {
		logger.Error("Erro ao fechar recursos da aplicação", zap.Error(err))
	}
	tracer.Shutdown(context.Background())

	logger.Info("Servidor encerrado com sucesso")
}
