package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/BolzoniProducoes/api-gestao/internal/auth"
	"github.com/BolzoniProducoes/api-gestao/internal/config"
	"github.com/BolzoniProducoes/api-gestao/internal/evento"
	"github.com/BolzoniProducoes/api-gestao/internal/financeiro"
	"github.com/BolzoniProducoes/api-gestao/internal/notificacao"
	"github.com/BolzoniProducoes/api-gestao/internal/parcelamento"
	"github.com/BolzoniProducoes/api-gestao/internal/personagem"
	"github.com/BolzoniProducoes/api-gestao/internal/taxas"
	"github.com/BolzoniProducoes/api-gestao/internal/usuario"
	"github.com/BolzoniProducoes/api-gestao/internal/utils/cache"
	"github.com/BolzoniProducoes/api-gestao/internal/utils/db"
	"github.com/BolzoniProducoes/api-gestao/internal/utils/logger"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()

	lg, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatal("Erro ao iniciar logger:", err)
	}
	defer func() { _ = lg.Sync() }()

	database, err := db.ConnectDataBase(cfg.DB)
	if err != nil {
		lg.Fatal("Erro ao conectar no banco", zap.Error(err))
	}
	if err := migrar(database); err != nil {
		lg.Fatal("Erro no AutoMigrate", zap.Error(err))
	}

	rdb, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// sem Redis as configurações são lidas direto do banco
		lg.Warn("Redis indisponível, cache desligado", zap.Error(err))
		rdb = nil
	}
	defer cache.Close(rdb)

	tokens, err := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	if err != nil {
		lg.Fatal("Erro na configuração de autenticação", zap.Error(err))
	}

	usuarioRepo := usuario.NewRepository(database)
	sessoes := auth.NewSessoes(database, tokens, usuarioRepo, cfg.Auth.CookieSecure)
	if err := usuario.GarantirAdmin(usuarioRepo, cfg.Auth.AdminEmail, cfg.Auth.AdminSenha); err != nil {
		lg.Fatal("Erro ao criar administrador inicial", zap.Error(err))
	}

	// Configurações financeiras: banco + cache
	configuracoes := taxas.NewCache(taxas.NewRepository(database), rdb, cfg.Redis.TTL)
	personagemRepo := personagem.NewRepository(database)

	// Handlers
	usuarioHandler := usuario.NewHandler(usuarioRepo, sessoes)
	taxasHandler := taxas.NewHandler(configuracoes)
	parcelamentoHandler := parcelamento.NewHandler(configuracoes)
	personagemHandler := personagem.NewHandler(personagemRepo)
	eventoHandler := evento.NewHandler(database, configuracoes, personagemRepo)
	eventoHandler.Avisos = notificacao.NewWebhook(cfg.WebhookURL)
	financeiroHandler := financeiro.NewHandler(financeiro.NewRepository(database))

	// Router
	r := mux.NewRouter()

	// Rotas públicas
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/auth/login", usuarioHandler.Login).Methods("POST", "OPTIONS")
	r.HandleFunc("/auth/refresh", sessoes.Refresh).Methods("POST", "OPTIONS")
	r.HandleFunc("/auth/logout", sessoes.Logout).Methods("POST", "OPTIONS")

	// Rotas autenticadas
	api := r.PathPrefix("/").Subrouter()
	api.Use(tokens.Middleware)

	// Usuários
	api.HandleFunc("/usuarios/me", usuarioHandler.Me).Methods("GET")
	api.HandleFunc("/usuarios/me/senha", usuarioHandler.AlterarSenha).Methods("PUT")
	api.Handle("/usuarios", auth.RequireAdmin(http.HandlerFunc(usuarioHandler.List))).Methods("GET")
	api.Handle("/usuarios", auth.RequireAdmin(http.HandlerFunc(usuarioHandler.Create))).Methods("POST")
	api.Handle("/usuarios/{id}", auth.RequireAdmin(http.HandlerFunc(usuarioHandler.Delete))).Methods("DELETE")

	// Taxas e configurações
	api.HandleFunc("/taxas", taxasHandler.Consultar).Methods("GET")
	api.HandleFunc("/configuracoes/taxas", taxasHandler.ObterConfiguracao).Methods("GET")
	api.Handle("/configuracoes/taxas", auth.RequireAdmin(http.HandlerFunc(taxasHandler.AtualizarConfiguracao))).Methods("PUT")

	// Parcelamento
	api.HandleFunc("/parcelamento/simular", parcelamentoHandler.Simular).Methods("POST")

	// Personagens
	api.HandleFunc("/personagens", personagemHandler.Create).Methods("POST")
	api.HandleFunc("/personagens", personagemHandler.List).Methods("GET")
	api.HandleFunc("/personagens/{id}", personagemHandler.Get).Methods("GET")
	api.HandleFunc("/personagens/{id}", personagemHandler.Update).Methods("PUT")
	api.HandleFunc("/personagens/{id}", personagemHandler.Delete).Methods("DELETE")

	// Eventos
	api.HandleFunc("/eventos/composicao", eventoHandler.CalcularComposicao).Methods("POST")
	api.HandleFunc("/eventos", eventoHandler.Create).Methods("POST")
	api.HandleFunc("/eventos", eventoHandler.List).Methods("GET")
	api.HandleFunc("/eventos/{id}", eventoHandler.Get).Methods("GET")
	api.HandleFunc("/eventos/{id}", eventoHandler.Update).Methods("PUT")
	api.HandleFunc("/eventos/{id}", eventoHandler.Delete).Methods("DELETE")
	api.HandleFunc("/eventos/{id}/financeiro", eventoHandler.ResumoFinanceiro).Methods("GET")
	api.HandleFunc("/eventos/{id}/pagamentos", eventoHandler.RegistrarPagamento).Methods("POST")
	api.HandleFunc("/eventos/{id}/pagamentos/{pagamentoId}", eventoHandler.RemoverPagamento).Methods("DELETE")

	// Financeiro
	api.HandleFunc("/transacoes", financeiroHandler.List).Methods("GET")
	api.HandleFunc("/transacoes", financeiroHandler.Create).Methods("POST")
	api.HandleFunc("/transacoes/resumo", financeiroHandler.Resumo).Methods("GET")
	api.HandleFunc("/transacoes/{id}/status", financeiroHandler.UpdateStatus).Methods("PATCH")

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		lg.Info("Servidor rodando", zap.String("porta", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("Erro no servidor", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("Erro ao encerrar servidor", zap.Error(err))
	}
}

// migrar roda o AutoMigrate de todos os domínios
func migrar(database *gorm.DB) error {
	for _, m := range []func(*gorm.DB) error{
		usuario.Migrate,
		auth.Migrate,
		taxas.Migrate,
		personagem.Migrate,
		evento.Migrate,
		financeiro.Migrate,
	} {
		if err := m(database); err != nil {
			return err
		}
	}
	return nil
}
