package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tributa/fiscal-engine/internal/application/fiscal"
	infracrypto "github.com/tributa/fiscal-engine/internal/infrastructure/crypto"
	infrapdf "github.com/tributa/fiscal-engine/internal/infrastructure/pdf"
	"github.com/tributa/fiscal-engine/internal/infrastructure/postgres"
	httpRouter "github.com/tributa/fiscal-engine/internal/interfaces/http"
	"github.com/tributa/fiscal-engine/pkg/config"
	"github.com/tributa/fiscal-engine/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	cipher, err := infracrypto.NewSecretCipher(cfg.Cipher.Key)
	if err != nil {
		log.Fatal().Err(err).Msg("chave de cifragem de credenciais")
	}

	obligationRepo := postgres.NewObligationRepository(pool)
	apurationRepo := postgres.NewApurationRepository(pool)
	difalRepo := postgres.NewDifalRepository(pool)
	nfseRepo := postgres.NewNfseRepository(pool)
	blocoKRepo := postgres.NewBlocoKRepository(pool)
	stockSourceRepo := postgres.NewStockSourceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()

	obligationUC := fiscal.NewObligationUseCase(obligationRepo, log)
	apurationUC := fiscal.NewApurationUseCase(apurationRepo, txRunner, pdfGenerator)
	difalUC := fiscal.NewDifalUseCase(difalRepo)
	nfseUC := fiscal.NewNfseUseCase(nfseRepo, txRunner, cipher)
	blocoKUC := fiscal.NewBlocoKUseCase(blocoKRepo, stockSourceRepo, txRunner, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Fiscal Engine API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ObligationUC: obligationUC,
		ApurationUC:  apurationUC,
		DifalUC:      difalUC,
		NfseUC:       nfseUC,
		BlocoKUC:     blocoKUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação parada")
}
