package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tributa/fiscal-engine/internal/application/fiscal"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	ObligationUC *fiscal.ObligationUseCase
	ApurationUC  *fiscal.ApurationUseCase
	DifalUC      *fiscal.DifalUseCase
	NfseUC       *fiscal.NfseUseCase
	BlocoKUC     *fiscal.BlocoKUseCase
	JWTSecret    string
}

// Router registra as rotas da API. Tudo sob /api/fiscal exige Bearer Token;
// o companyID do token delimita o tenant de cada operação.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	protected := api.Group("/fiscal", AuthMiddleware(deps.JWTSecret))

	// Obrigações acessórias + calendário
	obligationHandler := NewObligationHandler(deps.ObligationUC)
	obligations := protected.Group("/obligations")
	obligations.Post("/generate", obligationHandler.Generate)
	obligations.Get("/", obligationHandler.List)
	obligations.Put("/:id/status", obligationHandler.UpdateStatus)
	protected.Get("/calendar", obligationHandler.Calendar)

	// Apuração de impostos
	apurationHandler := NewApurationHandler(deps.ApurationUC)
	apurations := protected.Group("/apurations")
	apurations.Post("/", apurationHandler.GetOrCreate)
	apurations.Get("/", apurationHandler.List)
	apurations.Get("/summary", apurationHandler.Summary)
	apurations.Get("/report", apurationHandler.Report)
	apurations.Post("/close", apurationHandler.Close)
	apurations.Post("/:id/items", apurationHandler.AddItem)

	// DIFAL
	difalHandler := NewDifalHandler(deps.DifalUC)
	difal := protected.Group("/difal")
	difal.Post("/", difalHandler.Calculate)
	difal.Get("/", difalHandler.List)

	// NFS-e
	nfseHandler := NewNfseHandler(deps.NfseUC)
	nfse := protected.Group("/nfse")
	nfse.Get("/config", nfseHandler.GetConfig)
	nfse.Put("/config", nfseHandler.UpsertConfig)
	nfse.Post("/", nfseHandler.Create)
	nfse.Get("/", nfseHandler.List)
	nfse.Get("/:id", nfseHandler.GetByID)
	nfse.Post("/:id/cancel", nfseHandler.Cancel)

	// Bloco K
	blocoKHandler := NewBlocoKHandler(deps.BlocoKUC)
	blocok := protected.Group("/blocok")
	blocok.Post("/generate", blocoKHandler.Generate)
	blocok.Get("/", blocoKHandler.List)
}
