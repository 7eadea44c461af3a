package service

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/okasina/okasina-fashion/internal/automation"
	"github.com/okasina/okasina-fashion/internal/email"
	"github.com/okasina/okasina-fashion/internal/handlers"
	"github.com/okasina/okasina-fashion/internal/importer"
	"github.com/okasina/okasina-fashion/internal/meta"
	"github.com/okasina/okasina-fashion/internal/objectstore"
	"github.com/okasina/okasina-fashion/internal/ollama"
	"github.com/okasina/okasina-fashion/internal/relay"
	"github.com/okasina/okasina-fashion/internal/synth"
	"github.com/okasina/okasina-fashion/storage"
)

type Service struct {
	storage *storage.Storage
	config  *Config

	metaHandler       *handlers.MetaHandler
	productsHandler   *handlers.ProductsHandler
	analyzeHandler    *handlers.AnalyzeHandler
	emailHandler      *handlers.EmailHandler
	automationHandler *handlers.AutomationHandler
	jobsHandler       *handlers.JobsHandler
}

func New(store *storage.Storage, config *Config) *Service {
	ctx := context.Background()

	// Graph API client, nil when credentials are absent so handlers can
	// fail pre-flight instead of making doomed calls.
	var metaClient *meta.Client
	if config.HasMeta() {
		metaClient = meta.NewClient(meta.Config{
			PageID:      config.Meta.PageID,
			AccessToken: config.Meta.AccessToken,
			AppSecret:   config.Meta.AppSecret,
		})
	} else {
		slog.Warn("graph API credentials missing, social endpoints disabled")
	}

	// Product synthesizer, time-seeded in production. The model client is
	// always constructed; every model failure falls back to rules.
	llm := ollama.NewClient(config.Ollama.URL, config.Ollama.Model)
	synthesizer := synth.New(rand.New(rand.NewSource(time.Now().UnixNano())), llm)

	// Object storage and the import pipeline on top of it.
	var albumImporter *importer.Importer
	if config.HasStorage() && metaClient != nil {
		objStore, err := objectstore.NewS3Store(ctx, objectstore.Config{
			Endpoint:        config.Storage.Endpoint,
			Region:          config.Storage.Region,
			AccessKeyID:     config.Storage.AccessKey,
			SecretAccessKey: config.Storage.SecretKey,
			Bucket:          config.Storage.Bucket,
			PublicBaseURL:   config.Storage.PublicBaseURL,
		})
		if err != nil {
			slog.Error("failed to initialize object storage, imports disabled", "error", err)
		} else {
			imageRelay := relay.New(objStore)
			albumImporter = importer.New(metaClient, imageRelay, synthesizer, store.Queries)
		}
	} else {
		slog.Warn("object storage not configured, album imports disabled")
	}

	var poster automation.Poster
	if metaClient != nil {
		poster = metaClient
	}

	emailService := email.NewService(email.Config{
		Host:     config.SMTP.Host,
		Port:     config.SMTP.Port,
		Username: config.SMTP.Username,
		Password: config.SMTP.Password,
		From:     config.SMTP.From,
	})

	var pageClient handlers.PageClient
	if metaClient != nil {
		pageClient = metaClient
	}
	var importerIface handlers.AlbumImporter
	if albumImporter != nil {
		importerIface = albumImporter
	}

	return &Service{
		storage:           store,
		config:            config,
		metaHandler:       handlers.NewMetaHandler(pageClient, importerIface),
		productsHandler:   handlers.NewProductsHandler(store.Queries),
		analyzeHandler:    handlers.NewAnalyzeHandler(synthesizer),
		emailHandler:      handlers.NewEmailHandler(emailService),
		automationHandler: handlers.NewAutomationHandler(automation.NewRunner(store.Queries, poster)),
		jobsHandler:       handlers.NewJobsHandler(store.Queries),
	}
}

func (s *Service) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")

	// Social media import
	api.GET("/meta/albums", s.metaHandler.HandleListAlbums)
	api.GET("/meta/metrics", s.metaHandler.HandleMetrics)
	api.POST("/meta/import-album", s.metaHandler.HandleImportAlbum)
	api.GET("/import-jobs", s.jobsHandler.HandleListImportJobs)

	// Catalog admin
	api.GET("/products", s.productsHandler.HandleListProducts)
	api.POST("/products", s.productsHandler.HandleCreateProduct)
	api.GET("/products/:id", s.productsHandler.HandleGetProduct)
	api.PUT("/products/:id", s.productsHandler.HandleUpdateProduct)
	api.DELETE("/products/:id", s.productsHandler.HandleDeleteProduct)
	api.POST("/products/publish-drafts", s.productsHandler.HandlePublishDrafts)

	// Copy generation
	api.POST("/ai/analyze-product", s.analyzeHandler.HandleAnalyzeProduct)

	// Automation
	api.POST("/automation/run", s.automationHandler.HandleRunAutomation)

	// Email relay
	api.POST("/email/send", s.emailHandler.HandleSendEmail)
}
