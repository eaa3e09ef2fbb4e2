// Package di wires the whole application together in one place, following
// CleanArchitecture/pkg/di/container.go's ordered-init Container pattern:
// initInfrastructure -> initRepositories -> initExternalServices ->
// initUseCases. Every step only depends on fields earlier steps already
// filled in.
package di

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/nikoly240702/tender-sniper/configs"
	"github.com/nikoly240702/tender-sniper/internal/ai"
	"github.com/nikoly240702/tender-sniper/internal/domain/filter"
	"github.com/nikoly240702/tender-sniper/internal/domain/notification"
	"github.com/nikoly240702/tender-sniper/internal/domain/tendercache"
	"github.com/nikoly240702/tender-sniper/internal/domain/user"
	"github.com/nikoly240702/tender-sniper/internal/infrastructure/database"
	"github.com/nikoly240702/tender-sniper/internal/monitor"
	"github.com/nikoly240702/tender-sniper/internal/notify"
	"github.com/nikoly240702/tender-sniper/internal/portal"
	"github.com/nikoly240702/tender-sniper/internal/report"
	"github.com/nikoly240702/tender-sniper/internal/search"
	"github.com/nikoly240702/tender-sniper/internal/sheets"
	"github.com/nikoly240702/tender-sniper/pkg/cache"
	"github.com/nikoly240702/tender-sniper/pkg/health"
)

// Container holds every constructed component the HTTP surface and the
// Monitoring Loop need. Exported fields so cmd/api can reach deep into it
// without the container growing a getter per field.
type Container struct {
	Config *configs.Config
	Log    *zap.SugaredLogger

	DB *database.DB

	Users         user.Repository
	Filters       filter.Repository
	Notifications notification.Repository
	TenderCache   tendercache.Repository

	Portal        *portal.Client
	AI            *ai.Client
	AIQuota       *ai.QuotaTracker
	AIChecker     *ai.Checker
	AIEnricher    *ai.Enricher
	QueryExpander *ai.QueryExpander

	NotifyStore *notify.Store
	Sender      *notify.Sender

	Search    *search.Service
	Report    *report.Generator
	Sheets    *sheets.Client
	Exporter  *sheets.Exporter
	Monitor   *monitor.Loop
	HealthReg *health.Registry
}

// New builds and wires a Container, in the fixed order every step of this
// file assumes: infra first (nothing else works without a DB), then
// repositories (the only consumers of DB), then external collaborators
// (AI/portal/chat/sheets — none of them need repositories), then the
// use-case-level services that compose repositories with collaborators.
func New(ctx context.Context, cfg *configs.Config, log *zap.SugaredLogger) (*Container, error) {
	c := &Container{Config: cfg, Log: log}

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}
	c.initRepositories()
	if err := c.initExternalServices(ctx); err != nil {
		return nil, err
	}
	c.initUseCases()

	return c, nil
}

func (c *Container) initInfrastructure() error {
	db, err := database.NewConnection(database.Config{
		Host:     c.Config.Database.Host,
		Port:     c.Config.Database.Port,
		User:     c.Config.Database.User,
		Password: c.Config.Database.Password,
		DBName:   c.Config.Database.DBName,
		SSLMode:  c.Config.Database.SSLMode,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err := db.RunMigrations(); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	c.DB = db

	c.HealthReg = health.NewRegistry(c.Config.Database.QueryTimeout)
	c.HealthReg.Register(health.NewDatabaseChecker(db.DB))

	return nil
}

func (c *Container) initRepositories() {
	c.Users = database.NewUserRepository(c.DB)
	c.Filters = database.NewFilterRepository(c.DB)
	c.Notifications = database.NewNotificationRepository(c.DB)
	c.TenderCache = database.NewTenderCacheRepository(c.DB)
}

func (c *Container) initExternalServices(ctx context.Context) error {
	c.Portal = portal.New(c.Config.Portal, c.Log)

	// Nil when AI.APIKey is empty — every downstream consumer treats that as
	// "AI disabled" rather than panicking.
	c.AI = ai.New(
		c.Config.AI.APIKey,
		c.Config.AI.Model,
		c.Config.AI.Timeout,
		c.Config.AI.MaxRetries,
		c.Config.AI.RetryDelay,
		c.Log,
	)

	c.AIQuota = ai.NewQuotaTracker(c.Config.Business.AIQuotaDaily)

	relevanceCache := cache.New(c.Config.AI.RelevanceCacheTTL, c.Config.AI.RelevanceCacheTTL*2)
	c.AIChecker = ai.NewChecker(c.AI, c.AIQuota, relevanceCache, c.Log)

	enrichmentCache := cache.New(c.Config.AI.EnrichmentCacheTTL, c.Config.AI.EnrichmentCacheTTL*2)
	c.AIEnricher = ai.NewEnricher(c.AI, enrichmentCache, c.Log)

	c.QueryExpander = ai.NewQueryExpander(c.AI, c.Log)

	var collaborator notify.Collaborator
	if c.Config.Notify.BotToken != "" {
		collaborator = notify.NewTelegramCollaborator(c.Config.Notify.BotToken, c.Config.Notify.SendTimeout, c.Log)
	}
	c.Sender = notify.NewSender(collaborator, c.Log)

	sheetsClient, err := sheets.New(ctx, c.sheetsCredentialsFile(), c.Log)
	if err != nil {
		return fmt.Errorf("build sheets client: %w", err)
	}
	c.Sheets = sheetsClient
	if c.Config.Notify.SpreadsheetEnabled {
		c.Exporter = sheets.NewExporter(c.Sheets, c.Config.Notify.SpreadsheetID)
	}

	return nil
}

func (c *Container) initUseCases() {
	c.NotifyStore = notify.NewStore(c.Notifications, c.Users)

	c.Search = search.NewService(c.Portal, c.AIChecker, c.Log)

	gen, err := report.NewGenerator()
	if err != nil {
		// The template is a compile-time constant — a parse failure here
		// means the template source itself is broken, not a runtime
		// condition callers can recover from.
		panic(fmt.Sprintf("report template failed to parse: %v", err))
	}
	c.Report = gen

	var exporter monitor.SheetsExporter
	if c.Exporter != nil {
		exporter = c.Exporter
	}

	c.Monitor = monitor.NewLoop(
		c.Filters,
		c.Users,
		c.Search,
		c.NotifyStore,
		c.Sender,
		exporter,
		c.TenderCache,
		monitor.Config{
			PollInterval:              c.Config.Business.PollInterval,
			MaxTenders:                c.Config.Business.MonitoringMaxTenders,
			ScoreThreshold:            c.Config.Business.MatchScoreThreshold,
			WorkerPoolSize:            c.Config.Business.WorkerPoolSize,
			ConsecutiveTransientLimit: c.Config.Business.ConsecutiveTransientLimit,
			TierLimits:                c.Config.Business.TierLimits,
		},
		c.Log,
	)
}

// sheetsCredentialsFile resolves the service-account credentials path for
// the optional spreadsheet export collaborator — empty disables the Sheets
// client per its own nil-is-disabled convention.
func (c *Container) sheetsCredentialsFile() string {
	if !c.Config.Notify.SpreadsheetEnabled {
		return ""
	}
	return c.Config.Notify.SheetsCredentialsFile
}

// Close releases every resource the container opened.
func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
