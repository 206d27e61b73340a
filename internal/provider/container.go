package provider

import (
	"github.com/digistock/internal/cache"
	"github.com/digistock/internal/config"
	"github.com/digistock/internal/logger"
	"github.com/digistock/internal/models"
	"github.com/digistock/internal/queue"
	"github.com/digistock/internal/repository"
	"github.com/digistock/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	ProductRepo        repository.ProductRepository
	PlatformRepo       repository.PlatformRepository
	SubscriberRepo     repository.SubscriberRepository
	SaleRepo           repository.SaleRepository
	PurchaseRepo       repository.PurchaseRepository
	StockMovementRepo  repository.StockMovementRepository
	CreditMovementRepo repository.CreditMovementRepository
	DashboardRepo      repository.DashboardRepository

	// Services
	ProductService    *service.ProductService
	PlatformService   *service.PlatformService
	SubscriberService *service.SubscriberService
	SaleService       *service.SaleService
	PurchaseService   *service.PurchaseService
	PaymentService    *service.PaymentService
	DashboardService  *service.DashboardService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.ProductRepo = repository.NewProductRepository(db)
	c.PlatformRepo = repository.NewPlatformRepository(db)
	c.SubscriberRepo = repository.NewSubscriberRepository(db)
	c.SaleRepo = repository.NewSaleRepository(db)
	c.PurchaseRepo = repository.NewPurchaseRepository(db)
	c.StockMovementRepo = repository.NewStockMovementRepository(db)
	c.CreditMovementRepo = repository.NewCreditMovementRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	c.ProductService = service.NewProductService(c.ProductRepo, c.PlatformRepo, c.StockMovementRepo)
	c.PlatformService = service.NewPlatformService(c.PlatformRepo, c.CreditMovementRepo)
	c.SubscriberService = service.NewSubscriberService(c.SubscriberRepo)
	c.SaleService = service.NewSaleService(
		c.SaleRepo,
		c.ProductRepo,
		c.PlatformRepo,
		c.SubscriberRepo,
		c.StockMovementRepo,
		c.CreditMovementRepo,
		c.QueueClient,
	)
	c.PurchaseService = service.NewPurchaseService(c.PurchaseRepo, c.ProductRepo, c.StockMovementRepo)
	c.PaymentService = service.NewPaymentService(c.SaleRepo)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo, c.Config.Dashboard.CacheTTLSeconds)
}
