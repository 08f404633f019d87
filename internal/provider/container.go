package provider

import (
	"github.com/giftmart/internal/cache"
	"github.com/giftmart/internal/config"
	"github.com/giftmart/internal/logger"
	"github.com/giftmart/internal/models"
	"github.com/giftmart/internal/queue"
	"github.com/giftmart/internal/repository"
	"github.com/giftmart/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo   repository.AdminRepository
	UserRepo    repository.UserRepository
	ProductRepo repository.ProductRepository
	OrderRepo   repository.OrderRepository

	// Services
	AuthService     *service.AuthService
	UserAuthService *service.UserAuthService
	UserService     *service.UserService
	EmailService    *service.EmailService
	ProductService  *service.ProductService
	StockService    *service.StockService
	PaymentService  *service.PaymentService
	OrderService    *service.OrderService
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

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
}

func (c *Container) initServices() {
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.UserService = service.NewUserService(c.UserRepo)
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.StockService = service.NewStockService(c.ProductRepo)
	c.PaymentService = service.NewPaymentService(&c.Config.Payment.Stripe)
	c.OrderService = service.NewOrderService(
		c.OrderRepo,
		c.ProductRepo,
		c.StockService,
		c.PaymentService,
		c.QueueClient,
		c.Config.Order.Currency,
		c.Config.Order.AdminListLimit,
	)
}
