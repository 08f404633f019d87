package main

import (
	"fmt"

	"github.com/giftmart/internal/config"
	"github.com/giftmart/internal/logger"
	"github.com/giftmart/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加演示礼品卡商品
	products := []models.Product{
		{
			Name:            "Amazon Gift Card $25",
			Brand:           "Amazon",
			Category:        "shopping",
			Region:          "US",
			Currency:        "USD",
			PriceAmount:     models.NewMoneyFromDecimal(decimal.NewFromFloat(25.00)),
			DiscountPercent: 0,
			Stock:           100,
			Description:     "Redeemable on amazon.com for millions of items.",
			ImageURL:        "https://images.unsplash.com/photo-1523474253046-8cd2748b5fd2?w=800",
			IsActive:        true,
			SortOrder:       300,
		},
		{
			Name:            "Amazon Gift Card $50",
			Brand:           "Amazon",
			Category:        "shopping",
			Region:          "US",
			Currency:        "USD",
			PriceAmount:     models.NewMoneyFromDecimal(decimal.NewFromFloat(50.00)),
			DiscountPercent: 2,
			Stock:           100,
			Description:     "Redeemable on amazon.com for millions of items.",
			ImageURL:        "https://images.unsplash.com/photo-1523474253046-8cd2748b5fd2?w=800",
			IsActive:        true,
			SortOrder:       290,
		},
		{
			Name:            "Steam Wallet Card $20",
			Brand:           "Steam",
			Category:        "gaming",
			Region:          "Global",
			Currency:        "USD",
			PriceAmount:     models.NewMoneyFromDecimal(decimal.NewFromFloat(20.00)),
			DiscountPercent: 0,
			Stock:           80,
			Description:     "Add funds to your Steam Wallet for games and in-game content.",
			ImageURL:        "https://images.unsplash.com/photo-1612287230202-1ff1d85d1bdf?w=800",
			IsActive:        true,
			SortOrder:       280,
		},
		{
			Name:            "Steam Wallet Card $50",
			Brand:           "Steam",
			Category:        "gaming",
			Region:          "Global",
			Currency:        "USD",
			PriceAmount:     models.NewMoneyFromDecimal(decimal.NewFromFloat(50.00)),
			DiscountPercent: 3,
			Stock:           60,
			Description:     "Add funds to your Steam Wallet for games and in-game content.",
			ImageURL:        "https://images.unsplash.com/photo-1612287230202-1ff1d85d1bdf?w=800",
			IsActive:        true,
			SortOrder:       270,
		},
		{
			Name:            "PlayStation Store Card $25",
			Brand:           "PlayStation",
			Category:        "gaming",
			Region:          "US",
			Currency:        "USD",
			PriceAmount:     models.NewMoneyFromDecimal(decimal.NewFromFloat(25.00)),
			DiscountPercent: 0,
			Stock:           50,
			Description:     "Buy games, add-ons and subscriptions on PlayStation Store.",
			ImageURL:        "https://images.unsplash.com/photo-1606144042614-b2417e99c4e3?w=800",
			IsActive:        true,
			SortOrder:       260,
		},
		{
			Name:            "Netflix Gift Card $30",
			Brand:           "Netflix",
			Category:        "streaming",
			Region:          "US",
			Currency:        "USD",
			PriceAmount:     models.NewMoneyFromDecimal(decimal.NewFromFloat(30.00)),
			DiscountPercent: 5,
			Stock:           40,
			Description:     "Apply to your Netflix account balance for subscription payments.",
			ImageURL:        "https://images.unsplash.com/photo-1574375927938-d5a98e8ffe85?w=800",
			IsActive:        true,
			SortOrder:       250,
		},
		{
			Name:            "Google Play Gift Card EUR 15",
			Brand:           "Google Play",
			Category:        "apps",
			Region:          "EU",
			Currency:        "EUR",
			PriceAmount:     models.NewMoneyFromDecimal(decimal.NewFromFloat(15.00)),
			DiscountPercent: 0,
			Stock:           70,
			Description:     "Apps, games, movies and more on Google Play (EU accounts).",
			ImageURL:        "https://images.unsplash.com/photo-1607252650355-f7fd0460ccdb?w=800",
			IsActive:        true,
			SortOrder:       240,
		},
		{
			Name:            "Demo Gift Card - Sold Out",
			Brand:           "Demo",
			Category:        "demo",
			Region:          "Global",
			Currency:        "USD",
			PriceAmount:     models.NewMoneyFromDecimal(decimal.NewFromFloat(10.00)),
			DiscountPercent: 0,
			Stock:           0,
			Description:     "Demo entry with zero stock for out-of-stock behavior.",
			ImageURL:        "https://images.unsplash.com/photo-1512499617640-c74ae3a79d37?w=800",
			IsActive:        true,
			SortOrder:       100,
		},
		{
			Name:            "Demo Gift Card - Inactive",
			Brand:           "Demo",
			Category:        "demo",
			Region:          "Global",
			Currency:        "USD",
			PriceAmount:     models.NewMoneyFromDecimal(decimal.NewFromFloat(10.00)),
			DiscountPercent: 0,
			Stock:           30,
			Description:     "Demo entry hidden from the public catalog.",
			ImageURL:        "https://images.unsplash.com/photo-1512499617640-c74ae3a79d37?w=800",
			IsActive:        false,
			SortOrder:       90,
		},
	}

	for _, prod := range products {
		var existing models.Product
		if err := models.DB.Where("name = ?", prod.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&prod).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", prod.Name, err)
			} else {
				stdLog.Printf("Created product: %s", prod.Name)
			}
		} else {
			existing.Brand = prod.Brand
			existing.Category = prod.Category
			existing.Region = prod.Region
			existing.Currency = prod.Currency
			existing.PriceAmount = prod.PriceAmount
			existing.DiscountPercent = prod.DiscountPercent
			existing.Stock = prod.Stock
			existing.Description = prod.Description
			existing.ImageURL = prod.ImageURL
			existing.IsActive = prod.IsActive
			existing.SortOrder = prod.SortOrder
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update product %s: %v", prod.Name, err)
			} else {
				stdLog.Printf("Updated product: %s", prod.Name)
			}
		}
	}

	// 初始化默认管理员
	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}

	fmt.Println("\nSeed data created successfully!")
	fmt.Println("Summary:")
	fmt.Printf("- %d gift card products\n", len(products))
	fmt.Println("- Default admin account")
}
