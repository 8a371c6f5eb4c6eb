package main

import (
	"github.com/kitshop/internal/config"
	"github.com/kitshop/internal/logger"
	"github.com/kitshop/internal/models"

	"github.com/shopspring/decimal"
)

type seedProduct struct {
	Name     string
	Price    string
	Stock    int
	Category string
	Level    string
	Digital  bool
	Features []string
}

type seedKit struct {
	Name     string
	Price    string
	Level    string
	Features []string
}

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

	products := []seedProduct{
		{Name: "Arduino Uno R3", Price: "150.00", Stock: 40, Category: "boards", Level: "beginner", Features: []string{"ATmega328P", "USB-B"}},
		{Name: "Raspberry Pi Pico", Price: "89.90", Stock: 60, Category: "boards", Level: "intermediate", Features: []string{"RP2040", "MicroPython"}},
		{Name: "Sensor Pack 37-in-1", Price: "210.50", Stock: 25, Category: "sensors", Level: "beginner", Features: []string{"37 modules", "Jumper wires"}},
		{Name: "Robotics Course (PDF)", Price: "59.00", Stock: 0, Category: "courses", Level: "advanced", Digital: true, Features: []string{"12 chapters"}},
	}
	for _, item := range products {
		var existing models.Product
		if err := models.DB.Where("name = ?", item.Name).First(&existing).Error; err == nil {
			stdLog.Printf("Product already exists: %s", item.Name)
			continue
		}
		product := models.Product{
			Name:        item.Name,
			Description: item.Name,
			PriceAmount: models.NewMoneyFromDecimal(decimal.RequireFromString(item.Price)),
			Stock:       item.Stock,
			Category:    item.Category,
			Level:       item.Level,
			IsDigital:   item.Digital,
			IsActive:    true,
			Features:    models.StringArray(item.Features),
		}
		if err := models.DB.Create(&product).Error; err != nil {
			stdLog.Printf("Failed to create product %s: %v", item.Name, err)
			continue
		}
		stdLog.Printf("Created product: %s", item.Name)
	}

	kits := []seedKit{
		{Name: "Starter Robotics Kit", Price: "320.00", Level: "beginner", Features: []string{"Chassis", "2 motors", "Guide"}},
		{Name: "IoT Weather Station Kit", Price: "275.00", Level: "intermediate", Features: []string{"ESP32", "BME280", "Dashboard"}},
	}
	for _, item := range kits {
		var existing models.Kit
		if err := models.DB.Where("name = ?", item.Name).First(&existing).Error; err == nil {
			stdLog.Printf("Kit already exists: %s", item.Name)
			continue
		}
		kit := models.Kit{
			Name:        item.Name,
			Description: item.Name,
			PriceAmount: models.NewMoneyFromDecimal(decimal.RequireFromString(item.Price)),
			Level:       item.Level,
			IsDigital:   true,
			IsActive:    true,
			Features:    models.StringArray(item.Features),
		}
		if err := models.DB.Create(&kit).Error; err != nil {
			stdLog.Printf("Failed to create kit %s: %v", item.Name, err)
			continue
		}
		stdLog.Printf("Created kit: %s", item.Name)
	}

	if err := models.InitDefaultAdmin(cfg.Admin.Email, cfg.Admin.Password); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}
	stdLog.Printf("Seed completed")
}
