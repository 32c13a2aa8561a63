package db

import (
	"github.com/4ndreams/GPS-sub000/internal/app/model"
	"github.com/4ndreams/GPS-sub000/pkg/logger"
	"gorm.io/gorm"
)

// Models lists every table managed by AutoMigrate.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.Quote{},
		&model.QuoteItem{},
	}
}

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds the starter catalogue when the products table is empty
func Seed() error {
	return seedProducts(DB)
}

func seedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Products already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	products := []model.Product{
		{
			SKU:           "PTA-MDF-LISA",
			Name:          "Puerta MDF lisa",
			Description:   "Puerta interior de MDF lista para pintar",
			Category:      model.CategoryDoor,
			Material:      "MDF",
			Sizes:         model.StringList{"60x200", "70x200", "80x200"},
			Price:         39990,
			StockQuantity: 40,
		},
		{
			SKU:           "PTA-PINO-6T",
			Name:          "Puerta pino 6 tableros",
			Description:   "Puerta de pino radiata con seis tableros",
			Category:      model.CategoryDoor,
			Material:      "Pino",
			Sizes:         model.StringList{"70x200", "80x200", "90x200"},
			Price:         79990,
			StockQuantity: 15,
		},
		{
			SKU:           "MOL-GUARD-70",
			Name:          "Guardapolvo MDF 70mm",
			Description:   "Guardapolvo prepintado blanco, tira de 2,44 m",
			Category:      model.CategoryMolding,
			Material:      "MDF",
			Sizes:         model.StringList{"244"},
			Price:         3490,
			StockQuantity: 300,
		},
		{
			SKU:           "MOL-CORN-45",
			Name:          "Cornisa pino 45mm",
			Description:   "Cornisa de pino finger joint, tira de 3,20 m",
			Category:      model.CategoryMolding,
			Material:      "Pino",
			Sizes:         model.StringList{"320"},
			Price:         4290,
			StockQuantity: 180,
		},
		{
			SKU:           "ACC-BIS-35",
			Name:          "Bisagra 3,5\" acero",
			Category:      model.CategoryAccessory,
			Material:      "Acero",
			Price:         1290,
			StockQuantity: 500,
		},
	}

	if err := db.Create(&products).Error; err != nil {
		logger.Error("Failed to seed products", err)
		return err
	}

	logger.Info("Initial catalogue seeded successfully", map[string]interface{}{
		"count": len(products),
	})
	return nil
}
