package main

import (
	"context"
	"log"
	"os"

	"github.com/thomsonxavier/kaviecommerce/internal/config"
	"github.com/thomsonxavier/kaviecommerce/internal/db"
	"github.com/thomsonxavier/kaviecommerce/internal/identity"
	"github.com/thomsonxavier/kaviecommerce/internal/kvstore"
	"github.com/thomsonxavier/kaviecommerce/internal/logger"
	"github.com/thomsonxavier/kaviecommerce/internal/product"
)

// catalog is the storefront's launch range: natural personal-care and
// home-care products.
var catalog = []product.CreateInput{
	{
		ID:       "shampoo-aloe-vera",
		Name:     "Aloe Vera Shampoo",
		Category: product.CategoryPersonalCare,
		Type:     "Shampoo",
		Sizes: []product.Size{
			{Value: "200ml", Price: 199},
			{Value: "400ml", Price: 349},
		},
		Description: "Gentle cleansing shampoo enriched with pure aloe vera extract. Nourishes and strengthens hair while maintaining natural moisture balance.",
		Ingredients: []string{"Aloe Vera Extract", "Coconut Oil", "Vitamin E", "Natural Surfactants", "Essential Oils"},
	},
	{
		ID:       "shampoo-milk-protein",
		Name:     "Milk Protein Shampoo",
		Category: product.CategoryPersonalCare,
		Type:     "Shampoo",
		Sizes: []product.Size{
			{Value: "200ml", Price: 219},
			{Value: "400ml", Price: 389},
		},
		Description: "Rich milk protein formula that deeply nourishes and repairs damaged hair. Provides shine and smoothness with every wash.",
		Ingredients: []string{"Milk Protein", "Keratin", "Argan Oil", "Natural Conditioners", "Vitamin B5"},
	},
	{
		ID:       "shampoo-shikakai",
		Name:     "Shikakai Shampoo",
		Category: product.CategoryPersonalCare,
		Type:     "Shampoo",
		Sizes: []product.Size{
			{Value: "200ml", Price: 189},
			{Value: "400ml", Price: 329},
		},
		Description: "Traditional shikakai-based shampoo for natural hair care. Promotes hair growth and prevents dandruff naturally.",
		Ingredients: []string{"Shikakai Powder", "Amla Extract", "Reetha", "Neem Oil", "Hibiscus Extract"},
	},
	{
		ID:       "shampoo-onion",
		Name:     "Onion Shampoo",
		Category: product.CategoryPersonalCare,
		Type:     "Shampoo",
		Sizes: []product.Size{
			{Value: "200ml", Price: 229},
			{Value: "400ml", Price: 399},
		},
		Description: "Enriched with red onion extract to reduce hair fall and promote healthy hair growth. Strengthens hair from roots to tips.",
		Ingredients: []string{"Red Onion Extract", "Biotin", "Caffeine", "Saw Palmetto", "Vitamin C"},
	},
	{
		ID:          "napkin-xl-10",
		Name:        "Organic Sanitary Napkins - XL (10 pcs)",
		Category:    product.CategoryPersonalCare,
		Type:        "Sanitary Napkin",
		Sizes:       []product.Size{{Value: "10 pcs", Price: 99}},
		Description: "100% organic cotton sanitary napkins. Chemical-free, soft, and highly absorbent. Perfect for sensitive skin.",
		Ingredients: []string{"Organic Cotton", "Biodegradable Materials", "Natural Absorbent Core"},
	},
	{
		ID:          "napkin-xl-30",
		Name:        "Organic Sanitary Napkins - XL (30 pcs)",
		Category:    product.CategoryPersonalCare,
		Type:        "Sanitary Napkin",
		Sizes:       []product.Size{{Value: "30 pcs", Price: 279}},
		Description: "Value pack of 100% organic cotton sanitary napkins. Chemical-free, soft, and highly absorbent.",
		Ingredients: []string{"Organic Cotton", "Biodegradable Materials", "Natural Absorbent Core"},
	},
	{
		ID:          "napkin-xxl-10",
		Name:        "Organic Sanitary Napkins - XXL (10 pcs)",
		Category:    product.CategoryPersonalCare,
		Type:        "Sanitary Napkin",
		Sizes:       []product.Size{{Value: "10 pcs", Price: 119}},
		Description: "Extra-large 100% organic cotton sanitary napkins for overnight protection. Chemical-free and ultra-absorbent.",
		Ingredients: []string{"Organic Cotton", "Biodegradable Materials", "Natural Absorbent Core"},
	},
	{
		ID:          "napkin-xxl-30",
		Name:        "Organic Sanitary Napkins - XXL (30 pcs)",
		Category:    product.CategoryPersonalCare,
		Type:        "Sanitary Napkin",
		Sizes:       []product.Size{{Value: "30 pcs", Price: 329}},
		Description: "Value pack of extra-large 100% organic cotton sanitary napkins. Perfect for overnight use.",
		Ingredients: []string{"Organic Cotton", "Biodegradable Materials", "Natural Absorbent Core"},
	},
	{
		ID:          "detergent-1l",
		Name:        "Organic Liquid Detergent - Natural Wash (1 Ltr)",
		Category:    product.CategoryHomeCare,
		Type:        "Detergent",
		Sizes:       []product.Size{{Value: "1 Ltr", Price: 249}},
		Description: "Plant-based liquid detergent for gentle yet effective cleaning. Safe for all fabrics and sensitive skin.",
		Ingredients: []string{"Plant-Based Surfactants", "Natural Enzymes", "Essential Oil Fragrance", "Biodegradable Formula"},
	},
	{
		ID:          "detergent-3l",
		Name:        "Organic Liquid Detergent - Natural Wash (3 Ltr)",
		Category:    product.CategoryHomeCare,
		Type:        "Detergent",
		Sizes:       []product.Size{{Value: "3 Ltr", Price: 649}},
		Description: "Economy pack of plant-based liquid detergent. Eco-friendly and powerful cleaning for the whole family.",
		Ingredients: []string{"Plant-Based Surfactants", "Natural Enzymes", "Essential Oil Fragrance", "Biodegradable Formula"},
	},
	{
		ID:          "detergent-5l",
		Name:        "Organic Liquid Detergent - Natural Wash (5 Ltr)",
		Category:    product.CategoryHomeCare,
		Type:        "Detergent",
		Sizes:       []product.Size{{Value: "5 Ltr", Price: 999}},
		Description: "Family-size pack of organic liquid detergent. Best value for money with maximum cleaning power.",
		Ingredients: []string{"Plant-Based Surfactants", "Natural Enzymes", "Essential Oil Fragrance", "Biodegradable Formula"},
	},
}

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	ctx := context.Background()
	store := kvstore.NewPostgresStore(database)
	products := product.NewService(product.NewRepository(store))

	for _, input := range catalog {
		if _, err := products.Create(ctx, input); err != nil {
			log.Fatalf("failed to seed product %s: %v", input.ID, err)
		}
		log.Printf("seeded product: %s", input.ID)
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail != "" && adminPassword != "" {
		identitySvc := identity.NewService(identity.NewRepository(store), cfg.JWTSecret)
		if _, err := identitySvc.EnsureAdmin(ctx, adminEmail, adminPassword, "Administrator"); err != nil {
			log.Fatalf("failed to bootstrap admin: %v", err)
		}
		log.Printf("admin account ready: %s", adminEmail)
	}

	log.Println("✅ Seed complete.")
}
