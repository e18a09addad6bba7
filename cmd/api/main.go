package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	apilisting "mortgage_scenario/pkg/api/listing"
	apiscenario "mortgage_scenario/pkg/api/scenario"
	"mortgage_scenario/pkg/core/advisor"
	"mortgage_scenario/pkg/core/cache"
	"mortgage_scenario/pkg/core/listing"
	"mortgage_scenario/pkg/core/llm"
	"mortgage_scenario/pkg/core/store"
)

// ServerConfig is the optional YAML server configuration.
type ServerConfig struct {
	Port    string               `yaml:"port"`
	Scraper listing.ClientConfig `yaml:"scraper"`
}

func loadServerConfig() ServerConfig {
	cfg := ServerConfig{
		Port:    "8080",
		Scraper: listing.DefaultClientConfig(),
	}

	data, err := os.ReadFile("config/server.yaml")
	if err != nil {
		return cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		fmt.Printf("[WARNING] Failed to parse config/server.yaml: %v\n", err)
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	return cfg
}

func main() {
	// Load environment variables
	godotenv.Load()

	cfg := loadServerConfig()
	ctx := context.Background()

	// Persistence is optional; without DATABASE_URL the API still calculates.
	var scenarioRepo *store.ScenarioRepo
	var listingRepo *store.ListingRepo
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(ctx); err != nil {
			fmt.Printf("[WARNING] Database unavailable, persistence disabled: %v\n", err)
		} else {
			scenarioRepo = store.NewScenarioRepo()
			listingRepo = store.NewListingRepo()
			defer store.Close()
			fmt.Println("[STORE] PostgreSQL persistence enabled")
		}
	}

	// Cache: Redis when configured, in-process otherwise.
	var resultCache cache.Repository
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		resultCache = cache.NewRedisCache(addr)
		fmt.Printf("[CACHE] Redis cache at %s\n", addr)
	} else {
		resultCache = cache.NewMemoryCache()
		fmt.Println("[CACHE] In-memory cache")
	}

	// Advisor is optional; endpoints answer 503 without an API key.
	var adv *advisor.Advisor
	if os.Getenv("GEMINI_API_KEY") != "" || os.Getenv("DEEPSEEK_API_KEY") != "" {
		adv = advisor.New(llm.FromEnv())
		fmt.Println("[ADVISOR] Advisory endpoints enabled")
	}

	scenarioHandler := apiscenario.NewHandler(resultCache, scenarioRepo, adv)
	http.HandleFunc("/api/scenario/calculate", scenarioHandler.HandleCalculate)
	http.HandleFunc("/api/scenario/report", scenarioHandler.HandleReport)
	http.HandleFunc("/api/scenario/advise", scenarioHandler.HandleAdvise)
	http.HandleFunc("/api/scenario/presets", scenarioHandler.HandlePresets)
	http.HandleFunc("/api/scenario/saved", scenarioHandler.HandleSaved)

	listingHandler := apilisting.NewHandler(listing.NewClient(cfg.Scraper), listingRepo)
	http.HandleFunc("/api/listings/scrape", listingHandler.HandleScrape)
	http.HandleFunc("/api/listings", listingHandler.HandleListings)

	fmt.Printf("API server starting on :%s...\n", cfg.Port)
	fmt.Println("  - POST /api/scenario/calculate")
	fmt.Println("  - POST /api/scenario/report")
	fmt.Println("  - POST /api/scenario/advise")
	fmt.Println("  - GET  /api/scenario/presets")
	fmt.Println("  - GET  /api/scenario/saved")
	fmt.Println("  - POST /api/listings/scrape")
	fmt.Println("  - GET  /api/listings?city=...")

	if err := http.ListenAndServe(":"+cfg.Port, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
