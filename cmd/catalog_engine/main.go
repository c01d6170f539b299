package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"

	"github.com/Yi-lne/Hospital-Selection-System-sub001/api"
	"github.com/Yi-lne/Hospital-Selection-System-sub001/config"
	"github.com/Yi-lne/Hospital-Selection-System-sub001/internal/criteria"
	"github.com/Yi-lne/Hospital-Selection-System-sub001/internal/filter"
	"github.com/Yi-lne/Hospital-Selection-System-sub001/internal/scoring"
	"github.com/Yi-lne/Hospital-Selection-System-sub001/internal/translate"
	"github.com/Yi-lne/Hospital-Selection-System-sub001/services"
	"github.com/Yi-lne/Hospital-Selection-System-sub001/store"
)

func main() {
	// Define command-line flags
	var (
		help       = flag.Bool("help", false, "Show help message")
		version    = flag.Bool("version", false, "Show version information")
		port       = flag.String("port", "", "Port to run the server on (overrides config)")
		dbPath     = flag.String("db", "", "Path to the catalog SQLite database (overrides config)")
		configFile = flag.String("config", "", "Path to a config file (default: ./catalog-engine.yaml)")
	)

	flag.Parse()

	// Handle help flag
	if *help {
		fmt.Printf("Hospital Catalog Engine - Multi-criteria hospital and doctor filtering with relevance scoring\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                          # Start server on default port 8080\n", os.Args[0])
		fmt.Printf("  %s --port 9000              # Start server on port 9000\n", os.Args[0])
		fmt.Printf("  %s --db /var/lib/catalog.db # Use custom catalog database\n", os.Args[0])
		return
	}

	// Handle version flag
	if *version {
		fmt.Printf("Hospital Catalog Engine v1.0.0\n")
		fmt.Printf("Weighted relevance scoring with AI-assisted natural-language queries\n")
		return
	}

	settings, err := loadSettings(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != "" {
		settings.Port = *port
	}
	if *dbPath != "" {
		settings.DBPath = *dbPath
	}
	settings.ApplyDefaults()
	if err := settings.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize the catalog store
	log.Printf("Using catalog database: %s", settings.DBPath)
	catalogStore, err := store.NewCatalogStore(settings.DBPath)
	if err != nil {
		log.Fatalf("Failed to open catalog store: %v", err)
	}
	defer catalogStore.Close()

	// Initialize the intent translator; without an API key free-text queries
	// fall back to unfiltered criteria.
	var translator services.IntentTranslator
	if settings.Translator.APIKey != "" {
		translator, err = translate.NewClient(settings.Translator)
		if err != nil {
			log.Fatalf("Failed to initialize intent translator: %v", err)
		}
	} else {
		log.Printf("Warning: no translator API key configured, natural-language queries will be unfiltered")
		translator = translate.Disabled{}
	}

	normalizer := criteria.NewNormalizer(translator, criteria.Options{
		DefaultPageSize:   settings.DefaultPageSize,
		MaxPageSize:       settings.MaxPageSize,
		TranslatorTimeout: settings.Translator.Timeout,
	})

	scorer := scoring.NewEngine(settings.Weights)

	filterService, err := filter.NewService(catalogStore, scorer, settings.CandidateCap, settings.PoolSize)
	if err != nil {
		log.Fatalf("Failed to initialize filter service: %v", err)
	}
	defer filterService.Close()

	// Initialize Gin router
	router := gin.Default()
	router.Use(api.RequestIDMiddleware())
	router.Use(api.CORSMiddleware())
	router.Use(api.RequestSizeLimitMiddleware(settings.MaxBody))

	// Setup API routes
	api.SetupRoutes(router, filterService, normalizer, catalogStore)

	// Start the server
	log.Printf("Starting server on port %s...", settings.Port)
	if err := router.Run(":" + settings.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// loadSettings reads configuration from a file and CATALOG_ENGINE_* environment
// variables. A missing config file is not an error; defaults apply.
func loadSettings(configFile string) (*config.Settings, error) {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("catalog-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("CATALOG_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		log.Printf("Using config file: %s", viper.ConfigFileUsed())
	} else if configFile != "" {
		return nil, err
	}

	settings := &config.Settings{}
	if err := viper.Unmarshal(settings); err != nil {
		return nil, err
	}

	// The API key is secret material and comes from the environment only.
	if key := os.Getenv("CATALOG_ENGINE_TRANSLATOR_API_KEY"); key != "" {
		settings.Translator.APIKey = key
	}

	return settings, nil
}
