package main

import (
	"log"
	"os"

	"portfolio-backend/pkg/cache"
	"portfolio-backend/pkg/config"
	"portfolio-backend/pkg/github"
	"portfolio-backend/pkg/mailer"
)

func main() {
	logger := log.New(os.Stdout, "[Portfolio] ", log.LstdFlags)

	cfg := config.Load()

	// One shared caching transport keeps repeated aggregation requests from
	// hammering the GitHub API within the revalidation window.
	transport := cache.NewTransport(nil, cfg.CacheTTL, logger)

	client, err := github.FromConfig(cfg, transport, logger)
	if err != nil {
		logger.Fatalf("Failed to create GitHub client: %v", err)
	}
	aggregator := github.NewAggregator(client, cfg.GitHubUsername, logger)
	logger.Printf("Aggregating GitHub profile for %s (token set: %v)", cfg.GitHubUsername, client.HasToken())

	var sender mailer.Sender
	if cfg.GmailUser != "" && cfg.GmailAppPassword != "" {
		m, err := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.GmailUser, cfg.GmailAppPassword, logger)
		if err != nil {
			logger.Fatalf("Failed to create mailer: %v", err)
		}
		sender = m
	} else {
		logger.Println("Warning: GMAIL_USER/GMAIL_APP_PASSWORD not set, contact form delivery disabled")
	}

	app := &App{
		aggregator: aggregator,
		sender:     sender,
		logger:     logger,
	}

	router := setupRouter(app)

	logger.Printf("Starting portfolio backend on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatalf("Server failed: %v", err)
	}
}
