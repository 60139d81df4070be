package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/slack-go/slack"

	"github.com/ckaracaev/slack-sales-task/internal/config"
	"github.com/ckaracaev/slack-sales-task/internal/handlers"
	"github.com/ckaracaev/slack-sales-task/internal/middleware"
	"github.com/ckaracaev/slack-sales-task/internal/routes"
	"github.com/ckaracaev/slack-sales-task/internal/services"
)

const digestSpec = "0 9 * * *"

func Run() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Config error: ", err)
	}

	// === Clients (constructed once, injected everywhere) ===
	slackClient := slack.New(cfg.Slack.BotToken)
	hubspotService := services.NewHubSpotService(cfg.HubSpot.Token, cfg.HubSpot.BaseURL)

	// === Digest ===
	loc, err := time.LoadLocation(cfg.Digest.Timezone)
	if err != nil {
		log.Fatal("Invalid digest timezone: ", err)
	}
	digestService := services.NewDigestService(hubspotService, slackClient, cfg.Digest.ChannelID, loc)

	scheduler := cron.New(cron.WithLocation(loc))
	if _, err := scheduler.AddFunc(digestSpec, func() {
		digestService.Run(context.Background())
	}); err != nil {
		log.Fatal("Cron error: ", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// === Handlers ===
	slackHandler := handlers.NewSlackHandler(hubspotService, slackClient)

	// === Gin ===
	router := gin.Default()
	routes.SetupRoutes(router, slackHandler, middleware.SlackVerifier(cfg.Slack.SigningSecret))

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Slack app running on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Server error: ", err)
	}
}
