package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backend/pkg/mailer"
	"portfolio-backend/pkg/models"
)

// Fixed user-facing messages for the contact form. Delivery details are
// logged server-side only.
const (
	msgFieldsRequired = "All fields are required."
	msgSendFailed     = "Failed to send message. Please try again."
)

// ProfileBuilder produces the consolidated GitHub profile view.
type ProfileBuilder interface {
	BuildProfile(ctx context.Context) (*models.ProfileData, error)
}

// App holds the handler dependencies.
type App struct {
	aggregator ProfileBuilder
	sender     mailer.Sender
	logger     *log.Logger
}

func setupRouter(app *App) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", app.handleHealth)

	api := r.Group("/api")
	api.GET("/github", app.handleGitHubProfile)
	api.POST("/contact", app.handleContact)

	return r
}

func (app *App) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (app *App) handleGitHubProfile(c *gin.Context) {
	profile, err := app.aggregator.BuildProfile(c.Request.Context())
	if err != nil {
		app.logger.Printf("GitHub aggregation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (app *App) handleContact(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Complete() {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgFieldsRequired})
		return
	}

	if app.sender == nil {
		app.logger.Printf("Contact submission from %s dropped: mail delivery not configured", req.Email)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgSendFailed})
		return
	}

	if err := app.sender.SendContactEmails(c.Request.Context(), req); err != nil {
		app.logger.Printf("Contact delivery failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgSendFailed})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
