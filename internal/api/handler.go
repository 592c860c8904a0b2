package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"vpnsub/internal/repository"
	"vpnsub/internal/service"
)

// Clients never see internal error detail; they get this and we get the log.
const genericErrorMessage = "Unexpected error occurred, please contact support"

type Handler struct {
	subscriptions *service.SubscriptionService
}

func NewHandler(subscriptions *service.SubscriptionService) *Handler {
	return &Handler{subscriptions: subscriptions}
}

// Home renders the status page for browsers and returns the raw config for
// VPN clients. The identifier is the VPN account name, with a Telegram user
// id accepted as a fallback key.
// GET /:identifier
func (h *Handler) Home(c *gin.Context) {
	identifier := c.Param("identifier")
	client := ClassifyClient(c.Request)

	if client == ClientVPN {
		log.Printf("Request type is vpn, returning vpn config for %s", identifier)
		config, expiresAt, err := h.subscriptions.GetConfig(identifier)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"status": http.StatusNotFound})
				return
			}
			log.Printf("Error fetching config for %s: %v", identifier, err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":  genericErrorMessage,
				"status": http.StatusInternalServerError,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"config":    config,
			"expiresAt": expiresAt.Format(time.RFC3339),
		})
		return
	}

	summary, err := h.subscriptions.GetStatus(identifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": http.StatusNotFound})
			return
		}
		log.Printf("Error rendering home for %s: %v", identifier, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":  genericErrorMessage,
			"status": http.StatusInternalServerError,
		})
		return
	}

	c.HTML(http.StatusOK, "home.html", gin.H{"summary": summary})
}

// GetSubscription returns the JSON status summary.
// GET /api/subscription/:identifier
func (h *Handler) GetSubscription(c *gin.Context) {
	identifier := c.Param("identifier")

	summary, err := h.subscriptions.GetStatus(identifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":  "subscription not found",
				"status": http.StatusNotFound,
			})
			return
		}
		log.Printf("Error in GetSubscription for %s: %v", identifier, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":  genericErrorMessage,
			"status": http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, summary)
}
