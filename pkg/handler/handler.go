package handler

import (
	"bank_notify_back/pkg/middleware"
	"bank_notify_back/pkg/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *service.Service
	secret  string
}

func NewHandler(service *service.Service, secret string) *Handler {
	return &Handler{
		service: service,
		secret:  secret,
	}
}

func (h *Handler) InitRoute() *gin.Engine {
	router := gin.New()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "X-Webhook-Secret"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))

	webhook := router.Group("/webhook", middleware.WebhookSecret(h.secret))
	{
		webhook.POST("/bank", h.BankWebhook)
	}

	api := router.Group("/api")
	{
		transfers := api.Group("/transfers", middleware.WebhookSecret(h.secret))
		{
			transfers.GET("/", h.GetTransfers)
		}
	}
	return router
}
