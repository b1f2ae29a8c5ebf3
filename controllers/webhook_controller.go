package controllers

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"coursegen/config"
	"coursegen/models"
	"coursegen/repository"
)

type WebhookController struct {
	Cfg      *config.Config
	Users    *repository.UserRepository
	Sessions *repository.SessionRepository
	Logger   *zap.Logger
}

func NewWebhookController(cfg *config.Config, users *repository.UserRepository, sessions *repository.SessionRepository, logger *zap.Logger) *WebhookController {
	return &WebhookController{Cfg: cfg, Users: users, Sessions: sessions, Logger: logger}
}

type webhookEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type webhookUser struct {
	ID             string `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	ImageURL       string `json:"image_url"`
	EmailAddresses []struct {
		EmailAddress string `json:"email_address"`
		Verification struct {
			Status string `json:"status"`
		} `json:"verification"`
	} `json:"email_addresses"`
}

type webhookSession struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	ExpireAt int64  `json:"expire_at"`
}

// HandleUserWebhook godoc
// @Summary Identity-provider webhook receiver
// @Description Mirrors user and session lifecycle events after signature verification
// @Tags webhooks
// @Accept json
// @Produce json
// @Router /webhooks/user [post]
func (wc *WebhookController) HandleUserWebhook(c *fiber.Ctx) error {
	if wc.Cfg.WebhookSigningSecret == "" {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Webhook signing secret not configured",
		})
	}

	msgID := c.Get("svix-id")
	timestamp := c.Get("svix-timestamp")
	signature := c.Get("svix-signature")
	if msgID == "" || timestamp == "" || signature == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing Svix headers",
		})
	}

	payload := c.Body()
	if err := verifyWebhookSignature(wc.Cfg.WebhookSigningSecret, msgID, timestamp, signature, payload, time.Now()); err != nil {
		wc.Logger.Warn("webhook signature rejected", zap.String("svix_id", msgID), zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid signature",
		})
	}

	var event webhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if err := wc.dispatch(event); err != nil {
		wc.Logger.Error("processing webhook", zap.String("event", event.Type), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Webhook processed for event: " + event.Type,
	})
}

func (wc *WebhookController) dispatch(event webhookEvent) error {
	switch event.Type {
	case "user.created", "user.updated":
		return wc.handleUserEvent(event)
	case "user.deleted":
		return wc.handleUserDeleted(event)
	case "session.created":
		return wc.handleSessionCreated(event)
	case "session.ended", "session.removed", "session.revoked":
		return wc.handleSessionDeleted(event)
	default:
		wc.Logger.Info("unhandled webhook event type", zap.String("event", event.Type))
		return nil
	}
}

func (wc *WebhookController) handleUserEvent(event webhookEvent) error {
	var data webhookUser
	if err := json.Unmarshal(event.Data, &data); err != nil {
		return err
	}
	if len(data.EmailAddresses) == 0 || data.EmailAddresses[0].EmailAddress == "" {
		wc.Logger.Warn("user event without email address", zap.String("user_id", data.ID))
		return nil
	}

	user := &models.User{
		ID:    data.ID,
		Email: data.EmailAddresses[0].EmailAddress,
	}
	if name := strings.TrimSpace(strings.TrimSpace(data.FirstName) + " " + strings.TrimSpace(data.LastName)); name != "" {
		user.Name = &name
	}
	if data.ImageURL != "" {
		user.Image = &data.ImageURL
	}
	if data.EmailAddresses[0].Verification.Status == "verified" {
		now := time.Now()
		user.EmailVerified = &now
	}

	if event.Type == "user.updated" {
		err := wc.Users.Update(user)
		if errors.Is(err, repository.ErrNotFound) {
			wc.Logger.Warn("update for unknown user", zap.String("user_id", data.ID))
			return nil
		}
		return err
	}
	return wc.Users.Upsert(user)
}

func (wc *WebhookController) handleUserDeleted(event webhookEvent) error {
	var data webhookUser
	if err := json.Unmarshal(event.Data, &data); err != nil {
		return err
	}
	return wc.Users.Delete(data.ID)
}

func (wc *WebhookController) handleSessionCreated(event webhookEvent) error {
	var data webhookSession
	if err := json.Unmarshal(event.Data, &data); err != nil {
		return err
	}

	exists, err := wc.Users.Exists(data.UserID)
	if err != nil {
		return err
	}
	if !exists {
		wc.Logger.Warn("session created for non-existent user", zap.String("user_id", data.UserID))
		return nil
	}

	expires := time.Now().AddDate(0, 0, 7)
	if data.ExpireAt > 0 {
		expires = time.UnixMilli(data.ExpireAt)
	}

	return wc.Sessions.Create(&models.Session{
		ID:      data.ID,
		UserID:  data.UserID,
		Expires: expires,
	})
}

func (wc *WebhookController) handleSessionDeleted(event webhookEvent) error {
	var data webhookSession
	if err := json.Unmarshal(event.Data, &data); err != nil {
		return err
	}
	// Already-deleted sessions are a benign race between session.* events.
	return wc.Sessions.Delete(data.ID)
}
