package notify

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"immolist/server/internal/models"
)

// Settings is the Telegram notification configuration.
type Settings struct {
	Enabled  bool
	BotToken string
	ChatID   string
}

// Service pushes order notifications to a Telegram chat. Disabled service is
// a no-op so callers never branch on configuration.
type Service struct {
	logger   *logrus.Logger
	client   *http.Client
	settings Settings
}

func NewService(settings Settings, logger *logrus.Logger) *Service {
	return &Service{
		logger:   logger,
		settings: settings,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SendMessage sends a message to the configured Telegram chat.
func (s *Service) SendMessage(message string) error {
	if !s.settings.Enabled {
		return nil
	}
	if s.settings.BotToken == "" {
		return errors.New("telegram bot token is not configured")
	}
	if s.settings.ChatID == "" {
		return errors.New("telegram chat ID is not configured")
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", s.settings.BotToken)
	payload := map[string]interface{}{
		"chat_id":    s.settings.ChatID,
		"text":       message,
		"parse_mode": "HTML",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal telegram payload: %w", err)
	}

	resp, err := s.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

// NotifyNewOrder announces a freshly placed order. Failures are logged, not
// propagated: a lost notification must never fail the order intake.
func (s *Service) NotifyNewOrder(order *models.Order) {
	if !s.settings.Enabled {
		return
	}

	var sb strings.Builder
	sb.WriteString("🏠 <b>New order received</b>\n\n")
	sb.WriteString(fmt.Sprintf("Ref: %s\n", order.Reference))
	sb.WriteString(fmt.Sprintf("Customer: %s\n", order.CustomerName))
	if order.CustomerPhone != "" {
		sb.WriteString(fmt.Sprintf("Phone: %s\n", order.CustomerPhone))
	}
	if order.City != "" {
		sb.WriteString(fmt.Sprintf("City: %s\n", order.City))
	}
	sb.WriteString(fmt.Sprintf("\nItems (%d):\n", len(order.Items)))
	for _, item := range order.Items {
		sb.WriteString(fmt.Sprintf("• %s: %d DH x%d\n", item.Name, item.Price, item.Quantity))
	}
	sb.WriteString(fmt.Sprintf("\nTotal: <b>%d DH</b>", order.Total()))

	if err := s.SendMessage(sb.String()); err != nil {
		s.logger.WithError(err).Error("Failed to send order notification")
	}
}
