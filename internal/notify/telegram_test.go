package notify

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"immolist/server/internal/models"
)

func TestSendMessageDisabled(t *testing.T) {
	s := NewService(Settings{Enabled: false}, logrus.New())
	assert.NoError(t, s.SendMessage("ignored"))
}

func TestSendMessageMissingConfig(t *testing.T) {
	s := NewService(Settings{Enabled: true, ChatID: "123"}, logrus.New())
	err := s.SendMessage("hello")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "bot token")

	s = NewService(Settings{Enabled: true, BotToken: "abc"}, logrus.New())
	err = s.SendMessage("hello")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "chat ID")
}

func TestNotifyNewOrderDisabledIsNoop(t *testing.T) {
	s := NewService(Settings{Enabled: false}, logrus.New())

	// Must not panic or attempt any network call.
	s.NotifyNewOrder(&models.Order{
		Reference:    "ref-1",
		CustomerName: "Amine B",
		Items:        []models.OrderItem{{Name: "x", Price: 100, Quantity: 2}},
	})
}

func TestOrderTotal(t *testing.T) {
	order := models.Order{
		Items: []models.OrderItem{
			{Price: 100, Quantity: 2},
			{Price: 50, Quantity: 1},
		},
	}
	assert.Equal(t, int64(250), order.Total())
}
