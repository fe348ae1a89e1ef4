package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"jobwatch/internal/domain"
)

// TelegramNotifier reports newly stored ads to a chat. Optional; a
// nil notifier is a no-op.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

func (t *TelegramNotifier) SendAd(ad domain.Ad) error {
	if t == nil {
		return nil
	}
	deadline := ad.DeadlineString()
	if deadline == "" {
		deadline = "n/a"
	}
	text := fmt.Sprintf(
		"<b>%s</b>\n%s\nDeadline: %s\n<a href=\"%s\">Announcement (PDF)</a>",
		ad.Title,
		ad.JobType,
		deadline,
		ad.PDFURL,
	)
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML"
	_, err := t.bot.Send(msg)
	return err
}
