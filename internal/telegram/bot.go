// Optional Telegram notifications: each surviving job is pushed as an
// HTML-formatted message, plus one run summary at the end.

package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"go-jobradar-automation/internal/scraper"
)

type Bot struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewBot(token string, chatID int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &Bot{
		api:    api,
		chatID: chatID,
	}, nil
}

func (b *Bot) send(text string) error {
	msg := tgbotapi.NewMessage(b.chatID, text)
	msg.ParseMode = "HTML"
	_, err := b.api.Send(msg)
	return err
}

// SendJob pushes one record. Unknown fields render as the UNKNOWN sentinel.
func (b *Bot) SendJob(rec scraper.JobRecord) error {
	text := fmt.Sprintf(
		"💼 <b>%s</b>\n"+
			"🏢 %s\n"+
			"📍 %s\n"+
			"📅 %s\n"+
			"🔗 <a href=\"%s\">View job</a>",
		rec.Title,
		rec.Company,
		rec.Location,
		rec.PostedDate,
		rec.Link,
	)
	return b.send(text)
}

// SendStatus pushes a plain run summary.
func (b *Bot) SendStatus(text string) error {
	return b.send(text)
}
