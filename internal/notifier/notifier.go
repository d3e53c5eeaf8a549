// Package notifier posts and edits channel messages. It returns message IDs
// so callers can edit a message in place later.
package notifier

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Notifier struct {
	bot *tgbotapi.BotAPI
}

func New(bot *tgbotapi.BotAPI) *Notifier {
	return &Notifier{bot: bot}
}

// Post sends a MarkdownV2 message to the channel and returns its message ID.
func (n *Notifier) Post(channelID int64, text string) (int, error) {
	msg := tgbotapi.NewMessage(channelID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	msg.DisableWebPagePreview = true

	sent, err := n.bot.Send(msg)
	if err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

// Edit rewrites a previously posted message in place.
func (n *Notifier) Edit(channelID int64, messageID int, text string) error {
	edit := tgbotapi.NewEditMessageText(channelID, messageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2

	_, err := n.bot.Send(edit)
	return err
}
