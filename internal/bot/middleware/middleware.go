// Package middleware wraps command views with access checks.
package middleware

import (
	"context"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/edpilots/psibot/internal/botkit"
)

// AdminsOnly passes the update through only when the sender administers the
// given channel. Everyone else is silently ignored.
func AdminsOnly(channelID int64, next botkit.ViewFunc) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		admins, err := bot.GetChatAdministrators(tgbotapi.ChatAdministratorsConfig{
			ChatConfig: tgbotapi.ChatConfig{ChatID: channelID},
		})
		if err != nil {
			return err
		}

		for _, admin := range admins {
			if admin.User != nil && admin.User.ID == update.Message.From.ID {
				return next(ctx, bot, update)
			}
		}

		log.Printf("[INFO] ignoring /%s from non-admin user %d",
			update.Message.Command(), update.Message.From.ID)
		return nil
	}
}
