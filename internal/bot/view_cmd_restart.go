package bot

import (
	"context"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/edpilots/psibot/internal/botkit"
)

// ViewCmdRestart triggers a coordinated shutdown; the process supervisor is
// expected to bring the bot back up.
func ViewCmdRestart(shutdown func()) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		reply := tgbotapi.NewMessage(update.Message.Chat.ID, "Restarting...")
		if _, err := bot.Send(reply); err != nil {
			return err
		}

		log.Printf("[INFO] restart requested by user %d", update.Message.From.ID)
		shutdown()
		return nil
	}
}
