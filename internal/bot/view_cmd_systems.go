package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/edpilots/psibot/internal/botkit"
	"github.com/edpilots/psibot/internal/botkit/markup"
	"github.com/edpilots/psibot/internal/model"
)

type SystemLister interface {
	MostPopular(ctx context.Context, limit int) ([]model.System, error)
}

// ViewCmdSystems lists the systems most often looked up with /distance.
func ViewCmdSystems(systems SystemLister) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		popular, err := systems.MostPopular(ctx, 10)
		if err != nil {
			return err
		}
		if len(popular) == 0 {
			reply := tgbotapi.NewMessage(update.Message.Chat.ID, "No systems looked up yet.")
			_, err := bot.Send(reply)
			return err
		}

		var b strings.Builder
		b.WriteString("*Most looked up systems*\n")
		for i, system := range popular {
			fmt.Fprintf(&b, "%d\\. %s \\(%d\\)\n",
				i+1,
				markup.EscapeForMarkdown(system.Name),
				system.Popularity,
			)
		}

		reply := tgbotapi.NewMessage(update.Message.Chat.ID, strings.TrimRight(b.String(), "\n"))
		reply.ParseMode = parseModeMarkdownV2
		_, err = bot.Send(reply)
		return err
	}
}
