package bot

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/edpilots/psibot/internal/botkit"
	"github.com/edpilots/psibot/internal/model"
	"github.com/edpilots/psibot/internal/render"
	"github.com/edpilots/psibot/internal/storage"
)

type ArticleFinder interface {
	Latest(ctx context.Context) (*model.Article, error)
}

// ViewCmdGalnet replies with the most recent stored Galnet article.
func ViewCmdGalnet(articles ArticleFinder) botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		article, err := articles.Latest(ctx)
		if errors.Is(err, storage.ErrNotFound) {
			reply := tgbotapi.NewMessage(update.Message.Chat.ID, "No articles stored yet.")
			_, err := bot.Send(reply)
			return err
		}
		if err != nil {
			return err
		}

		reply := tgbotapi.NewMessage(update.Message.Chat.ID, render.Article(*article))
		reply.ParseMode = parseModeMarkdownV2
		reply.DisableWebPagePreview = true
		_, err = bot.Send(reply)
		return err
	}
}
