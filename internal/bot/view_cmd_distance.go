package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/edpilots/psibot/internal/botkit"
	"github.com/edpilots/psibot/internal/distance"
	"github.com/edpilots/psibot/internal/model"
)

var distancePrinter = message.NewPrinter(language.English)

// ViewCmdDistance answers with the distance between two star systems.
// Arguments may be JSON ({"origin": ..., "destination": ...}) or two
// comma-separated system names.
func ViewCmdDistance(calc *distance.Calculator) botkit.ViewFunc {
	type distanceArgs struct {
		Origin      string `json:"origin"`
		Destination string `json:"destination"`
	}

	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		raw := update.Message.CommandArguments()

		args, err := botkit.ParseJSON[distanceArgs](raw)
		if err != nil {
			if origin, destination, ok := strings.Cut(raw, ","); ok {
				args.Origin = strings.TrimSpace(origin)
				args.Destination = strings.TrimSpace(destination)
			}
		}

		if args.Origin == "" || args.Destination == "" {
			reply := tgbotapi.NewMessage(update.Message.Chat.ID,
				`Usage: /distance {"origin": "Sol", "destination": "Lave"}`)
			_, err := bot.Send(reply)
			return err
		}

		calc.Bump(ctx, args.Origin, args.Destination)

		ly, systems, err := calc.Between(ctx, args.Origin, args.Destination)
		if err != nil {
			text := "There was an error while trying to calculate the distance."
			if errors.Is(err, distance.ErrSystemNotFound) {
				text = "You need to enter two existing system names."
			}
			reply := tgbotapi.NewMessage(update.Message.Chat.ID, text)
			_, err := bot.Send(reply)
			return err
		}

		reply := tgbotapi.NewMessage(update.Message.Chat.ID, fmt.Sprintf(
			"Distance between %s and %s: %s ly.",
			systemName(systems, 0, args.Origin),
			systemName(systems, 1, args.Destination),
			distancePrinter.Sprintf("%.2f", ly),
		))
		_, err = bot.Send(reply)
		return err
	}
}

func systemName(systems []model.System, i int, fallback string) string {
	if i < len(systems) && systems[i].Name != "" {
		return systems[i].Name
	}
	return fallback
}
