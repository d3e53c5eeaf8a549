// Package bot holds the slash-command views. Commands are pure I/O glue on
// top of the services and stores.
package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const parseModeMarkdownV2 = tgbotapi.ModeMarkdownV2
