// Copyright (c) 2026, EDPilots. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/edpilots/psibot/internal/bot"
	"github.com/edpilots/psibot/internal/bot/middleware"
	"github.com/edpilots/psibot/internal/botkit"
	"github.com/edpilots/psibot/internal/config"
	"github.com/edpilots/psibot/internal/distance"
	"github.com/edpilots/psibot/internal/notifier"
	"github.com/edpilots/psibot/internal/poller"
	"github.com/edpilots/psibot/internal/populate"
	"github.com/edpilots/psibot/internal/reporter"
	"github.com/edpilots/psibot/internal/service"
	"github.com/edpilots/psibot/internal/sheets"
	"github.com/edpilots/psibot/internal/source"
	"github.com/edpilots/psibot/internal/storage"
)

func main() {
	botAPI, err := tgbotapi.NewBotAPI(config.Get().TelegramBotToken)
	if err != nil {
		log.Printf("[ERROR] failed to create botAPI: %v", err)
		return
	}

	db, err := sqlx.Connect("postgres", config.Get().DatabaseDSN)
	if err != nil {
		log.Printf("[ERROR] failed to connect to db: %v", err)
		return
	}
	defer db.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var (
		articleStorage  = storage.NewArticleStorage(db)
		devPostStorage  = storage.NewDevPostStorage(db)
		settingsStorage = storage.NewSettingsStorage(db)
		goalLinkStorage = storage.NewGoalLinkStorage(db)
		systemStorage   = storage.NewSystemStorage(db)
	)

	mirror, err := sheets.New(ctx,
		config.Get().GoogleClientEmail,
		config.Get().GooglePrivateKey,
		config.Get().GoogleSpreadsheetID,
	)
	if err != nil {
		log.Printf("[ERROR] failed to create sheets mirror: %v", err)
		return
	}

	if err := populate.Articles(ctx, articleStorage, mirror); err != nil {
		log.Printf("[ERROR] failed to backfill articles: %v", err)
		return
	}
	if err := populate.DevPosts(ctx, devPostStorage, mirror); err != nil {
		log.Printf("[ERROR] failed to backfill dev posts: %v", err)
		return
	}

	var (
		send = notifier.New(botAPI)
		rep  = reporter.New(botAPI, config.Get().TelegramAdminChatID)
		calc = distance.NewCalculator(systemStorage, source.NewEDSMClient(config.Get().EDSMBaseURL))
	)

	var (
		galnetService = service.NewGalnetService(
			source.NewGalnetSource(config.Get().GalnetFeedURL),
			articleStorage,
			mirror,
			send,
			config.Get().NewsChannelID,
			config.Get().DedupByTitle,
		)
		devPostsService = service.NewDevPostsService(
			source.NewDevPostSource(config.Get().DevPostsFeedURL, config.Get().DevPostsTag),
			devPostStorage,
			mirror,
			send,
			config.Get().DevPostChannelID,
		)
		socialService = service.NewSocialService(
			source.NewSocialClient(
				config.Get().SocialAPIBaseURL,
				config.Get().SocialBearerToken,
				config.Get().SocialIncludeReplies,
				config.Get().SocialIncludeRetweets,
			),
			mirror,
			settingsStorage,
			send,
			config.Get().SocialChannelID,
		)
		goalService = service.NewGoalService(
			source.NewGoalsClient(config.Get().GoalsFeedURL),
			goalLinkStorage,
			send,
			config.Get().GoalChannelID,
			config.Get().GoalsInterval,
		)
	)

	var (
		galnetPoller   = poller.New("galnet", galnetService.Tick, rep)
		devPostsPoller = poller.New("devposts", devPostsService.Tick, rep)
		socialPoller   = poller.New("social", socialService.Tick, rep)
		goalsPoller    = poller.New("goals", goalService.Tick, rep)
	)
	galnetPoller.SetInterval(config.Get().GalnetInterval)
	devPostsPoller.SetInterval(config.Get().DevPostsInterval)
	socialPoller.SetInterval(config.Get().SocialInterval)
	goalsPoller.SetInterval(config.Get().GoalsInterval)

	for _, p := range []*poller.Poller{galnetPoller, devPostsPoller, socialPoller, goalsPoller} {
		go func(p *poller.Poller) {
			if err := p.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("[ERROR] poller stopped: %v", err)
			}
		}(p)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	go func() {
		if err := http.ListenAndServe("127.0.0.1:8088", mux); err != nil {
			log.Printf("[ERROR] failed to run http server: %v", err)
		}
	}()

	psiBot := botkit.New(botAPI)
	psiBot.RegisterCmdView("ping", bot.ViewCmdPing())
	psiBot.RegisterCmdView("distance", bot.ViewCmdDistance(calc))
	psiBot.RegisterCmdView("galnet", bot.ViewCmdGalnet(articleStorage))
	psiBot.RegisterCmdView("systems", bot.ViewCmdSystems(systemStorage))
	psiBot.RegisterCmdView(
		"restart",
		middleware.AdminsOnly(
			config.Get().NewsChannelID,
			bot.ViewCmdRestart(cancel),
		),
	)

	log.Printf("[INFO] PSI Bot online")

	if err := psiBot.Run(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Printf("[ERROR] failed to run botkit: %v", err)
			return
		}
	}

	log.Printf("[INFO] PSI Bot offline")
}
