package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/kanjibot/internal/bot"
	"github.com/example/kanjibot/internal/config"
	"github.com/example/kanjibot/internal/database"
	"github.com/example/kanjibot/internal/excel"
	"github.com/example/kanjibot/internal/logger"
	"github.com/example/kanjibot/internal/scheduler"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log)

	// Контекст отменяется по сигналу
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, cfg.Database.Driver, cfg.Database.DSN, log)
	if err != nil {
		return err
	}
	defer db.Close()

	kanjiRepo := database.NewKanjiRepository(db)
	resultRepo := database.NewSessionResultRepository(db)

	if cfg.Study.SeedN5 {
		if _, err := database.SeedN5(ctx, kanjiRepo, log); err != nil {
			return err
		}
	}
	if cfg.Study.ImportPath != "" {
		importCfg := excel.DefaultImportConfig()
		importCfg.FilePath = cfg.Study.ImportPath
		res, err := excel.ImportKanji(ctx, importCfg, kanjiRepo)
		if err != nil {
			return err
		}
		log.Info("kanji imported",
			"path", cfg.Study.ImportPath,
			"processed", res.TotalProcessed,
			"created", res.Created,
			"updated", res.Updated,
			"errors", len(res.Errors))
		for _, e := range res.Errors {
			log.Warn("import row skipped", "reason", e)
		}
	}

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return err
	}
	api.Debug = cfg.Telegram.Debug
	log.Info("authorized on telegram", "account", api.Self.UserName)

	b := bot.New(api, kanjiRepo, resultRepo, bot.Config{
		LessonSize: cfg.Study.LessonSize,
		AdminIDs:   cfg.Telegram.AdminIDs,
	}, log)

	sched := scheduler.New(scheduler.Config{
		Interval:  cfg.Reminder.Interval,
		StartHour: cfg.Reminder.StartHour,
		EndHour:   cfg.Reminder.EndHour,
	}, kanjiRepo, b, log)
	if err := sched.Start(ctx); err != nil {
		return err
	}
	defer sched.Stop()

	updates := api.GetUpdatesChan(b.UpdateConfig())
	go func() {
		<-ctx.Done()
		api.StopReceivingUpdates()
	}()

	log.Info("bot started, press Ctrl+C to stop")
	if err := b.Run(ctx, updates); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("bot stopped")
	return nil
}
