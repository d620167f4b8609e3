package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"mindful-escapades/internal/app"
	"mindful-escapades/internal/config"
	"mindful-escapades/internal/models"
	"mindful-escapades/internal/presenter"
	"mindful-escapades/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// stdout занят игрой, логи идут в stderr
	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Encoding: "console", OutputPath: "stderr"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := app.NewStore(ctx, cfg.Session, log)
	if err != nil {
		log.Fatal("Failed to initialize session store", zap.Error(err))
	}
	defer closeStore()

	pipeline, err := app.NewPipeline(cfg, store, log)
	if err != nil {
		log.Fatal("Failed to build turn pipeline", zap.Error(err))
	}

	score, err := play(ctx, pipeline, presenter.NewConsole(os.Stdout), bufio.NewScanner(os.Stdin))
	if err != nil {
		log.Error("Game stopped", zap.Error(err))
	}
	presenter.NewConsole(os.Stdout).Goodbye(score)
}

// play крутит цикл ввода до "stop", концовки или конца ввода. "reset"
// начинает историю заново. Возвращает итоговый счет.
func play(ctx context.Context, pipeline *app.Pipeline, console *presenter.Console, input *bufio.Scanner) (int, error) {
	st, err := pipeline.Turns.StartSession(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = pipeline.Turns.EndSession(context.Background(), st.ID) }()

	score := st.Score
	console.Welcome(score)
	for {
		console.Prompt()
		if !input.Scan() {
			return score, input.Err()
		}
		line := strings.TrimSpace(input.Text())

		switch strings.ToLower(line) {
		case "stop":
			return score, nil
		case "reset":
			if _, err := pipeline.Turns.ResetSession(ctx, st.ID); err != nil {
				console.Error(err)
				continue
			}
			score = 0
			console.Reset()
			continue
		case "":
			continue
		}

		rendered, err := pipeline.Turns.PlayTurn(ctx, st.ID, models.TurnRequest{Utterance: line})
		if err != nil {
			if ctx.Err() != nil {
				return score, ctx.Err()
			}
			if errors.Is(err, models.ErrSessionTerminated) {
				return score, nil
			}
			console.Error(err)
			continue
		}
		score = rendered.Score
		if err := console.Turn(rendered); err != nil {
			return score, err
		}
		if rendered.Terminal {
			return score, nil
		}
	}
}
