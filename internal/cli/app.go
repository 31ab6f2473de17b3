package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/volt/internal/config"
	"github.com/dmitrijs2005/volt/internal/dialogue"
	"github.com/dmitrijs2005/volt/internal/logging"
	"github.com/dmitrijs2005/volt/internal/minigame"
	"github.com/dmitrijs2005/volt/internal/reports"
	"github.com/dmitrijs2005/volt/internal/session"
	"github.com/dmitrijs2005/volt/internal/users"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	logFile io.Closer
	session *session.Controller
}

// NewApp wires the console to the process terminal.
func NewApp(c *config.Config) (*App, error) {
	return newApp(context.Background(), c, os.Stdin, os.Stdout)
}

func newApp(ctx context.Context, c *config.Config, in io.Reader, out io.Writer) (*App, error) {
	log, logFile, err := logging.Open(c.LogPath(), c.LogLevel)
	if err != nil {
		return nil, err
	}

	app, err := wire(ctx, c, log, in, out)
	if err != nil {
		_ = logFile.Close()
		return nil, err
	}
	app.logFile = logFile
	return app, nil
}

func wire(ctx context.Context, c *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	repo, err := users.NewFileRepository(ctx, c.UsersPath(), c.LockTimeout, log)
	if err != nil {
		return nil, fmt.Errorf("open credential store: %w", err)
	}
	reportLog, err := reports.NewFileLog(c.ReportsPath(), log)
	if err != nil {
		return nil, fmt.Errorf("open report log: %w", err)
	}

	gemini := dialogue.GeminiConfig{
		Endpoint:          c.Dialogue.Endpoint,
		APIKey:            c.Dialogue.APIKey,
		Model:             c.Dialogue.Model,
		SystemInstruction: c.Dialogue.SystemInstruction,
		Temperature:       c.Dialogue.Temperature,
		MaxOutputTokens:   c.Dialogue.MaxOutputTokens,
		Timeout:           c.Dialogue.Timeout,
	}
	if strings.TrimSpace(gemini.APIKey) == "" {
		log.Warn(ctx, "GEMINI_API_KEY is not set, the assistant is disabled")
	}

	term := NewTerminal(in, out, c.WrapWidth)
	ctrl, err := session.New(session.Deps{
		Users:     users.NewService(repo, log),
		Reports:   reportLog,
		NewEngine: func() dialogue.Engine { return dialogue.New(gemini, log) },
		Timer:     minigame.NewReactionTimer(term, c.Minigame.MaxStartDelay),
		Console:   term,
		Log:       log,
	})
	if err != nil {
		return nil, err
	}

	n, err := repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "stores ready", "users", n, "users_file", c.UsersPath(), "reports_file", c.ReportsPath())

	return &App{config: c, log: log, session: ctrl}, nil
}

// Run blocks until the session ends and closes the log file.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		if a.logFile != nil {
			_ = a.logFile.Close()
		}
	}()

	a.log.Info(ctx, "console started")
	if err := a.session.Run(ctx); err != nil {
		return err
	}
	a.log.Info(ctx, "console stopped")
	return nil
}
