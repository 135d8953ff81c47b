package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"omnivox-backend/internal/components/configutil"
	"omnivox-backend/internal/components/telemetry"
	"omnivox-backend/internal/scrapers/omnivox"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/joho/godotenv"
)

func NewTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

func readOptions() (omnivox.Options, error) {
	opts, err := configutil.ReadConfig(configPath, omnivox.DefaultOptions())
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("config not found, using defaults", "path", configPath)
		return opts, nil
	}
	return opts, err
}

func credentials() (identifier, secret string, err error) {
	err = godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", "", fmt.Errorf("load .env: %w", err)
	}
	identifier = os.Getenv("OMNIVOX_ID")
	secret = os.Getenv("OMNIVOX_PASSWORD")
	if identifier == "" || secret == "" {
		return "", "", fmt.Errorf("OMNIVOX_ID and OMNIVOX_PASSWORD must be set")
	}
	return identifier, secret, nil
}

func login(ctx context.Context) (*omnivox.Session, error) {
	opts, err := readOptions()
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	identifier, secret, err := credentials()
	if err != nil {
		return nil, err
	}

	portal, err := omnivox.NewPortal(opts, telemetry.SlogAPI{})
	if err != nil {
		return nil, err
	}
	session, err := portal.Login(ctx, identifier, secret)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("login rejected for %s, check your credentials", identifier)
	}
	return session, nil
}

func openSchedulePage(ctx context.Context) (*omnivox.SchedulePage, error) {
	session, err := login(ctx)
	if err != nil {
		return nil, err
	}
	return session.SchedulePage()
}

func printSchedule(schedule omnivox.Schedule) {
	t := NewTable()
	t.SetTitle(schedule.Semester.Name)
	t.AppendHeader(table.Row{"Number", "Section", "Title", "Teacher"})
	for _, c := range schedule.Courses {
		t.AppendRow(table.Row{c.Number, c.Section, c.Title, c.Teacher})
	}
	t.AppendFooter(table.Row{"", "", "", fmt.Sprintf("%d courses", len(schedule.Courses))})
	t.Render()
}
