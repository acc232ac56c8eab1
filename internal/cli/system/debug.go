package system

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/manifest/internal/cli"
	"github.com/julianstephens/manifest/internal/storage"
)

type DebugCmd struct {
	DBPath        DebugDBPathCmd       `cmd:"" help:"Show database path."`
	DumpState     DebugDumpStateCmd    `cmd:"" help:"Dump profile, goals, rituals and journal as JSON."`
	DumpSettings  DebugDumpSettingsCmd `cmd:"" help:"Dump settings as JSON."`
	DumpReminders DebugDumpReminderCmd `cmd:"" help:"Dump scheduled reminders as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(map[string]string{"path": ctx.Store.GetConfigPath()})
}

type DebugDumpStateCmd struct{}

func (cmd *DebugDumpStateCmd) Run(ctx *cli.Context) error {
	state, err := ctx.Store.LoadState(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}
	return printJSON(state)
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings(ctx.Context())
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no settings stored; run 'manifest init'")
	}
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return printJSON(settings)
}

type DebugDumpReminderCmd struct{}

func (cmd *DebugDumpReminderCmd) Run(ctx *cli.Context) error {
	reminders, err := ctx.Store.GetReminders(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to get reminders: %w", err)
	}
	return printJSON(reminders)
}

func printJSON(v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}
