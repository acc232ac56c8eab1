package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/manifest/internal/cli"
	"github.com/julianstephens/manifest/internal/keyring"
	"github.com/julianstephens/manifest/internal/notifier"
	"github.com/julianstephens/manifest/internal/validation"
)

type DoctorCmd struct {
	Fix bool `help:"Move rituals whose goal no longer exists to the general list."`
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	report := func(name string, err error, warnOnly bool) {
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", name)
		case warnOnly:
			fmt.Printf("⚠ %s: WARNING\n   %v\n", name, err)
		default:
			fmt.Printf("❌ %s: FAIL\n   Error: %v\n", name, err)
			hasError = true
		}
	}

	dbErr := ctx.Store.Load()
	report("Database reachable", dbErr, false)
	if dbErr == nil {
		settings, err := ctx.Store.GetSettings(ctx.Context())
		if err == nil {
			err = validation.ValidateSettings(settings)
		}
		report("Settings", err, false)
		report("Data validation", cmd.checkState(ctx), false)
	} else {
		fmt.Println("⊘ Settings: SKIPPED (database not reachable)")
		fmt.Println("⊘ Data validation: SKIPPED (database not reachable)")
	}

	report("API key", checkAPIKey(), true)

	_, err := notifier.TrayAppConfigDir()
	report("Tray config dir", err, true)

	fmt.Println()
	if hasError {
		return errors.New("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}

func (cmd *DoctorCmd) checkState(ctx *cli.Context) error {
	state, err := ctx.Store.LoadState(ctx.Context())
	if err != nil {
		return err
	}
	result := validation.New().ValidateState(state)
	if !result.HasIssues() {
		return nil
	}
	if cmd.Fix {
		if n := validation.AutoFixOrphanRituals(result, &state); n > 0 {
			if err := ctx.Store.SaveState(ctx.Context(), state); err != nil {
				return fmt.Errorf("failed to save fixes: %w", err)
			}
			fmt.Printf("  Moved %d orphaned ritual(s) to the general list\n", n)
			result = validation.New().ValidateState(state)
			if !result.HasIssues() {
				return nil
			}
		}
	}
	return errors.New(result.FormatReport())
}

func checkAPIKey() error {
	key, err := keyring.ResolveAPIKey()
	if err != nil {
		return err
	}
	if key == "" {
		return errors.New("no API key configured; affirmations use offline templates and images are disabled")
	}
	return nil
}
