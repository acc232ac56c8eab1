package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/manifest/internal/backup"
	"github.com/julianstephens/manifest/internal/keyring"
	"github.com/julianstephens/manifest/internal/logger"
	"github.com/julianstephens/manifest/internal/migration"
	"github.com/julianstephens/manifest/internal/storage"
	"github.com/julianstephens/manifest/internal/storage/postgres"
)

// hints maps sentinel errors to the next step a user should take.
var hints = []struct {
	err  error
	hint string
}{
	{storage.ErrNotInitialized, "Run 'manifest init' to create the database."},
	{migration.ErrSchemaTooNew, "The database was written by a newer manifest; upgrade this binary."},
	{postgres.ErrEmbeddedCredentials, "Drop the password from --config and use PGPASSWORD or ~/.pgpass."},
	{keyring.ErrKeyringUnavailable, "Set GEMINI_API_KEY in the environment instead."},
	{backup.ErrUnsupported, "Use pg_dump to back up PostgreSQL storage."},
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Hint returns a suggested fix for known errors, or "".
func Hint(err error) string {
	for _, h := range hints {
		if stderrors.Is(err, h.err) {
			return h.hint
		}
	}
	return ""
}

// Fatal logs an error, prints it with any hint and exits with code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		if hint := Hint(err); hint != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}
}
