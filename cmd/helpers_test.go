package cmd

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Rostislav62/alppass/internal/session"
	"github.com/Rostislav62/alppass/internal/testutil"
)

// setupEnv points the command layer at a fake backend and a throwaway
// session file, and logs a test user in
func setupEnv(t *testing.T) *testutil.Backend {
	t.Helper()

	backend := testutil.NewBackend(t)

	sessPath := filepath.Join(t.TempDir(), "session.json")
	viper.Set("api.base_url", backend.Server.URL)
	viper.Set("api.timeout_seconds", 5)
	viper.Set("session.path", sessPath)
	t.Cleanup(viper.Reset)

	store := session.NewStore(sessPath)
	err := store.Save(&session.Session{
		UserID: 3,
		Email:  "climber@example.com",
		Fam:    "Иванов",
		Name:   "Пётр",
		Phone:  "+7 900 000 00 00",
		Theme:  "light",
	})
	if err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}

	return backend
}

// setFlags assigns command flags as if they came from the command line and
// restores the defaults when the test ends
func setFlags(t *testing.T, cmd *cobra.Command, values map[string]string) {
	t.Helper()

	for name, value := range values {
		if err := cmd.Flags().Set(name, value); err != nil {
			t.Fatalf("failed to set --%s: %v", name, err)
		}
	}
	t.Cleanup(func() {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if f.Changed {
				f.Value.Set(f.DefValue)
				f.Changed = false
			}
		})
	})
}
