package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meridian-systems/accountpulse/internal/model"
	"github.com/meridian-systems/accountpulse/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <profiles.json>...",
	Short: "Store profiles in the local database",
	Long: `Import reads JSON profile files (a single profile or an array) and
upserts them into the local database, where the other commands can
reference them by customer id.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := store.Open(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer db.Close()

	imported := 0
	for _, path := range args {
		profiles, err := readProfilesFile(path)
		if err != nil {
			// Retry as a single profile object.
			p, perr := readProfileFile(path)
			if perr != nil {
				return err
			}
			profiles = []*model.CustomerProfile{p}
		}

		for _, p := range profiles {
			if p.ID == "" {
				return fmt.Errorf("%s: profile missing id", path)
			}
			if err := db.UpsertCustomer(p); err != nil {
				return fmt.Errorf("storing %s: %w", p.ID, err)
			}
			imported++
			if flagVerbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "imported %s\n", p.ID)
			}
		}
	}

	fmt.Printf("Imported %d customer(s) into %s\n", imported, cfg.DBPath())
	return nil
}
