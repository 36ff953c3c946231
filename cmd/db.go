package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faizan/stadium/config"
	"github.com/faizan/stadium/repository"
	"github.com/faizan/stadium/spotifyimport"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB(cmd)
			if err != nil {
				return err
			}
			defer config.Close(db)
			fmt.Fprintln(cmd.OutOrStdout(), "database migrated")
			return nil
		},
	}
}

func newPopulateCmd(a *app) *cobra.Command {
	var reset bool
	cmd := &cobra.Command{
		Use:   "populate",
		Short: "Load the demonstration catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB(cmd)
			if err != nil {
				return err
			}
			defer config.Close(db)

			store := repository.NewStore(db)
			if reset {
				if err := repository.Reset(cmd.Context(), store); err != nil {
					return err
				}
			}
			if err := repository.Populate(cmd.Context(), store); err != nil {
				if errors.Is(err, repository.ErrConflict) {
					return fmt.Errorf("%w (use --reset to replace the catalog)", err)
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "catalog populated")
			return nil
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "delete every row before loading")
	return cmd
}

func newImportArtistCmd(a *app) *cobra.Command {
	var uniqueName string
	cmd := &cobra.Command{
		Use:   "import-artist <query>",
		Short: "Import an artist with its albums and tracks from Spotify",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := spotifyimport.NewSpotifyCatalog(cmd.Context(), a.cfg.Spotify)
			if err != nil {
				return err
			}
			db, err := a.openDB(cmd)
			if err != nil {
				return err
			}
			defer config.Close(db)

			importer := spotifyimport.NewImporter(catalog, repository.NewStore(db), a.logger)
			result, err := importer.ImportArtist(cmd.Context(), args[0], uniqueName)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %s: %d albums, %d tracks, %d skipped\n",
				result.Artist, result.Albums, result.Tracks, result.Skipped)
			return nil
		},
	}
	cmd.Flags().StringVar(&uniqueName, "unique-name", "", "unique name of the imported artist (default: the catalog name)")
	return cmd
}
