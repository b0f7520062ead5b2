// Command prodectl is the bracket resolution CLI.
//
// Usage:
//
//	prodectl standings --file tournaments/copa-2024.json
//	prodectl standings --file tournaments/copa-2024.json --group A
//	prodectl bracket --file tournaments/copa-2024.json --guesses guesses.json
//	prodectl validate --file tournaments/copa-2024.json
//	prodectl validate --dir tournaments
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/prodeapp/engine/internal/bracket"
	"github.com/prodeapp/engine/internal/render"
	"github.com/prodeapp/engine/internal/tournament"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "prodectl",
		Short: "Tournament bracket resolution CLI",
	}

	root.AddCommand(standingsCmd())
	root.AddCommand(bracketCmd())
	root.AddCommand(validateCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// standings command
// --------------------------------------------------------------------------

func standingsCmd() *cobra.Command {
	var file, guessesFile, group string
	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Compute group standings from a tournament definition",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := resolveFile(file, guessesFile)
			if err != nil {
				return err
			}
			if group != "" {
				for _, g := range res.Groups {
					if string(g.Letter) == group {
						res.Groups = []tournament.GroupTable{g}
						fmt.Print(render.Standings(res))
						return nil
					}
				}
				return fmt.Errorf("no group %q in tournament %s", group, res.TournamentID)
			}
			fmt.Print(render.Standings(res))
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Tournament definition JSON file (required)")
	cmd.Flags().StringVar(&guessesFile, "guesses", "", "JSON file with guessed outcomes")
	cmd.Flags().StringVar(&group, "group", "", "Show a single group letter")
	cmd.MarkFlagRequired("file")
	return cmd
}

// --------------------------------------------------------------------------
// bracket command
// --------------------------------------------------------------------------

func bracketCmd() *cobra.Command {
	var file, guessesFile string
	cmd := &cobra.Command{
		Use:   "bracket",
		Short: "Compute playoff slot assignments from a tournament definition",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := resolveFile(file, guessesFile)
			if err != nil {
				return err
			}
			fmt.Print(render.Bracket(res))
			logger.Info("Bracket resolved", "summary", res.Summary())
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Tournament definition JSON file (required)")
	cmd.Flags().StringVar(&guessesFile, "guesses", "", "JSON file with guessed outcomes")
	cmd.MarkFlagRequired("file")
	return cmd
}

// --------------------------------------------------------------------------
// validate command
// --------------------------------------------------------------------------

func validateCmd() *cobra.Command {
	var file, dir string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate tournament definition files",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case file != "":
				start := time.Now()
				def, err := tournament.Load(file)
				if err != nil {
					return err
				}
				logger.Info("Definition valid",
					"id", def.ID,
					"groups", len(def.Groups),
					"rounds", len(def.Rounds),
					"duration", time.Since(start).Round(time.Millisecond))
				return nil
			case dir != "":
				catalog, err := tournament.LoadDir(context.Background(), dir, logger)
				if err != nil {
					return err
				}
				logger.Info("Catalog valid", "tournaments", catalog.Len())
				return nil
			default:
				return fmt.Errorf("either --file or --dir is required")
			}
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Single definition file to validate")
	cmd.Flags().StringVar(&dir, "dir", "", "Directory of definition files to validate")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// resolveFile loads a definition plus optional guesses and resolves it.
func resolveFile(file, guessesFile string) (*tournament.Resolution, error) {
	def, err := tournament.Load(file)
	if err != nil {
		return nil, err
	}

	var guesses []bracket.GameOutcome
	if guessesFile != "" {
		data, err := os.ReadFile(guessesFile)
		if err != nil {
			return nil, fmt.Errorf("read guesses: %w", err)
		}
		if err := json.Unmarshal(data, &guesses); err != nil {
			return nil, fmt.Errorf("parse guesses: %w", err)
		}
	}

	return tournament.Resolve(def, guesses), nil
}
