// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// setupCommand handles local environment initialization
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize local environment",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Create the config file and apply the legacy schema",
				Flags:  []cli.Flag{configFlag()},
				Action: r.Setup,
			},
		},
	}
}

// migrateCommand handles migration operations
func migrateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Migration operations against the document store",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Migrate the legacy database into the document store",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Report what would be migrated without writing",
					},
					&cli.StringFlag{
						Name:  "manifest",
						Usage: "Path to write the per-run insert manifest",
					},
					&cli.StringFlag{
						Name:  "report",
						Usage: "Write the run report to this file (.csv, .md or .txt)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output the full run report as JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print JSON output",
						Value: true,
					},
				},
				Action: r.Run,
			},
			{
				Name:  "validate",
				Usage: "Verify document counts and referential integrity after a run",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output the validation report as JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print JSON output",
						Value: true,
					},
				},
				Action: r.Validate,
			},
			{
				Name:  "rollback",
				Usage: "Delete migrated documents from the document store",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringSliceFlag{
						Name:  "tables",
						Usage: "Tables to wipe (defaults to all)",
					},
					&cli.StringFlag{
						Name:  "manifest",
						Usage: "Roll back only the documents recorded in this run manifest",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output rollback results as JSON",
					},
				},
				Action: r.Rollback,
			},
		},
	}
}

// inspectCommand summarizes both stores
func inspectCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "Show row counts for the legacy database and the document store",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output counts as JSON",
			},
		},
		Action: r.Inspect,
	}
}
