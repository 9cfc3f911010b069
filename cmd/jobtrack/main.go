package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"jobtrack/internal/bootstrap"
	"jobtrack/internal/modules/tracker/dto"
	"jobtrack/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "jobtrack",
		Short:         "Track job applications and chart the search",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			_ = godotenv.Load()
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./jobtrack.yaml or $JOBTRACK_CONFIG)")

	root.AddCommand(newTUICmd(&configPath))
	root.AddCommand(newAddCmd(&configPath))
	root.AddCommand(newListCmd(&configPath))
	root.AddCommand(newStatusCmd(&configPath))
	root.AddCommand(newRespondCmd(&configPath))
	root.AddCommand(newDeleteCmd(&configPath))
	root.AddCommand(newImportCmd(&configPath))
	root.AddCommand(newExportCmd(&configPath))
	root.AddCommand(newSeedCmd(&configPath))
	root.AddCommand(newStatsCmd(&configPath))
	return root
}

// withApp loads config, wires the app and closes it once fn returns.
func withApp(ctx context.Context, configPath string, fn func(app *bootstrap.App) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(app)
}

func newTUICmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), *configPath, bootstrap.RunTUI)
		},
	}
}

func newAddCmd(configPath *string) *cobra.Command {
	var company, role, date, status string
	add := &cobra.Command{
		Use:   "add --company <name> --role <title>",
		Short: "Record a new application",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), *configPath, func(app *bootstrap.App) error {
				out, err := app.TrackerCLI.Add(cmd.Context(), company, role, date, status)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added #%d %s / %s (%s, %s)\n", out.ID, out.Company, out.Role, out.DateApplied, out.Status)
				return nil
			})
		},
	}
	add.Flags().StringVar(&company, "company", "", "company name")
	add.Flags().StringVar(&role, "role", "", "role title")
	add.Flags().StringVar(&date, "date", "", "date applied, YYYY-MM-DD (default today)")
	add.Flags().StringVar(&status, "status", "", "status or alias (default Applied)")
	_ = add.MarkFlagRequired("company")
	_ = add.MarkFlagRequired("role")
	return add
}

func bindFilterFlags(cmd *cobra.Command, f *dto.ListInput) {
	cmd.Flags().StringVar(&f.Status, "status", "", "only this status")
	cmd.Flags().StringVar(&f.DateStart, "from", "", "applied on or after YYYY-MM-DD")
	cmd.Flags().StringVar(&f.DateEnd, "to", "", "applied on or before YYYY-MM-DD")
	cmd.Flags().StringVar(&f.CompanySubstr, "company", "", "company contains")
	cmd.Flags().StringVar(&f.RoleSubstr, "role", "", "role contains")
	cmd.Flags().StringVar(&f.ImportBatch, "batch", "", "import batch id")
}

func newListCmd(configPath *string) *cobra.Command {
	var filter dto.ListInput
	var format string
	list := &cobra.Command{
		Use:   "list",
		Short: "List applications",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), *configPath, func(app *bootstrap.App) error {
				apps, err := app.TrackerCLI.List(cmd.Context(), filter)
				if err != nil {
					return err
				}
				if len(apps) == 0 && format == formatTable {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no applications")
					return nil
				}
				return render(cmd.OutOrStdout(), format, apps, func(t *table) {
					t.header("ID", "COMPANY", "ROLE", "APPLIED", "STATUS", "RESPONSE")
					for _, a := range apps {
						t.row(a.ID, a.Company, a.Role, a.DateApplied, a.Status, a.ResponseDate)
					}
				})
			})
		},
	}
	bindFilterFlags(list, &filter)
	list.Flags().IntVar(&filter.Limit, "limit", 0, "maximum rows (default list_limit, -1 for all)")
	bindFormatFlag(list, &format)
	return list
}

func newStatusCmd(configPath *string) *cobra.Command {
	var id int64
	var status string
	cmd := &cobra.Command{
		Use:   "status --id <id> --set <status>",
		Short: "Change an application's status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if id <= 0 {
				return fmt.Errorf("--id is required")
			}
			return withApp(cmd.Context(), *configPath, func(app *bootstrap.App) error {
				if err := app.TrackerCLI.UpdateStatus(cmd.Context(), id, status); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated #%d\n", id)
				return nil
			})
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "application id")
	cmd.Flags().StringVar(&status, "set", "", "new status or alias")
	_ = cmd.MarkFlagRequired("set")
	return cmd
}

func newRespondCmd(configPath *string) *cobra.Command {
	var id int64
	var date string
	cmd := &cobra.Command{
		Use:   "respond --id <id>",
		Short: "Record the date a company first responded",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if id <= 0 {
				return fmt.Errorf("--id is required")
			}
			return withApp(cmd.Context(), *configPath, func(app *bootstrap.App) error {
				if err := app.TrackerCLI.RecordResponse(cmd.Context(), id, date); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "response recorded for #%d\n", id)
				return nil
			})
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "application id")
	cmd.Flags().StringVar(&date, "date", "", "response date, YYYY-MM-DD (default today)")
	return cmd
}

func newDeleteCmd(configPath *string) *cobra.Command {
	var id int64
	var all, yes bool
	var batch string
	cmd := &cobra.Command{
		Use:   "delete --id <id> | --batch <batch> | --all --yes",
		Short: "Delete one application, an import batch, or everything",
		RunE: func(cmd *cobra.Command, _ []string) error {
			chosen := 0
			for _, set := range []bool{id > 0, all, batch != ""} {
				if set {
					chosen++
				}
			}
			if chosen != 1 {
				return fmt.Errorf("exactly one of --id, --batch or --all is required")
			}
			if all && !yes {
				return fmt.Errorf("--all deletes every application; pass --yes to confirm")
			}
			return withApp(cmd.Context(), *configPath, func(app *bootstrap.App) error {
				out := cmd.OutOrStdout()
				switch {
				case id > 0:
					if err := app.TrackerCLI.Delete(cmd.Context(), id); err != nil {
						return err
					}
					_, _ = fmt.Fprintf(out, "deleted #%d\n", id)
				case batch != "":
					res, err := app.TrackerCLI.DeleteBatch(cmd.Context(), batch)
					if err != nil {
						return err
					}
					_, _ = fmt.Fprintf(out, "deleted %d applications from batch %s\n", res.Deleted, batch)
				default:
					res, err := app.TrackerCLI.DeleteAll(cmd.Context())
					if err != nil {
						return err
					}
					_, _ = fmt.Fprintf(out, "deleted %d applications\n", res.Deleted)
				}
				return nil
			})
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "application id")
	cmd.Flags().StringVar(&batch, "batch", "", "import batch id to undo")
	cmd.Flags().BoolVar(&all, "all", false, "delete every application")
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm --all")
	return cmd
}

func newImportCmd(configPath *string) *cobra.Command {
	var mapping map[string]string
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import applications from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), *configPath, func(app *bootstrap.App) error {
				var r io.Reader = cmd.InOrStdin()
				if args[0] != "-" {
					f, err := os.Open(args[0])
					if err != nil {
						return fmt.Errorf("open import file: %w", err)
					}
					defer f.Close()
					r = f
				}
				res, err := app.TrackerCLI.Import(cmd.Context(), r, mapping)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, "imported %d rows (skipped %d) batch=%s delimiter=%q encoding=%s\n",
					res.Inserted, res.Skipped, res.BatchID, res.Delimiter, res.Encoding)
				if res.InvalidDates > 0 {
					_, _ = fmt.Fprintf(out, "  %d rows had unparseable dates\n", res.InvalidDates)
				}
				if len(res.UnknownStatuses) > 0 {
					_, _ = fmt.Fprintf(out, "  unknown statuses: %s\n", strings.Join(res.UnknownStatuses, ", "))
				}
				_, _ = fmt.Fprintf(out, "undo with: jobtrack delete --batch %s\n", res.BatchID)
				return nil
			})
		},
	}
	cmd.Flags().StringToStringVar(&mapping, "map", nil, "target=Header column mapping (company, role, date_applied, status)")
	return cmd
}

func newExportCmd(configPath *string) *cobra.Command {
	var filter dto.ListInput
	cmd := &cobra.Command{
		Use:   "export <file.csv|->",
		Short: "Export applications as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), *configPath, func(app *bootstrap.App) error {
				w := cmd.OutOrStdout()
				if args[0] != "-" {
					f, err := os.Create(args[0])
					if err != nil {
						return fmt.Errorf("create export file: %w", err)
					}
					defer f.Close()
					w = f
				}
				n, err := app.TrackerCLI.Export(cmd.Context(), w, filter)
				if err != nil {
					return err
				}
				if args[0] != "-" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d applications to %s\n", n, args[0])
				}
				return nil
			})
		},
	}
	bindFilterFlags(cmd, &filter)
	return cmd
}

func newSeedCmd(configPath *string) *cobra.Command {
	var rows int
	var seed int64
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert deterministic sample applications",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), *configPath, func(app *bootstrap.App) error {
				out, err := app.TrackerCLI.Seed(cmd.Context(), rows, seed)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "seeded %d applications batch=%s\n", out.Inserted, out.BatchID)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&rows, "rows", 48, "number of sample rows")
	cmd.Flags().Int64Var(&seed, "seed", 7, "random seed")
	return cmd
}
