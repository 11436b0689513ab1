package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"storyline/internal/config"
	"storyline/internal/domain"
	"storyline/internal/engine"
	"storyline/internal/events"
	"storyline/internal/input"
	"storyline/internal/resolver"
	"storyline/internal/shortcut"
	"storyline/internal/template"
)

var rootCmd = &cobra.Command{
	Use:   "sl",
	Short: "Storyline CLI",
	Long: `Storyline bulk-creates Shortcut objectives, epics, and stories from structured input files.
Core ideas:
- Input: one YAML manifest mixing all three kinds, or a CSV/XLSX per kind.
- Order: objectives are created first, then epics, then stories, so a later
  resource can reference an earlier one by name within the same file.
- References: objective/epic fields take either a name from the same file or
  a numeric ID of a pre-existing resource (passed through as-is).
- Failures: one bad resource never stops the run; it is reported and the
  run continues, ending with a summary.
- Dry run: 'sl create --dry-run' validates names and structure without
  creating anything.`,
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("STORYLINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv("token", "SHORTCUT_API_TOKEN", "STORYLINE_TOKEN")
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().String("token", "", "Shortcut API token (env: SHORTCUT_API_TOKEN)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	_ = viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func registerCommands() {
	rootCmd.AddCommand(createCmd())
}

func createCmd() *cobra.Command {
	var filePath, resourceType, templatePath, output string
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create resources from an input file (.yaml, .csv, .xlsx)",
		Long: `Create Shortcut resources from an input file.
YAML files may contain objectives, epics, and stories in a single file.
CSV files require --type; XLSX sheets are matched by name unless --type is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(viper.GetBool("verbose"))

			var kind domain.Kind
			if resourceType != "" {
				k, ok := domain.ParseKind(resourceType)
				if !ok {
					return fmt.Errorf("invalid --type %q: use objective, epic, or story", resourceType)
				}
				kind = k
			}
			jsonOut, err := jsonOutput(output)
			if err != nil {
				return err
			}

			manifest, err := input.ParseFile(filePath, kind)
			if err != nil {
				return err
			}
			if manifest.Total() == 0 {
				fmt.Fprintln(os.Stderr, "No items found in the input file.")
				return nil
			}

			cfg, err := config.Load(viper.GetString("token"))
			if err != nil {
				return err
			}
			client := shortcut.New(cfg.APIToken)
			client.Log = logger

			var tmpl *template.Template
			if templatePath != "" {
				if tmpl, err = template.Load(templatePath); err != nil {
					return err
				}
			}

			runID := uuid.NewString()
			var emitter events.Emitter
			if jsonOut {
				emitter = events.NewJSON(os.Stdout, runID)
			} else {
				emitter = events.NewText(os.Stdout)
				fmt.Printf("Parsed  %d objective(s)  %d epic(s)  %d story/stories\n",
					len(manifest.Objectives), len(manifest.Epics), len(manifest.Stories))
				fmt.Fprint(os.Stderr, "Fetching workspace data (members, groups, workflows)…")
			}

			ctx := cmd.Context()
			res, err := resolver.New(ctx, client)
			if err != nil {
				if !jsonOut {
					fmt.Fprintln(os.Stderr)
				}
				return err
			}
			if !jsonOut {
				fmt.Fprintln(os.Stderr, "  done")
			}

			e := engine.New(client, res, emitter)
			e.Template = tmpl
			e.Log = logger
			e.RunID = runID

			if dryRun {
				if report := e.DryRun(manifest); !report.Valid() {
					os.Exit(1)
				}
				return nil
			}
			if summary := e.Run(ctx, manifest); summary.ErrorCount() > 0 {
				os.Exit(1)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&filePath, "file", "f", "", "input file (.yaml/.yml, .csv, or .xlsx)")
	cmd.Flags().StringVar(&resourceType, "type", "", "resource type for CSV/XLSX files (objective, epic, story)")
	cmd.Flags().StringVar(&templatePath, "template", "", "markdown template applied to every epic without its own template")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate names and structure without creating resources")
	cmd.Flags().StringVar(&output, "output", "text", "output format (text, json)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func jsonOutput(format string) (bool, error) {
	switch format {
	case "text":
		return false, nil
	case "json":
		return true, nil
	}
	return false, fmt.Errorf("invalid --output %q: use text or json", format)
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
