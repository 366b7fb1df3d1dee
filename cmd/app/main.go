package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/quicktask/internal"
	"github.com/starford/quicktask/internal/duedate"
	"github.com/starford/quicktask/internal/taskservice"
	pkgconfig "github.com/starford/quicktask/pkg/config"
)

var version = "dev"

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadIfExists(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func openApp(cmd *cli.Command) (*internal.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return internal.Open(internal.WithConfig(cfg))
}

func listVaults(ctx context.Context, cmd *cli.Command) error {
	app, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	vaults, err := app.Service.ListVaults(ctx)
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		return writeJSON(cmd.Root().Writer, vaults)
	}
	if len(vaults) == 0 {
		fmt.Fprintln(cmd.Root().Writer, "no vaults registered")
		return nil
	}
	tw := tabwriter.NewWriter(cmd.Root().Writer, 0, 4, 2, ' ', 0)
	for _, v := range vaults {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", v.Name, v.ID, v.Path)
	}
	return tw.Flush()
}

func addTask(ctx context.Context, cmd *cli.Command) error {
	content := strings.Join(cmd.Args().Slice(), " ")
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("task description is required")
	}

	app, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	due := cmd.String("due")
	if phrase := cmd.String("when"); phrase != "" {
		if due != "" {
			return fmt.Errorf("use either --due or --when, not both")
		}
		if due, err = duedate.Parse(phrase, app.Service.Now()); err != nil {
			return err
		}
	}

	v, err := app.Service.ResolveVault(ctx, cmd.String("vault"))
	if err != nil {
		return err
	}
	res, err := app.Service.AddTask(ctx, taskservice.AddTaskRequest{
		VaultPath: v.Path,
		Content:   content,
		DueDate:   due,
		ParseDate: cmd.Bool("parse-date"),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.Root().Writer, "%s\n  %s\n", res.Path, res.Line)
	return nil
}

func recentTasks(ctx context.Context, cmd *cli.Command) error {
	app, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	vaultPath := ""
	if ref := cmd.String("vault"); ref != "" {
		v, err := app.Service.ResolveVault(ctx, ref)
		if err != nil {
			return err
		}
		vaultPath = v.Path
	}
	if !app.Config.History.Enabled {
		fmt.Fprintln(cmd.Root().ErrWriter, "history is disabled; set history.enabled in the config")
	}

	tasks, err := app.Service.RecentTasks(ctx, vaultPath, int(cmd.Int("limit")))
	if err != nil {
		return err
	}
	if cmd.Bool("json") {
		return writeJSON(cmd.Root().Writer, tasks)
	}
	tw := tabwriter.NewWriter(cmd.Root().Writer, 0, 4, 2, ' ', 0)
	for _, t := range tasks {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", t.CreatedAt.Local().Format(time.DateTime), t.Line, t.NotePath)
	}
	return tw.Flush()
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func serveMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.ServeMCP(ctx, internal.WithConfig(cfg), internal.WithVersion(version))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	vaultFlag := &cli.StringFlag{
		Name:    "vault",
		Aliases: []string{"v"},
		Usage:   "Vault id, name or path",
		Sources: cli.EnvVars("QUICKTASK_VAULT"),
	}
	jsonFlag := &cli.BoolFlag{
		Name:  "json",
		Usage: "Print JSON instead of a table",
	}

	cmd := &cli.Command{
		Name:      "quicktask",
		Usage:     "Append tasks to today's Obsidian daily note",
		Version:   version,
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "vaults",
				Usage:  "List registered Obsidian vaults",
				Flags:  []cli.Flag{jsonFlag},
				Action: listVaults,
			},
			{
				Name:      "add",
				Usage:     "Add a task to today's daily note",
				ArgsUsage: "<task description>",
				Flags: []cli.Flag{
					vaultFlag,
					&cli.StringFlag{
						Name:    "due",
						Aliases: []string{"d"},
						Usage:   "Due date appended verbatim as ⏳ <due>",
					},
					&cli.StringFlag{
						Name:    "when",
						Aliases: []string{"w"},
						Usage:   "Due date in words (tom, next friday, in 3 days)",
					},
					&cli.BoolFlag{
						Name:    "parse-date",
						Aliases: []string{"p"},
						Usage:   "Take the due date from a phrase in the description (\"call Bob tom\")",
					},
				},
				Action: addTask,
			},
			{
				Name:  "recent",
				Usage: "List recently added tasks",
				Flags: []cli.Flag{
					vaultFlag,
					jsonFlag,
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of tasks",
						Value:   20,
					},
				},
				Action: recentTasks,
			},
			{
				Name:   "serve",
				Usage:  "Run the HTTP API with live events",
				Action: serve,
			},
			{
				Name:   "mcp",
				Usage:  "Run the MCP server on stdin/stdout",
				Action: serveMCP,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
