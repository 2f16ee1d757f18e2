package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/gompdf/worksheet/internal/activity"
	"github.com/gompdf/worksheet/internal/capacity"
	"github.com/gompdf/worksheet/internal/config"
	"github.com/gompdf/worksheet/internal/errors"
	"github.com/gompdf/worksheet/internal/export"
	"github.com/gompdf/worksheet/internal/mcp"
	"github.com/gompdf/worksheet/internal/pagination"
	"github.com/gompdf/worksheet/internal/quran"
	"github.com/gompdf/worksheet/internal/render/pdf"
	"github.com/gompdf/worksheet/internal/render/preview"
	"github.com/gompdf/worksheet/internal/render/raster"
	"github.com/gompdf/worksheet/internal/res"
	"github.com/gompdf/worksheet/internal/storage"
	"github.com/gompdf/worksheet/internal/store"
	"github.com/gompdf/worksheet/internal/worksheet"
)

// appEnv carries what the commands need. db may be nil for help and version.
type appEnv struct {
	db   *sql.DB
	cfg  *config.Config
	repo quran.Repository
}

// newCLIApp creates the CLI application with all commands.
func newCLIApp(env *appEnv) *cli.App {
	app := &cli.App{
		Name:    "worksheet",
		Usage:   "Quran worksheet capacity, pagination and export",
		Version: Version,
		Commands: []*cli.Command{
			estimateCmd(env),
			paginateCmd(env),
			maxVersesCmd(),
			previewCmd(env),
			exportCmd(env),
			surahsCmd(env),
			importCmd(env),
			historyCmd(env),
			configCmd(),
			mcpCmd(env),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// worksheetFlags are shared by every command that builds a worksheet.
func worksheetFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Worksheet config file (YAML or JSON)"},
		&cli.IntFlag{Name: "surah", Aliases: []string{"s"}, Usage: "Surah number"},
		&cli.IntFlag{Name: "from", Usage: "First verse"},
		&cli.IntFlag{Name: "to", Usage: "Last verse"},
		&cli.StringFlag{Name: "activities", Aliases: []string{"a"}, Usage: "Comma-separated activities, e.g. tracing,mcq_meaning"},
		&cli.StringFlag{Name: "mode", Usage: "Pagination mode: single_activity_per_page|compact"},
		&cli.BoolFlag{Name: "no-answer-key", Usage: "Leave out the answer key page"},
		&cli.StringFlag{Name: "school", Usage: "School name"},
		&cli.StringFlag{Name: "class", Usage: "Class name"},
		&cli.StringFlag{Name: "logo", Usage: "Logo path, URL or data URL"},
		&cli.StringFlag{Name: "border", Usage: "Border style"},
		&cli.StringFlag{Name: "background", Usage: "Background style"},
		&cli.StringFlag{Name: "font", Usage: "Latin font: Comic Neue|Poppins"},
	}
}

// buildConfig reads the config file, if any, and applies the flags over it.
func buildConfig(c *cli.Context, repo quran.Repository) (worksheet.Config, error) {
	cfg := worksheet.Default()
	if path := c.String("config"); path != "" {
		loaded, err := worksheet.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if c.IsSet("surah") {
		s, err := repo.Surah(c.Int("surah"))
		if err != nil {
			return cfg, err
		}
		cfg = cfg.WithSurah(s)
	}
	if c.IsSet("from") || c.IsSet("to") {
		s, err := repo.Surah(cfg.SurahNumber)
		if err != nil {
			return cfg, err
		}
		from, to := cfg.AyahRange.From, cfg.AyahRange.To
		if c.IsSet("from") {
			from = c.Int("from")
		}
		if c.IsSet("to") {
			to = c.Int("to")
		}
		cfg = cfg.WithRange(from, to, s.Len())
	}
	if c.IsSet("activities") {
		acts, err := activity.ParseList(c.String("activities"))
		if err != nil {
			return cfg, errors.NewInvalidConfig("activities", err.Error())
		}
		cfg = cfg.WithActivities(acts...)
	}
	if c.IsSet("mode") {
		mode, err := pagination.ParseMode(c.String("mode"))
		if err != nil {
			return cfg, errors.NewInvalidConfig("output.paginationMode", err.Error())
		}
		cfg = cfg.WithPaginationMode(mode)
	}
	if c.Bool("no-answer-key") {
		cfg = cfg.WithAnswerKey(false)
	}
	if c.IsSet("school") {
		cfg = cfg.WithSchoolName(c.String("school"))
	}
	if c.IsSet("class") {
		cfg = cfg.WithClassName(c.String("class"))
	}
	if c.IsSet("logo") {
		cfg = cfg.WithLogo(c.String("logo"))
	}
	if c.IsSet("border") {
		cfg = cfg.WithBorder(worksheet.Border(c.String("border")))
	}
	if c.IsSet("background") {
		cfg = cfg.WithBackground(worksheet.Background(c.String("background")))
	}
	if c.IsSet("font") {
		cfg = cfg.WithFont(worksheet.Font(c.String("font")))
	}
	if c.IsSet("format") {
		f, err := worksheet.ParseFormat(c.String("format"))
		if err != nil {
			return cfg, errors.NewInvalidConfig("output.format", err.Error())
		}
		cfg = cfg.WithFormat(f)
	}
	return cfg, nil
}

// plan builds and paginates the worksheet described by the flags.
func plan(c *cli.Context, env *appEnv) (*export.Plan, error) {
	cfg, err := buildConfig(c, env.repo)
	if err != nil {
		return nil, err
	}
	return export.NewPlan(env.repo, cfg, env.cfg.Render.Seed)
}

// estimateCmd creates the estimate command.
func estimateCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "estimate",
		Usage: "Estimate how full one page is for the selected activities",
		Flags: append(worksheetFlags(),
			&cli.BoolFlag{Name: "json", Usage: "Print the estimate as JSON"},
		),
		Action: func(c *cli.Context) error {
			p, err := plan(c, env)
			if err != nil {
				return outputError(err)
			}

			est := p.Estimate()
			if c.Bool("json") {
				return outputJSON(c.App.Writer, struct {
					capacity.Estimation
					Meter     capacity.Meter `json:"meter"`
					MaxVerses int            `json:"maxVerses"`
				}{est, capacity.NewMeter(est), capacity.MaxUnitsForActivities(p.Config.Activities)})
			}

			_, err = fmt.Fprintln(c.App.Writer, renderMeter(p.Surah.Latin+" "+p.Config.AyahRange.String(), est))
			return err
		},
	}
}

// paginateCmd creates the paginate command.
func paginateCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "paginate",
		Usage: "List the pages the worksheet is split into",
		Flags: worksheetFlags(),
		Action: func(c *cli.Context) error {
			p, err := plan(c, env)
			if err != nil {
				return outputError(err)
			}

			type pageOutput struct {
				Number     int             `json:"number"`
				Kind       string          `json:"kind"`
				Title      string          `json:"title,omitempty"`
				Activities []activity.Type `json:"activities"`
				Range      quran.Range     `json:"range"`
				Footer     string          `json:"footer"`
			}
			pages := p.Document.Pages()
			out := make([]pageOutput, 0, len(pages))
			for i, page := range pages {
				out = append(out, pageOutput{
					Number:     i + 1,
					Kind:       page.Kind.String(),
					Title:      page.Title,
					Activities: page.Activities,
					Range:      page.Range,
					Footer:     raster.Brand + " • " + pagination.Footer(i+1, len(pages)),
				})
			}
			return outputJSON(c.App.Writer, map[string]any{"pages": out, "total": len(out)})
		},
	}
}

// maxVersesCmd creates the max-verses command.
func maxVersesCmd() *cli.Command {
	return &cli.Command{
		Name:      "max-verses",
		Usage:     "Largest verse count that fits one page",
		ArgsUsage: "<activities>",
		Action: func(c *cli.Context) error {
			acts, err := activity.ParseList(c.Args().First())
			if err != nil {
				return outputError(errors.NewInvalidRequest(err.Error()))
			}
			return outputJSON(c.App.Writer, map[string]int{"maxVerses": capacity.MaxUnitsForActivities(acts)})
		},
	}
}

// previewCmd creates the preview command.
func previewCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "preview",
		Usage: "Write the HTML preview of the worksheet",
		Flags: append(worksheetFlags(),
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output HTML file (default stdout)"},
		),
		Action: func(c *cli.Context) error {
			p, err := plan(c, env)
			if err != nil {
				return outputError(err)
			}

			w := c.App.Writer
			if path := c.String("output"); path != "" {
				f, err := os.Create(path)
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				defer f.Close()
				w = f
			}
			if err := preview.Render(w, p.Preview(raster.Brand)); err != nil {
				return outputError(errors.NewInternal(err))
			}
			return nil
		},
	}
}

// exportCmd creates the export command.
func exportCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Render the worksheet to PDF, PNG or ZIP",
		Flags: append(worksheetFlags(),
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "Output format: pdf|png|zip"},
			&cli.StringFlag{Name: "pages", Aliases: []string{"p"}, Value: "all", Usage: "Student pages: all|current:N|N|N-M"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output directory"},
			&cli.BoolFlag{Name: "s3", Usage: "Upload to the configured S3 bucket"},
			&cli.Int64Flag{Name: "seed", Usage: "Exercise shuffling seed"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "Do not report progress"},
		),
		Action: func(c *cli.Context) error {
			cfg, err := buildConfig(c, env.repo)
			if err != nil {
				return outputError(err)
			}
			sel, err := pagination.ParsePageSelection(c.String("pages"))
			if err != nil {
				return outputError(errors.NewInvalidRequest(err.Error()))
			}

			ctx := c.Context
			if ctx == nil {
				ctx = context.Background()
			}
			if env.cfg.Render.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, env.cfg.Render.Timeout)
				defer cancel()
			}

			seed := env.cfg.Render.Seed
			if c.IsSet("seed") {
				seed = c.Int64("seed")
			}
			loader := res.NewLoader("")
			if env.cfg.Render.FontDir != "" {
				loader.AddSearchPath(env.cfg.Render.FontDir)
			}
			exporter := export.New(env.repo, loader, export.Options{
				Scale:       env.cfg.Render.Scale,
				Concurrency: env.cfg.Render.Concurrency,
				Seed:        seed,
			})

			var progress export.Progress
			if !c.Bool("quiet") {
				progress = func(current, total int) {
					fmt.Fprintf(c.App.ErrWriter, "halaman %d/%d\n", current, total)
				}
			}

			saver, local, err := destination(ctx, c, env)
			if err != nil {
				return outputError(err)
			}

			result, err := exporter.Export(ctx, export.Request{Config: cfg, Selection: sel}, progress)
			if err != nil {
				return outputError(err)
			}

			locations, err := result.Save(ctx, saver)
			if err != nil {
				return outputError(errors.NewInternal(err))
			}

			if local && result.Format == worksheet.FormatPDF {
				if err := pdf.Verify(locations[0], result.Pages); err != nil {
					return outputError(errors.NewInternal(err))
				}
			}

			if env.db != nil {
				rec := &store.Export{
					ID:          result.ID,
					SurahNumber: result.Plan.Surah.Number,
					From:        result.Plan.Config.AyahRange.From,
					To:          result.Plan.Config.AyahRange.To,
					Format:      result.Format,
					Pages:       result.Pages,
					Location:    strings.Join(locations, ","),
					Config:      result.Plan.Config,
					CreatedAt:   time.Now().Unix(),
				}
				if err := store.InsertExport(env.db, rec); err != nil {
					return outputError(err)
				}
			}

			return outputJSON(c.App.Writer, map[string]any{
				"id":     result.ID,
				"format": result.Format,
				"pages":  result.Pages,
				"seed":   result.Plan.Seed,
				"files":  locations,
			})
		},
	}
}

// destination picks the S3 bucket or the local output directory.
func destination(ctx context.Context, c *cli.Context, env *appEnv) (storage.Saver, bool, error) {
	if c.Bool("s3") {
		if env.cfg.Storage.S3Bucket == "" {
			return nil, false, errors.NewInvalidRequest("WORKSHEET_S3_BUCKET is not set")
		}
		s, err := storage.NewS3(ctx, env.cfg.Storage.S3Bucket, env.cfg.Storage.S3Prefix)
		if err != nil {
			return nil, false, errors.NewInternal(err)
		}
		return s, false, nil
	}

	dir := c.String("out")
	if dir == "" {
		dir = env.cfg.Render.OutputDir
	}
	return storage.NewLocal(dir), true, nil
}

// surahsCmd creates the surahs command.
func surahsCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "surahs",
		Usage: "List the available surahs",
		Action: func(c *cli.Context) error {
			type surahOutput struct {
				Number int    `json:"number"`
				Name   string `json:"name"`
				Latin  string `json:"latin"`
				Ayahs  int    `json:"ayahs"`
			}
			surahs := quran.Ordered(env.repo)
			out := make([]surahOutput, 0, len(surahs))
			for _, s := range surahs {
				out = append(out, surahOutput{Number: s.Number, Name: s.Name, Latin: s.Latin, Ayahs: len(s.Verses)})
			}
			return outputJSON(c.App.Writer, out)
		},
	}
}

// importCmd creates the import command.
func importCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Import surahs from a JSON document into the local database",
		ArgsUsage: "<file>",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return outputError(errors.NewInvalidRequest("file is required"))
			}
			data, err := os.ReadFile(c.Args().First())
			if err != nil {
				return outputError(errors.NewInvalidRequest(err.Error()))
			}
			surahs, err := quran.ParseDocument(data)
			if err != nil {
				return outputError(errors.NewInvalidRequest(err.Error()))
			}
			n, err := store.ImportSurahs(env.db, surahs)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(c.App.Writer, map[string]int{"imported": n})
		},
	}
}

// historyCmd creates the history command.
func historyCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:      "history",
		Usage:     "Show past exports, or one export by ID",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: 20, Usage: "Maximum results"},
			&cli.IntFlag{Name: "offset", Value: 0, Usage: "Pagination offset"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() > 0 {
				e, err := store.GetExport(env.db, c.Args().First())
				if err != nil {
					return outputError(err)
				}
				return outputJSON(c.App.Writer, e)
			}
			list, err := store.ListExports(env.db, c.Int("limit"), c.Int("offset"))
			if err != nil {
				return outputError(err)
			}
			return outputJSON(c.App.Writer, list)
		},
	}
}

// configCmd creates the config command.
func configCmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage worksheet config files",
		Subcommands: []*cli.Command{
			{
				Name:      "init",
				Usage:     "Write the default worksheet config",
				ArgsUsage: "[file]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "force", Usage: "Overwrite an existing file"},
				},
				Action: func(c *cli.Context) error {
					path := c.Args().First()
					if path == "" {
						path = "worksheet.yaml"
					}
					if _, err := os.Stat(path); err == nil && !c.Bool("force") {
						return outputError(errors.NewInvalidRequest(fmt.Sprintf("%s already exists", path)))
					}
					if err := worksheet.Save(path, worksheet.Default()); err != nil {
						return outputError(errors.NewInternal(err))
					}
					abs, _ := filepath.Abs(path)
					return outputJSON(c.App.Writer, map[string]string{"path": abs})
				},
			},
		},
	}
}

// mcpCmd creates the mcp command.
func mcpCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve the capacity tools over MCP stdio",
		Action: func(c *cli.Context) error {
			return mcp.Run(env.repo, Version)
		},
	}
}

// Helper functions

// outputJSON marshals result to w as JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if wErr, ok := err.(*errors.WorksheetError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", wErr.Code, wErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
