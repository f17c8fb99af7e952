package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/AvinashMishraaa/Talentflow/internal/app"
	"github.com/AvinashMishraaa/Talentflow/internal/config"
	"github.com/AvinashMishraaa/Talentflow/internal/db"
	"github.com/AvinashMishraaa/Talentflow/internal/engine"
	"github.com/AvinashMishraaa/Talentflow/internal/server"
	"github.com/AvinashMishraaa/Talentflow/internal/sim"
	"github.com/AvinashMishraaa/Talentflow/pkg/log"
)

var rootCmd = &cobra.Command{
	Use:   "talentflow",
	Short: "Talentflow CLI",
	Long: `Talentflow is a hiring pipeline backend: jobs, candidates, and assessments
with deterministic seed data and a request simulator for exercising client
retry and rollback paths.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		workspace := viper.GetString("workspace")
		if _, err := db.EnsureWorkspace(workspace); err != nil {
			return err
		}
		return nil
	},
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	initLogger()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("TALENTFLOW")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func initLogger() {
	logLvl, err := zap.ParseAtomicLevel(os.Getenv("TALENTFLOW_LOG_LEVEL"))
	if err != nil {
		logLvl = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	logger := log.InitLog(logLvl)
	zap.ReplaceGlobals(logger)
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().StringP("workspace", "w", ".", "workspace directory")
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	_ = viper.BindPFlag("workspace", rootCmd.PersistentFlags().Lookup("workspace"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func registerCommands() {
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(jobCmd())
	rootCmd.AddCommand(candidateCmd())
	rootCmd.AddCommand(configCmd())
}

func serveCmd() *cobra.Command {
	var addr, basePath string
	var noSim bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ac, err := app.Bootstrap(viper.GetString("workspace"))
			if err != nil {
				return err
			}
			defer ac.Close()

			simCfg := sim.FromAppConfig(ac.Config)
			if noSim {
				simCfg = sim.Disabled()
			}
			secret := ac.Config.Auth.JWTSecret
			if env := os.Getenv("TALENTFLOW_JWT_SECRET"); env != "" {
				secret = env
			}
			handler, err := server.New(server.Config{
				Engine:   ac.Engine,
				BasePath: basePath,
				Sim:      simCfg,
				Auth:     server.AuthConfig{JWTSecret: secret},
			})
			if err != nil {
				return err
			}
			srv := &http.Server{Addr: addr, Handler: handler}
			go func() {
				<-cmd.Context().Done()
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				srv.Shutdown(ctx)
			}()
			fmt.Printf("Serving Talentflow API on http://%s%s (OpenAPI at /openapi.json, Swagger UI at /docs)\n", addr, basePath)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	cmd.Flags().StringVar(&basePath, "base-path", "", "API base path")
	cmd.Flags().BoolVar(&noSim, "no-sim", false, "disable latency and failure injection")
	return cmd
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Regenerate seed data, discarding current state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e *engine.Engine) error {
				e.Reseed(ctx)
				return printJSONOrTable(e.Stats(ctx))
			})
		},
	}
	return cmd
}

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e *engine.Engine) error {
				return printJSONOrTable(e.Stats(ctx))
			})
		},
	}
	return cmd
}

func jobCmd() *cobra.Command {
	job := &cobra.Command{Use: "jobs", Short: "Inspect jobs"}
	job.AddCommand(jobListCmd())
	return job
}

func jobListCmd() *cobra.Command {
	var opts engine.JobListOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e *engine.Engine) error {
				page := e.ListJobs(ctx, opts)
				if viper.GetBool("json") {
					return printJSON(page)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Title", "Slug", "Status", "Tags", "Order"})
				for _, j := range page.Data {
					tw.AppendRow(table.Row{j.ID, j.Title, j.Slug, j.Status, strings.Join(j.Tags, ","), j.Order})
				}
				tw.Render()
				fmt.Printf("page %d/%d (%d total)\n", page.Page, page.TotalPages, page.Total)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&opts.Search, "search", "", "title filter")
	cmd.Flags().StringVar(&opts.Status, "status", "", "status filter (active|archived)")
	cmd.Flags().StringVar(&opts.Tag, "tag", "", "tag filter")
	cmd.Flags().StringVar(&opts.Order, "order", "asc", "sort by board order (asc|desc)")
	cmd.Flags().IntVar(&opts.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 0, "page size")
	return cmd
}

func candidateCmd() *cobra.Command {
	cand := &cobra.Command{Use: "candidates", Short: "Inspect candidates"}
	cand.AddCommand(candidateListCmd())
	return cand
}

func candidateListCmd() *cobra.Command {
	var opts engine.CandidateListOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List candidates",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e *engine.Engine) error {
				page := e.ListCandidates(ctx, opts)
				if viper.GetBool("json") {
					return printJSON(page)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Name", "Email", "Stage", "Job"})
				for _, c := range page.Data {
					tw.AppendRow(table.Row{c.ID, c.Name, c.Email, c.Stage, c.JobID})
				}
				tw.Render()
				fmt.Printf("page %d/%d (%d total)\n", page.Page, page.TotalPages, page.Total)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&opts.Stage, "stage", "", "stage filter")
	cmd.Flags().StringVar(&opts.Search, "search", "", "name or email filter")
	cmd.Flags().IntVar(&opts.JobID, "job", 0, "job id filter")
	cmd.Flags().IntVar(&opts.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 0, "page size")
	return cmd
}

func configCmd() *cobra.Command {
	cfg := &cobra.Command{
		Use:   "config",
		Short: "Inspect workspace config",
		Long:  "Config lives in talentflow.yml at the workspace root: seed sizes, simulator latency window, and failure rates.",
	}
	cfg.AddCommand(configShowCmd())
	cfg.AddCommand(configInitCmd())
	cfg.AddCommand(configValidateCmd())
	return cfg
}

func configShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show loaded config",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOptional(viper.GetString("workspace"))
			if err != nil {
				return err
			}
			return printJSONOrTable(cfg)
		},
	}
	return cmd
}

func configInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default talentflow.yml",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.Path(viper.GetString("workspace"))
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists; use --force to overwrite", path)
			}
			if err := os.WriteFile(path, []byte(config.GenerateDefault()), 0o644); err != nil {
				return err
			}
			fmt.Println("wrote", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing file")
	return cmd
}

func configValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate workspace config",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(viper.GetString("workspace"))
			if err == nil {
				err = cfg.Validate()
			}
			if viper.GetBool("json") {
				return printJSON(map[string]any{"ok": err == nil, "error": fmt.Sprint(err)})
			}
			if err != nil {
				return err
			}
			fmt.Println("config OK")
			return nil
		},
	}
	return cmd
}

// --- helpers ---

func withEngine(ctx context.Context, fn func(context.Context, *engine.Engine) error) error {
	ac, err := app.Bootstrap(viper.GetString("workspace"))
	if err != nil {
		return err
	}
	defer ac.Close()
	return fn(ctx, ac.Engine)
}

func printJSONOrTable(v any) error {
	if viper.GetBool("json") {
		return printJSON(v)
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
