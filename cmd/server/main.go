package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"clinic-scheduler-api/internal/auth"
	"clinic-scheduler-api/internal/clinic"
	"clinic-scheduler-api/internal/config"
	"clinic-scheduler-api/internal/obs"
	"clinic-scheduler-api/internal/scheduling"
	"clinic-scheduler-api/internal/store"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "clinic-scheduler",
		Short:        "Clinic appointment scheduling server",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(adminCmd())
	rootCmd.AddCommand(tokenCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app is what every command needs: config, logger and the store.
type app struct {
	cfg  *config.Config
	log  zerolog.Logger
	pool *pgxpool.Pool
	st   *store.Store
}

func setup(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := obs.NewLogger(os.Stdout, cfg.LogLevel, cfg.IsDev())

	pool, err := store.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, err
	}
	st := store.New(pool)
	if err := st.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	log.Info().Msg("connected to postgres")
	return &app{cfg: cfg, log: log, pool: pool, st: st}, nil
}

func (rt *app) Close() { rt.pool.Close() }

// service assembles the clinic layer. pub may be nil.
func (rt *app) service(pub scheduling.Publisher) (*clinic.Service, *auth.Tokens, error) {
	tokens, err := auth.NewTokens(rt.cfg.JWTSecret, rt.log)
	if err != nil {
		return nil, nil, err
	}
	loc, err := rt.cfg.Location()
	if err != nil {
		return nil, nil, err
	}
	dir := auth.NewDirectory(tokens, rt.st, rt.log)
	svc := clinic.New(rt.st, dir,
		scheduling.NewLifecycle(rt.st, rt.st, rt.st, dir, pub, rt.log),
		scheduling.NewQuery(rt.st, dir, loc, rt.log),
		scheduling.NewSlotValidator(rt.st),
		rt.log,
	)
	return svc, tokens, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			n, err := rt.st.Migrate(cmd.Context())
			if err != nil {
				rt.log.Error().Err(err).Msg("migration failed")
				return err
			}
			rt.log.Info().Int("applied", n).Msg("migrations complete")
			return nil
		},
	}
}

func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage administrator accounts",
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")

			rt, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			svc, _, err := rt.service(nil)
			if err != nil {
				return err
			}
			id, err := svc.CreateAdmin(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	createCmd.Flags().String("username", "", "Admin username")
	createCmd.Flags().String("password", "", "Admin password (at least 6 characters)")
	_ = createCmd.MarkFlagRequired("username")
	_ = createCmd.MarkFlagRequired("password")
	cmd.AddCommand(createCmd)

	return cmd
}

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Identity token tooling",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "issue <identity>",
		Short: "Print a signed token for an admin username or account email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			tokens, err := auth.NewTokens(cfg.JWTSecret, zerolog.Nop())
			if err != nil {
				return err
			}
			tok, err := tokens.Issue(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	})
	return cmd
}
