package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/spf13/cobra"

	securesql "github.com/biyonik/go-secure-sql"
	"github.com/biyonik/go-secure-sql/internal/cli"
	"github.com/biyonik/go-secure-sql/metrics"
)

var (
	applyDSN         string
	applyDryRun      bool
	applyPushGateway string
)

var applyCmd = &cobra.Command{
	Use:   "apply <file>",
	Short: "Apply a schema document to MySQL",
	Example: `  # Apply using securesql.yaml / SECURESQL_DATABASE_* settings
  securesql apply schema/users.yaml

  # Preview without touching the database
  securesql apply schema/users.yaml --dry-run

  # Explicit DSN, push run metrics afterwards
  securesql apply schema/users.yaml --dsn 'app:secret@tcp(localhost:3306)/app' --push-gateway http://localhost:9091`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stmts, err := loadStatements(args[0])
		if err != nil {
			return err
		}

		if resolveBool(applyDryRun, cfg.Apply.DryRun) {
			if !quiet {
				fmt.Fprintln(cmd.ErrOrStderr(), "-- Dry-run mode: SQL will be output but not applied")
			}
			return writeStatements(cmd.OutOrStdout(), stmts)
		}

		if applyDSN != "" {
			cfg.Database.DSN = applyDSN
		}
		conn, err := cfg.ClientConfig()
		if err != nil {
			return cli.ConfigError("database configuration", err)
		}

		reg := prometheus.NewRegistry()
		collector, err := metrics.NewLogger(reg)
		if err != nil {
			return cli.GeneralError("metrics", err)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		qb, err := securesql.Open(ctx, conn,
			securesql.WithLogger(securesql.MultiLogger{securesql.NewSlogLogger(logger), collector}),
		)
		if err != nil {
			return cli.DBConnectError("connecting to database", err)
		}
		defer func() { _ = qb.Close() }()

		applied, runErr := applyStatements(ctx, qb, stmts)

		if gw := resolveString(applyPushGateway, cfg.Metrics.PushGateway); gw != "" {
			if err := push.New(gw, cfg.Metrics.Job).Gatherer(reg).Push(); err != nil {
				logger.Warn("pushing metrics failed", "gateway", gw, "error", err)
			}
		}

		if runErr != nil {
			return cli.GeneralError(fmt.Sprintf("apply failed after %d of %d statements", applied, len(stmts)), runErr)
		}
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "Applied %d statements.\n", applied)
		}
		return nil
	},
}

func init() {
	f := applyCmd.Flags()
	f.StringVar(&applyDSN, "dsn", "", "MySQL DSN (overrides database.* settings)")
	f.BoolVar(&applyDryRun, "dry-run", false, "print the statements without applying them")
	f.StringVar(&applyPushGateway, "push-gateway", "", "Prometheus Pushgateway URL for run metrics")
}

// applyStatements runs stmts in order and stops at the first failure. It
// returns how many statements succeeded.
func applyStatements(ctx context.Context, qb *securesql.QueryBuilder, stmts []string) (int, error) {
	for i, stmt := range stmts {
		if _, err := qb.SetQuery(stmt).Execute(ctx); err != nil {
			return i, err
		}
	}
	return len(stmts), nil
}
