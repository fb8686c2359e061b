// Command migrate inspects and changes the microblog schema.
//
//	migrate [-timeout 2m] status
//	migrate up | auto
//	migrate down <version>
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"microblog/internal/config"
	"microblog/internal/database"

	"gorm.io/gorm"
)

// command is one migrate subcommand. args excludes the command name.
type command struct {
	help string
	run  func(ctx context.Context, db *gorm.DB, cfg *config.Config, args []string, out io.Writer) error
}

var commands = map[string]command{
	"status": {help: "show dialect, schema plan and pending migrations", run: runStatus},
	"up":     {help: "apply pending SQL migrations", run: runUp},
	"auto":   {help: "run GORM automigrate regardless of DB_SCHEMA_MODE", run: runAuto},
	"down":   {help: "revert one migration: down <version>", run: runDown},
}

func main() {
	timeout := flag.Duration("timeout", 2*time.Minute, "Abort the operation after this long")
	flag.Usage = func() { printUsage(flag.CommandLine.Output()) }
	flag.Parse()

	cmd, ok := lookup(flag.Arg(0))
	if !ok {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open, not Connect: applying the schema is this command's job.
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	err = cmd.run(ctx, db, cfg, flag.Args()[1:], os.Stdout)
	cancel()
	_ = database.Close(db)
	if err != nil {
		log.Fatalf("%s: %v", flag.Arg(0), err)
	}
}

func lookup(name string) (command, bool) {
	cmd, ok := commands[strings.ToLower(strings.TrimSpace(name))]
	return cmd, ok
}

func printUsage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "usage: migrate [-timeout d] <command> [args]")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(tw, "  %s\t%s\n", name, commands[name].help)
	}
	_ = tw.Flush()
}

func runStatus(ctx context.Context, db *gorm.DB, cfg *config.Config, _ []string, out io.Writer) error {
	status, err := database.GetSchemaStatus(ctx, db, cfg)
	if err != nil {
		return err
	}
	return writeStatus(out, status)
}

func writeStatus(w io.Writer, status *database.SchemaStatus) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "dialect\t%s\n", status.Dialect)
	fmt.Fprintf(tw, "env\t%s\n", status.Environment)
	fmt.Fprintf(tw, "mode\t%s\n", status.Mode)
	fmt.Fprintf(tw, "plan\t%s\n", status.Plan())
	if status.WillRunSQL {
		fmt.Fprintf(tw, "applied\t%d\n", len(status.AppliedVersions))
		fmt.Fprintf(tw, "pending\t%d\n", len(status.PendingMigrations))
		for _, m := range status.PendingMigrations {
			fmt.Fprintf(tw, "  %06d\t%s\n", m.Version, m.Name)
		}
	} else {
		fmt.Fprintf(tw, "migrations\tnot used by %s\n", status.Dialect)
	}
	return tw.Flush()
}

func runUp(ctx context.Context, db *gorm.DB, _ *config.Config, _ []string, out io.Writer) error {
	if err := database.RunMigrations(ctx, db); err != nil {
		return err
	}
	_, err := fmt.Fprintln(out, "sql migrations applied")
	return err
}

func runAuto(ctx context.Context, db *gorm.DB, cfg *config.Config, _ []string, out io.Writer) error {
	forced := *cfg
	forced.DBSchemaMode = database.SchemaModeAuto
	if err := database.ApplySchema(ctx, db, &forced); err != nil {
		return err
	}
	_, err := fmt.Fprintln(out, "automigrate applied")
	return err
}

func runDown(ctx context.Context, db *gorm.DB, _ *config.Config, args []string, out io.Writer) error {
	version, err := parseVersion(args)
	if err != nil {
		return err
	}
	if err := database.RollbackMigration(ctx, db, version); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "rolled back %06d\n", version)
	return err
}

func parseVersion(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected exactly one version, got %d args", len(args))
	}
	version, err := strconv.Atoi(args[0])
	if err != nil || version <= 0 {
		return 0, fmt.Errorf("invalid version %q", args[0])
	}
	return version, nil
}
