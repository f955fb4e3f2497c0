// Package ctl implements trackerctl, the operator command line.
package ctl

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"adflow.app/tracker/internal/model"
	"adflow.app/tracker/internal/service"
)

// ErrUsage is returned for unknown commands and malformed arguments.
var ErrUsage = errors.New("usage")

const usage = `usage: trackerctl <command> [flags] [args]

commands:
  statuses [-json]           print the project lifecycle graph
  quota <organization-id>    print creative and brand usage
  reconcile <project-id>     recount a project's creatives
  migrate                    apply pending database migrations
`

type Reconciler interface {
	ReconcileProject(ctx context.Context, projectID int64) (*model.Project, bool, error)
}

type Migrator interface {
	Migrate(ctx context.Context) error
}

// Backend is what the database-backed commands need. It is opened lazily so
// statuses works without a database.
type Backend struct {
	Catalog    service.CatalogService
	Reconciler Reconciler
	Migrator   Migrator
	Close      func()
}

type Opener func(ctx context.Context) (*Backend, error)

// operator is the identity trackerctl acts as.
var operator = model.Caller{Operator: true}

func Run(ctx context.Context, args []string, open Opener, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(out, usage)
		return ErrUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "statuses":
		return runStatuses(rest, out)
	case "quota", "reconcile", "migrate":
	case "help", "-h", "--help":
		fmt.Fprint(out, usage)
		return nil
	default:
		fmt.Fprint(out, usage)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}

	var id int64
	if cmd != "migrate" {
		if len(rest) != 1 {
			return fmt.Errorf("%w: %s takes exactly one id", ErrUsage, cmd)
		}
		parsed, err := strconv.ParseInt(rest[0], 10, 64)
		if err != nil || parsed <= 0 {
			return fmt.Errorf("%w: invalid id %q", ErrUsage, rest[0])
		}
		id = parsed
	}

	backend, err := open(ctx)
	if err != nil {
		return fmt.Errorf("connecting: %w", err)
	}
	if backend.Close != nil {
		defer backend.Close()
	}

	switch cmd {
	case "quota":
		return runQuota(ctx, backend, id, out)
	case "reconcile":
		return runReconcile(ctx, backend, id, out)
	default:
		if err := backend.Migrator.Migrate(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "migrations applied")
		return nil
	}
}

func runStatuses(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("statuses", flag.ContinueOnError)
	fs.SetOutput(out)
	asJSON := fs.Bool("json", false, "print the table as JSON")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	statuses := model.ProjectStatuses()
	if *asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(statuses)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STATUS\tLABEL\tVARIANT\tNEXT\tNEEDS CREATIVES")
	for _, info := range statuses {
		next := "(terminal)"
		if len(info.Next) > 0 {
			names := make([]string, len(info.Next))
			for i, s := range info.Next {
				names[i] = string(s)
			}
			next = strings.Join(names, ", ")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\n", info.Status, info.Label, info.Variant, next, info.RequiresCreatives)
	}
	return tw.Flush()
}

func runQuota(ctx context.Context, backend *Backend, orgID int64, out io.Writer) error {
	usage, err := backend.Catalog.GetQuota(ctx, operator, orgID)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RESOURCE\tUSED\tMAX\tREMAINING")
	fmt.Fprintf(tw, "creatives\t%d\t%d\t%d\n", usage.Creatives, usage.MaxCreatives, usage.RemainingCreatives())
	fmt.Fprintf(tw, "brands\t%d\t%d\t%d\n", usage.Brands, usage.MaxBrands, usage.RemainingBrands())
	return tw.Flush()
}

func runReconcile(ctx context.Context, backend *Backend, projectID int64, out io.Writer) error {
	project, drifted, err := backend.Reconciler.ReconcileProject(ctx, projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return fmt.Errorf("project %d %w", projectID, service.ErrNotFound)
	}

	if drifted {
		fmt.Fprintf(out, "project %d: total_creatives corrected to %d\n", project.ID, project.TotalCreatives)
	} else {
		fmt.Fprintf(out, "project %d: total_creatives already %d\n", project.ID, project.TotalCreatives)
	}
	return nil
}
