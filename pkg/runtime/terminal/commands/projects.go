package commands

import (
	"github.com/de-tools/solar-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/solar-atlas/pkg/services/search"
	"github.com/spf13/cobra"
)

type ProjectsCmd struct {
	deps   DepsProvider
	query  string
	filter string
}

func NewProjectsCmd(deps DepsProvider) *cobra.Command {
	pc := &ProjectsCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Browse projects",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List projects matching a search",
		RunE:  pc.list,
	}
	list.Flags().StringVarP(&pc.query, "query", "q", "", "Text to search in name, customer and status")
	list.Flags().StringVar(&pc.filter, "filter", "", "CEL filter, e.g. 'status == \"In Progress\"'")

	cmd.AddCommand(list)
	return cmd
}

func (pc *ProjectsCmd) list(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	deps, err := pc.deps(ctx)
	if err != nil {
		return err
	}

	projects, err := deps.Explorer.ListProjects(ctx, search.Criteria{Query: pc.query, Filter: pc.filter})
	if err != nil {
		return err
	}
	return export.NewReporter(cmd.OutOrStdout(), deps.Formatter).Projects(projects)
}

func NewCustomersCmd(deps DepsProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customers",
		Short: "Browse customers",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List customers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			d, err := deps(ctx)
			if err != nil {
				return err
			}
			customers, err := d.Explorer.ListCustomers(ctx)
			if err != nil {
				return err
			}
			return export.NewReporter(cmd.OutOrStdout(), d.Formatter).Customers(customers)
		},
	})
	return cmd
}
