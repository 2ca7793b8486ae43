// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/invowk/rsctl/internal/redshiftops"
	"github.com/invowk/rsctl/internal/render"
)

// operationRow is one line of `rsctl ops`.
type operationRow struct {
	Command   string `json:"Command"`
	Operation string `json:"Operation"`
	Impact    string `json:"Impact"`
	Summary   string `json:"Summary"`
	Required  string `json:"Required,omitempty"`
	Fields    string `json:"Fields,omitempty"`
}

func newOpsCommand(rc *rootCommand) *cobra.Command {
	var (
		group      string
		withFields bool
	)

	c := &cobra.Command{
		Use:     "ops",
		Short:   "List the available operations",
		GroupID: groupTools,
		Long: `List the available operations with their impact level and required
parameters. The output is a table unless --output is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ops := redshiftops.All()
			if group != "" {
				if !slices.Contains(redshiftops.Groups, group) {
					return fmt.Errorf("unknown command group %q (expected one of %s)", group, strings.Join(redshiftops.Groups, ", "))
				}
				ops = redshiftops.InGroup(group)
			}

			format := render.Table
			if rc.cmd.PersistentFlags().Changed("output") {
				var err error
				if format, err = render.ParseFormat(rc.output); err != nil {
					return err
				}
			}
			return render.Write(cmd.OutOrStdout(), format, operationRows(ops, withFields))
		},
	}

	c.Flags().StringVarP(&group, "group", "g", "", "only list operations of this group")
	c.Flags().BoolVar(&withFields, "fields", false, "include response fields usable with --select")
	_ = c.RegisterFlagCompletionFunc("group", cobra.FixedCompletions(redshiftops.Groups, cobra.ShellCompDirectiveNoFileComp))
	return c
}

func operationRows(ops []redshiftops.Runner, withFields bool) []operationRow {
	rows := make([]operationRow, 0, len(ops))
	for _, op := range ops {
		d := op.Describe()
		var required []string
		for _, p := range d.Params {
			if p.IsRequired {
				required = append(required, "--"+kebab(p.Name))
			}
		}
		row := operationRow{
			Command:   d.Group + " " + d.Verb,
			Operation: d.Name,
			Impact:    d.Impact.String(),
			Summary:   d.Summary,
			Required:  strings.Join(required, " "),
		}
		if withFields {
			row.Fields = strings.Join(d.Fields, ", ")
		}
		rows = append(rows, row)
	}
	return rows
}
