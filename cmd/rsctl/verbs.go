// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/invowk/rsctl/internal/awsclient"
	"github.com/invowk/rsctl/internal/invoke"
	"github.com/invowk/rsctl/internal/redshiftops"
)

const (
	groupOperations = "operations"
	groupTools      = "tools"
)

var groupSummaries = map[string]string{
	"cluster":     "Manage provisioned clusters",
	"usage-limit": "Manage usage limits of clusters",
	"datashare":   "Manage datashares between producers and consumers",
	"idc":         "Manage IAM Identity Center applications",
}

// invocationFlags are the switches shared by every operation command.
type invocationFlags struct {
	force    bool
	sel      string
	passThru bool
	query    string
}

// newOperationGroups builds one command per operation group, each holding
// one subcommand per operation.
func newOperationGroups(rc *rootCommand) []*cobra.Command {
	groups := make([]*cobra.Command, 0, len(redshiftops.Groups))
	for _, name := range redshiftops.Groups {
		group := &cobra.Command{
			Use:     name,
			Short:   groupSummaries[name],
			GroupID: groupOperations,
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return cmd.Help()
			},
		}
		for _, op := range redshiftops.InGroup(name) {
			group.AddCommand(newOperationCommand(rc, op))
		}
		groups = append(groups, group)
	}
	return groups
}

// newOperationCommand exposes one bound operation as a command with a flag
// per request parameter.
func newOperationCommand(rc *rootCommand, op redshiftops.Runner) *cobra.Command {
	d := op.Describe()
	var inv invocationFlags

	c := &cobra.Command{
		Use:   d.Verb,
		Short: d.Summary,
		Long:  operationLong(d),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rc.invoke(cmd, op, inv)
		},
	}

	fs := c.Flags()
	for _, p := range d.Params {
		addParamFlags(c, p)
	}
	fs.StringVar(&inv.query, "query", "", "JMESPath expression applied to the selected value")
	if d.Impact != invoke.ImpactNone {
		fs.BoolVarP(&inv.force, "force", "f", false, "do not ask for confirmation")
	}
	fs.StringVar(&inv.sel, "select", "", selectUsage(d))
	_ = c.RegisterFlagCompletionFunc("select", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		candidates := append([]string{"*"}, d.Fields...)
		for _, p := range d.Params {
			candidates = append(candidates, "^"+p.Name)
		}
		return candidates, cobra.ShellCompDirectiveNoFileComp
	})
	if d.PassThru != "" {
		fs.BoolVar(&inv.passThru, "pass-thru", false, fmt.Sprintf("print %s instead of the response", d.PassThru))
	}
	return c
}

// selectUsage is the --select help text; an operation without a default
// selector prints the whole response.
func selectUsage(d invoke.Descriptor) string {
	def := d.Select
	if def == "" {
		def = "*"
	}
	return fmt.Sprintf("what to print: '*', a response field or ^Parameter (default %q)", def)
}

// addParamFlags registers the flag of p and one flag per alias. Boolean
// parameters accept a bare flag for true; list parameters repeat.
func addParamFlags(c *cobra.Command, p invoke.ParamInfo) {
	fs := c.Flags()
	for i, name := range paramFlagNames(p) {
		if fs.Lookup(name) != nil {
			continue
		}
		usage := paramUsage(p)
		if i > 0 {
			usage = "alias of --" + kebab(p.Name)
		}

		if p.Kind.IsList() {
			fs.StringArray(name, nil, usage)
		} else {
			fs.String(name, "", usage)
		}
		if p.Kind == invoke.KindBool {
			fs.Lookup(name).NoOptDefVal = "true"
		}
		if len(p.Constraint.Enum) > 0 {
			_ = c.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(p.Constraint.Enum, cobra.ShellCompDirectiveNoFileComp))
		}
	}
}

// paramFlagNames returns the flag name of p followed by its alias flags.
func paramFlagNames(p invoke.ParamInfo) []string {
	names := []string{kebab(p.Name)}
	for _, a := range p.Aliases {
		names = append(names, kebab(a))
	}
	return names
}

func paramUsage(p invoke.ParamInfo) string {
	var sb strings.Builder
	if p.Help != "" {
		sb.WriteString(p.Help)
	} else {
		sb.WriteString(p.Name)
	}
	var notes []string
	if p.IsRequired {
		notes = append(notes, "required")
	}
	switch {
	case len(p.Constraint.Enum) > 0:
		notes = append(notes, "one of "+strings.Join(p.Constraint.Enum, ", "))
	case p.Kind == invoke.KindStringList:
		notes = append(notes, "repeatable")
	case p.Kind != invoke.KindString:
		notes = append(notes, p.Kind.String())
	}
	if len(notes) > 0 {
		fmt.Fprintf(&sb, " (%s)", strings.Join(notes, "; "))
	}
	return sb.String()
}

// collectValues returns the values of the parameter flags the user set,
// keyed by parameter name. The primary flag wins over its aliases.
func collectValues(fs *pflag.FlagSet, params []invoke.ParamInfo) (map[string][]string, error) {
	values := make(map[string][]string)
	for _, p := range params {
		for _, name := range paramFlagNames(p) {
			if !fs.Changed(name) {
				continue
			}
			if _, ok := values[p.Name]; ok {
				break
			}
			if p.Kind.IsList() {
				v, err := fs.GetStringArray(name)
				if err != nil {
					return nil, err
				}
				values[p.Name] = v
			} else {
				v, err := fs.GetString(name)
				if err != nil {
					return nil, err
				}
				values[p.Name] = []string{v}
			}
		}
	}
	return values, nil
}

// invoke runs op with the flags of cmd and prints the selected value.
func (rc *rootCommand) invoke(cmd *cobra.Command, op redshiftops.Runner, inv invocationFlags) error {
	s, err := rc.load(cmd)
	if err != nil {
		return err
	}
	d := op.Describe()
	verbose := s.Config.UI.Verbose

	values, err := collectValues(cmd.Flags(), d.Params)
	if err != nil {
		return rc.fail(err, verbose)
	}

	// The client may be shared with earlier runs; SDK output follows this one.
	ctx := awsclient.ContextWithLogger(cmd.Context(), s.Logger)
	client, err := rc.app.client(ctx, rc.clientOptions(s))
	if err != nil {
		return rc.fail(err, verbose)
	}

	res, err := op.Invoke(ctx, invoke.Host[redshiftops.API]{
		Client:      client.API,
		Confirmer:   rc.confirmer(cmd, s),
		Interactive: rc.app.Interactive(),
		Threshold:   s.Threshold,
		Logger:      s.Logger,
		Region:      client.Region,
		Endpoint:    client.Endpoint,
	}, invoke.Invocation{
		Values:   values,
		Force:    inv.force,
		Select:   inv.sel,
		PassThru: inv.passThru,
	})
	if err != nil {
		return rc.fail(err, verbose)
	}
	if res.Skipped {
		s.Logger.Info("operation not performed", "operation", d.Name)
		return nil
	}

	return rc.print(cmd.OutOrStdout(), s, res.Value, inv.query)
}

func operationLong(d invoke.Descriptor) string {
	var sb strings.Builder
	sb.WriteString(d.Summary + ".\n\n")
	fmt.Fprintf(&sb, "Calls the %s API once.", d.Name)
	if d.Impact != invoke.ImpactNone {
		fmt.Fprintf(&sb, " Impact is %s: depending on confirm.threshold, rsctl asks before\nsending the request unless --force is given or no terminal is attached.", d.Impact)
	}
	sb.WriteString("\n")
	if len(d.Fields) > 0 {
		fmt.Fprintf(&sb, "\nResponse fields: %s\n", strings.Join(d.Fields, ", "))
	}
	if d.PassThru != "" {
		fmt.Fprintf(&sb, "\nWith --pass-thru, prints the %s that was passed in.\n", d.PassThru)
	}
	return sb.String()
}

// kebab converts an API member name to a flag name, keeping acronyms
// together: DataShareArn -> data-share-arn, DBName -> db-name.
func kebab(name string) string {
	runes := []rune(name)
	var sb strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				sb.WriteByte('-')
			}
		}
		sb.WriteRune(unicode.ToLower(r))
	}
	return sb.String()
}
