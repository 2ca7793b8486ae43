// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/invowk/rsctl/internal/invoke"
	"github.com/invowk/rsctl/internal/redshiftops"
)

func TestKebab(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"DataShareArn", "data-share-arn"},
		{"DBName", "db-name"},
		{"KmsKeyId", "kms-key-id"},
		{"VpcSecurityGroupIds", "vpc-security-group-ids"},
		{"IAMRoleArn", "iam-role-arn"},
		{"Id", "id"},
		{"Tags", "tags"},
		{"S3Bucket", "s3-bucket"},
	}

	for _, tt := range tests {
		if got := kebab(tt.in); got != tt.want {
			t.Errorf("kebab(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOperationCommand_FlagsPerParameter(t *testing.T) {
	t.Parallel()

	for _, op := range redshiftops.All() {
		d := op.Describe()
		c := newOperationCommand(&rootCommand{}, op)
		for _, p := range d.Params {
			f := c.Flags().Lookup(kebab(p.Name))
			if f == nil {
				t.Errorf("%s: no flag for %s", d.Name, p.Name)
				continue
			}
			if p.Kind == invoke.KindBool && f.NoOptDefVal != "true" {
				t.Errorf("%s: bool flag --%s should not need a value", d.Name, f.Name)
			}
		}
		if hasForce := c.Flags().Lookup("force") != nil; hasForce != (d.Impact != invoke.ImpactNone) {
			t.Errorf("%s: --force registered = %v, impact %s", d.Name, hasForce, d.Impact)
		}
		if hasPassThru := c.Flags().Lookup("pass-thru") != nil; hasPassThru != (d.PassThru != "") {
			t.Errorf("%s: --pass-thru registered = %v", d.Name, hasPassThru)
		}
	}
}

func TestOperationCommand_SelectDefaultInHelp(t *testing.T) {
	t.Parallel()

	for _, op := range redshiftops.All() {
		d := op.Describe()
		usage := newOperationCommand(&rootCommand{}, op).Flags().Lookup("select").Usage
		if strings.Contains(usage, `(default "")`) {
			t.Errorf("%s: --select help shows an empty default: %s", d.Name, usage)
		}
	}

	op, err := redshiftops.Lookup("usage-limit", "delete")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	usage := newOperationCommand(&rootCommand{}, op).Flags().Lookup("select").Usage
	if !strings.Contains(usage, `(default "*")`) {
		t.Errorf("usage-limit delete --select help = %q, want the whole-response default", usage)
	}
}

func TestCollectValues(t *testing.T) {
	t.Parallel()

	params := []invoke.ParamInfo{
		{Name: "ClusterIdentifier", Aliases: []string{"Id"}, Kind: invoke.KindString},
		{Name: "Encrypted", Kind: invoke.KindBool},
		{Name: "Tags", Kind: invoke.KindStringList},
		{Name: "Port", Kind: invoke.KindInt32},
	}
	c := &cobra.Command{Use: "test"}
	for _, p := range params {
		addParamFlags(c, p)
	}

	if err := c.Flags().Parse([]string{"--id", "analytics", "--encrypted", "--tags", "env=prod", "--tags", "team=data"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	got, err := collectValues(c.Flags(), params)
	if err != nil {
		t.Fatalf("collectValues() error = %v", err)
	}

	want := map[string][]string{
		"ClusterIdentifier": {"analytics"},
		"Encrypted":         {"true"},
		"Tags":              {"env=prod", "team=data"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("collectValues() mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectValues_EmptyValueIsBound(t *testing.T) {
	t.Parallel()

	params := []invoke.ParamInfo{{Name: "DataShareArn", Aliases: []string{"Arn"}, Kind: invoke.KindString}}
	c := &cobra.Command{Use: "test"}
	addParamFlags(c, params[0])

	if err := c.Flags().Parse([]string{"--data-share-arn="}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	got, err := collectValues(c.Flags(), params)
	if err != nil {
		t.Fatalf("collectValues() error = %v", err)
	}
	if diff := cmp.Diff(map[string][]string{"DataShareArn": {""}}, got); diff != "" {
		t.Errorf("collectValues() mismatch (-want +got):\n%s", diff)
	}
}
