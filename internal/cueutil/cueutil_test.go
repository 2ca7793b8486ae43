// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

const testSchema = `
#Config: {
	region?: string & =~"^[a-z]{2}-[a-z]+-[0-9]$"
	retries?: int & >=1 & <=10
	output: *"json" | "yaml"
}
`

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		want    map[string]any
		wantErr string
	}{
		{
			name: "valid document",
			data: "region: \"eu-west-1\"\nretries: 3\n",
			want: map[string]any{"region": "eu-west-1", "retries": int64(3), "output": "json"},
		},
		{
			name:    "out of range",
			data:    "retries: 11\n",
			wantErr: "retries",
		},
		{
			name:    "unknown field",
			data:    "colour: \"red\"\n",
			wantErr: "colour",
		},
		{
			name:    "syntax error",
			data:    "region: [\n",
			wantErr: "test.cue",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Decode(testSchema, "#Config", []byte(tt.data), "test.cue")
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Decode() error = %v, want it to mention %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("%s = %#v, want %#v", k, got[k], v)
				}
			}
		})
	}
}

func TestDecode_FileSizeLimit(t *testing.T) {
	t.Parallel()

	_, err := Decode(testSchema, "#Config", []byte(strings.Repeat(" ", 64)), "big.cue", WithMaxFileSize(32))
	if err == nil || !strings.Contains(err.Error(), "exceeds maximum") {
		t.Fatalf("Decode() error = %v, want size error", err)
	}
}

func TestFormatError(t *testing.T) {
	t.Parallel()

	if FormatError(nil, "x.cue") != nil {
		t.Error("FormatError(nil) should be nil")
	}

	base := errors.New("boom")
	err := FormatError(base, "x.cue")
	if !errors.Is(err, base) || !strings.HasPrefix(err.Error(), "x.cue: ") {
		t.Errorf("FormatError() = %v", err)
	}
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := map[string][]string{
		"":                   nil,
		"aws":                {"aws"},
		"aws.region":         {"aws", "region"},
		"profiles[0].region": {"profiles", "0", "region"},
		"0":                  {"0"},
	}
	for want, path := range tests {
		if got := formatPath(path); got != want {
			t.Errorf("formatPath(%q) = %q, want %q", path, got, want)
		}
	}
}
