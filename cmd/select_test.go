package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/smazurov/framefit/internal/resolution"
)

func TestSelectCmd(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{
			name: "default portrait target",
			args: []string{"1920x1080", "1280x720", "640x480"},
			want: "1920x1080 (exact)\n",
		},
		{
			name: "comma separated candidates",
			args: []string{"--target", "4x3", "640x480,800x600"},
			want: "800x600 (aspect)\n",
		},
		{
			name: "fallback",
			args: []string{"-t", "1280x800", "1280x960", "1280x720"},
			want: "1280x960 (fallback)\n",
		},
		{
			name: "picture matches preview",
			args: []string{"--preview", "1280x720", "4000x3000", "1280x720"},
			want: "1280x720 (preview)\n",
		},
		{
			name: "json",
			args: []string{"--json", "640x480"},
			want: `{"resolution":"640x480","tier":"fallback"}` + "\n",
		},
		{name: "bad candidate", args: []string{"640x0"}, wantErr: true},
		{name: "bad target", args: []string{"-t", "wide", "640x480"}, wantErr: true},
		{name: "bad preview", args: []string{"--preview", "x", "640x480"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := CreateSelectCmd()
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Execute() output %q, want error", out.String())
				}
				if !errors.Is(err, resolution.ErrInvalidInput) {
					t.Errorf("Execute() error = %v, want INVALID_INPUT", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if out.String() != tt.want {
				t.Errorf("output = %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestSelectCmdRequiresCandidates(t *testing.T) {
	cmd := CreateSelectCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "arg") {
		t.Errorf("Execute() error = %v, want argument error", err)
	}
}

func TestSelectCmdRecordsNoMetrics(t *testing.T) {
	before := selectionSamples(t)
	var out bytes.Buffer
	if err := runSelect(&out, []string{"1920x1080", "1280x720"}, "1080x1920", "", false); err != nil {
		t.Fatalf("runSelect() error = %v", err)
	}
	if after := selectionSamples(t); after != before {
		t.Errorf("framefit_selections_total changed from %v to %v", before, after)
	}
}

func selectionSamples(t *testing.T) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatal(err)
	}
	var total float64
	for _, mf := range families {
		if mf.GetName() != "framefit_selections_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}
