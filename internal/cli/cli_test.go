// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const siteData = "testdata/site.yaml"

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(&Cmd)

	var stdout, stderr bytes.Buffer
	Cmd.SetArgs(args)
	Cmd.SetIn(strings.NewReader(stdin))
	Cmd.SetOut(&stdout)
	Cmd.SetErr(&stderr)
	err := Cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

// resetFlags restores default values of flags, because cobra keeps them
// between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if f.Changed {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func clearenv(t *testing.T) {
	t.Helper()
	os.Clearenv()
	t.Setenv("LOG_LEVEL", "error")
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		stdin string
		want  string
	}{
		{
			name:  "truncate stdin",
			args:  []string{"truncate", "-l", "8"},
			stdin: "<p>Hello <b>world</b></p>\n",
			want:  "<p>Hello...</p>\n",
		},
		{
			name: "truncate words",
			args: []string{"truncate", "-l", "9", "-s", "!", "-w", "Hello world"},
			want: "Hello!\n",
		},
		{
			name: "truncate short",
			args: []string{"truncate", "Short text"},
			want: "Short text\n",
		},
		{
			name: "format phone",
			args: []string{"format-phone", "+1.555.123.4567"},
			want: "(555) 123-4567\n",
		},
		{
			name: "terms",
			args: []string{"--data", siteData, "terms", "specialties"},
			want: `<option value="1">Medicine</option>` +
				`<option value="3">Cardiology</option>` +
				`<option value="2">Surgery</option>` +
				`<option value="4">Arts</option>` + "\n",
		},
		{
			name: "terms li",
			args: []string{"--data", siteData, "terms", "-l", "li", "locations"},
			want: "<li>Downtown</li>\n",
		},
		{
			name: "comma terms",
			args: []string{
				"--data", siteData, "comma-terms", "--tag", "span", "--class", "tag",
				"3", "99", "10",
			},
			want: `<span class="tag">Cardiology, </span>` +
				`<span class="tag">Downtown</span>` + "\n",
		},
		{
			name: "term alias",
			args: []string{"--data", siteData, "term-alias", "3"},
			want: "/topics/heart-health\n",
		},
		{
			name: "custom term alias",
			args: []string{"--data", siteData, "term-alias", "-r", "/doctors/", "3"},
			want: "/doctors/heart-health\n",
		},
		{
			name: "term from alias",
			args: []string{"--data", siteData, "term-from-alias", "/topics/heart-health"},
			want: "ID: 3\nVocabulary: specialties\nName: Cardiology\n" +
				"Description: Heart and vessels\n",
		},
		{
			name: "tid",
			args: []string{"--data", siteData, "tid", "-v", "specialties", "cardiology"},
			want: "ID: 3\nName: Cardiology\nDescription: Heart and vessels\n",
		},
		{
			name: "month year",
			args: []string{"--data", siteData, "month-year", "news"},
			want: `<option value="2024-05">May 2024</option>` +
				`<option value="2023-12">December 2023</option>` + "\n",
		},
		{
			name: "stats",
			args: []string{"--data", siteData, "stats"},
			want: "terms\tlocations\t1\nterms\tspecialties\t4\nnodes\tnews\t3\n",
		},
		{
			name: "render list",
			args: []string{"--data", siteData, "render", "--list", "-t", "testdata/templates/*.html"},
			want: "archive.html\nnode.html\nteaser.html\nterm.html\nvideo.html\n",
		},
		{
			name: "render",
			args: []string{
				"--data", siteData, "render", "-t", "testdata/templates/*.html",
				"node.html",
			},
			stdin: "title: Heart & Co\nterms: [3, 10]\n",
			want:  "<h1>Heart &amp; Co</h1>\n<p>Cardiology, Downtown</p>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearenv(t)
			got, err := execute(t, tt.stdin, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCommands_errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		err  string
	}{
		{"bad tid", []string{"--data", siteData, "term-alias", "x"}, "invalid term id"},
		{"no term", []string{"--data", siteData, "term-from-alias", "/none"}, "no term has alias"},
		{"unknown name", []string{"--data", siteData, "tid", "Nothing"}, "term not found"},
		{"missing data", []string{"--data", "testdata/missing.yaml", "stats"}, "site data"},
		{"bad length", []string{"rand-hash", "many"}, "invalid length"},
		{"missing template", []string{"--data", siteData, "render", "none.html"}, "does not exists"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearenv(t)
			_, err := execute(t, "", tt.args...)
			require.ErrorContains(t, err, tt.err)
		})
	}
}

func TestRandHash(t *testing.T) {
	clearenv(t)
	got, err := execute(t, "", "rand-hash", "12")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{12}\n$`), got)
}

func TestVideoEmbed(t *testing.T) {
	clearenv(t)
	got, err := execute(t, "", "video-embed", "https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Contains(t, got, `src="https://www.youtube.com/embed/dQw4w9WgXcQ?`)

	got, err = execute(t, "", "video-embed", "-p", "/poster.jpg",
		"https://vimeo.com/76979871")
	require.NoError(t, err)
	assert.Contains(t, got, `data-src="https://player.vimeo.com/video/76979871?autoplay=1`)
	assert.Contains(t, got, "background-image")
}

func TestConfigDump(t *testing.T) {
	clearenv(t)
	t.Setenv("TRUNCATE_LENGTH", "42")
	got, err := execute(t, "", "config-dump")
	require.NoError(t, err)
	assert.Contains(t, got, "TRUNCATE_LENGTH=42\n")
	assert.Contains(t, got, "LOG_LEVEL=error\n")

	got, err = execute(t, "", "--debug", "config-dump")
	require.NoError(t, err)
	assert.Contains(t, got, "LOG_LEVEL=debug\n")
}

func TestInfo(t *testing.T) {
	clearenv(t)
	got, err := execute(t, "", "info")
	require.NoError(t, err)
	assert.Contains(t, got, "Version: Development Version\n")
	assert.Contains(t, got, "Go Version: go")
}

func TestMetricsTextfile(t *testing.T) {
	clearenv(t)
	filename := filepath.Join(t.TempDir(), "projecthelper.prom")
	t.Setenv("METRICS_TEXTFILE", filename)

	_, err := execute(t, "", "--data", siteData, "comma-terms", "3", "3", "10")
	require.NoError(t, err)

	b, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Contains(t, string(b), `projecthelper_term_cache_requests{result="hit"} 1`)
	assert.Contains(t, string(b), `projecthelper_term_cache_requests{result="miss"} 2`)
}
