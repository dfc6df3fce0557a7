// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package cli // import "github.com/citizencage/drupal-8-twig-helpers/internal/cli"

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v4"

	"github.com/citizencage/drupal-8-twig-helpers/internal/logging"
	"github.com/citizencage/drupal-8-twig-helpers/internal/template"
)

var renderFlags struct {
	templates string
	data      string
	list      bool
}

var renderCmd = cobra.Command{
	Use:   "render [TEMPLATE]",
	Short: "Render html/template with helper functions",
	Long: `Render html/template with helper functions.

Templates are named by base name of their files. Files matched by --templates
replace embedded templates with the same name. Template data is YAML or JSON
from --data file or stdin.`,
	Example: `
$ projecthelper render --list
$ echo 'type: news' | projecthelper render archive.html
$ projecthelper render -t 'theme/*.html' -f node.yaml teaser.html
`,
	Args: cobra.MaximumNArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		if !renderFlags.list && len(args) == 0 {
			return cmd.Usage() //nolint:wrapcheck // usage error
		}

		return withSource(cmd.Context(),
			func(ctx context.Context, src *source) error {
				engine := template.NewEngine(src.helpers())
				if err := parseTemplates(engine); err != nil {
					return err
				}

				w := cmd.OutOrStdout()
				if renderFlags.list {
					for _, name := range engine.Names() {
						fmt.Fprintln(w, name)
					}
					return nil
				}

				data, err := renderData(cmd)
				if err != nil {
					return err
				}

				b, err := engine.Render(ctx, args[0], data)
				if err != nil {
					return err
				}
				_, err = w.Write(b)
				return err
			})
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderFlags.templates, "templates", "t", "",
		"Glob pattern of template files")
	renderCmd.Flags().StringVarP(&renderFlags.data, "data-file", "f", "",
		`YAML or JSON file with template data, "-" for stdin`)
	renderCmd.Flags().BoolVarP(&renderFlags.list, "list", "l", false,
		"List names of templates")
}

func parseTemplates(engine *template.Engine) error {
	if err := engine.ParseTemplates(); err != nil {
		return err
	} else if renderFlags.templates != "" {
		return engine.ParseGlob(renderFlags.templates)
	}
	return nil
}

func renderData(cmd *cobra.Command) (map[string]any, error) {
	var r io.Reader
	switch renderFlags.data {
	case "":
		if interactive(cmd) {
			return nil, nil
		}
		r = cmd.InOrStdin()
	case "-":
		r = cmd.InOrStdin()
	default:
		f, err := os.Open(renderFlags.data)
		if err != nil {
			return nil, fmt.Errorf("template data: %w", err)
		}
		defer f.Close()
		r = f
	}

	var data map[string]any
	if err := yaml.NewDecoder(r).Decode(&data); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("template data: decode: %w", err)
	}
	logging.FromContext(cmd.Context()).Debug("Template data",
		slog.Int("keys", len(data)))
	return data, nil
}
