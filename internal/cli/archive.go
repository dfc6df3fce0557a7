// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package cli // import "github.com/citizencage/drupal-8-twig-helpers/internal/cli"

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var monthYearListType string

var monthYearCmd = cobra.Command{
	Use:   "month-year TYPE",
	Short: "Print months with published nodes of content type, newest first",
	Example: `
$ projecthelper month-year news
<option value="2024-05">May 2024</option><option value="2023-12">December 2023</option>
`,
	Args: cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		return withSource(cmd.Context(),
			func(ctx context.Context, src *source) error {
				s, err := src.helpers().Archive.GenerateMonthYearNodeFilter(ctx,
					args[0], monthYearListType)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
				return err
			})
	},
}

func init() {
	monthYearCmd.Flags().StringVarP(&monthYearListType, "list", "l", "options",
		`"options" for <option> elements, anything else for <li>`)
}
