// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package cli // import "github.com/citizencage/drupal-8-twig-helpers/internal/cli"

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/citizencage/drupal-8-twig-helpers/internal/model"
)

var listType string

var termsCmd = cobra.Command{
	Use:   "terms VOCABULARY",
	Short: "Print terms of vocabulary as <option> or <li> elements",
	Args:  cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		return withSource(cmd.Context(),
			func(ctx context.Context, src *source) error {
				s, err := src.taxonomy().GenerateTaxonomyTerms(ctx, args[0],
					listType)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
				return err
			})
	},
}

var commaTermsFlags struct {
	tag   string
	class string
}

var commaTermsCmd = cobra.Command{
	Use:   "comma-terms TID...",
	Short: "Print names of terms separated by comma",
	Example: `
$ projecthelper comma-terms --tag span --class tag 3 10
<span class="tag">Cardiology, </span><span class="tag">Downtown</span>
`,
	Args: cobra.MinimumNArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}

		return withSource(cmd.Context(),
			func(ctx context.Context, src *source) error {
				s, err := src.taxonomy().CommaSeparatedTerms(ctx,
					model.TermReferences(ids...), commaTermsFlags.tag,
					commaTermsFlags.class)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
				return err
			})
	},
}

var replaceAliasPrefix string

var termAliasCmd = cobra.Command{
	Use:   "term-alias TID",
	Short: "Print URL alias of term page",
	Example: `
$ projecthelper term-alias 3
/topics/heart-health
$ projecthelper term-alias --replace /doctors/ 3
/doctors/heart-health
`,
	Args: cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}

		return withSource(cmd.Context(),
			func(ctx context.Context, src *source) error {
				var alias string
				var err error
				if cmd.Flags().Changed("replace") {
					alias, err = src.taxonomy().CustomizeTermAlias(ctx, ids[0],
						replaceAliasPrefix)
				} else {
					alias, err = src.taxonomy().TaxonomyAliasFromTerm(ctx, ids[0])
				}
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), alias)
				return err
			})
	},
}

var termFromAliasCmd = cobra.Command{
	Use:   "term-from-alias ALIAS",
	Short: "Print term, which page has URL alias",
	Args:  cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		return withSource(cmd.Context(),
			func(ctx context.Context, src *source) error {
				term, err := src.taxonomy().TaxonomyTermFromAlias(ctx, args[0])
				if err != nil {
					return err
				} else if term == nil {
					return fmt.Errorf("no term has alias %q", args[0])
				}
				return printTerm(cmd, term)
			})
	},
}

var tidVocabulary string

var tidCmd = cobra.Command{
	Use:   "tid NAME",
	Short: "Print id, name and description of term with name",
	Args:  cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		return withSource(cmd.Context(),
			func(ctx context.Context, src *source) error {
				h := src.taxonomy()
				tid, err := h.TidByName(ctx, args[0], tidVocabulary)
				if err != nil {
					return err
				} else if tid == 0 {
					return fmt.Errorf("term not found: %q", args[0])
				}

				name, err := h.TermName(ctx, tid)
				if err != nil {
					return err
				}
				description, err := h.TermDescription(ctx, tid)
				if err != nil {
					return err
				}

				w := cmd.OutOrStdout()
				fmt.Fprintln(w, "ID:", tid)
				fmt.Fprintln(w, "Name:", name)
				_, err = fmt.Fprintln(w, "Description:", description)
				return err
			})
	},
}

func init() {
	termsCmd.Flags().StringVarP(&listType, "list", "l", "options",
		`"options" for <option> elements, anything else for <li>`)

	commaTermsCmd.Flags().StringVarP(&commaTermsFlags.tag, "tag", "t", "",
		"Wrap every name into this tag")
	commaTermsCmd.Flags().StringVarP(&commaTermsFlags.class, "class", "", "",
		"Class attribute of the tag")

	termAliasCmd.Flags().StringVarP(&replaceAliasPrefix, "replace", "r", "",
		"Replace alias up to the last slash")

	tidCmd.Flags().StringVarP(&tidVocabulary, "vocabulary", "v", "",
		"Search only in this vocabulary")
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, len(args))
	for i, s := range args {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid term id %q: %w", s, err)
		}
		ids[i] = id
	}
	return ids, nil
}

func printTerm(cmd *cobra.Command, term *model.Term) error {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "ID:", term.ID)
	fmt.Fprintln(w, "Vocabulary:", term.Vocabulary)
	fmt.Fprintln(w, "Name:", term.Name)
	_, err := fmt.Fprintln(w, "Description:", term.Description)
	return err
}
