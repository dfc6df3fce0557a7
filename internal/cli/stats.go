// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package cli // import "github.com/citizencage/drupal-8-twig-helpers/internal/cli"

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var statsCmd = cobra.Command{
	Use:   "stats",
	Short: "Print number of terms by vocabulary and published nodes by type",
	Args:  cobra.ExactArgs(0),

	RunE: func(cmd *cobra.Command, args []string) error {
		return withSource(cmd.Context(),
			func(ctx context.Context, src *source) error {
				terms, nodes, err := src.counts(ctx)
				if err != nil {
					return err
				}

				w := cmd.OutOrStdout()
				if src.store != nil {
					size, err := src.store.DBSize(ctx)
					if err != nil {
						return err
					}
					fmt.Fprintf(w, "database\tversion\t%s\n",
						src.store.DatabaseVersion(ctx))
					fmt.Fprintf(w, "database\tsize\t%s\n", size)
				}
				for _, k := range slices.Sorted(maps.Keys(terms)) {
					fmt.Fprintf(w, "terms\t%s\t%d\n", k, terms[k])
				}
				for _, k := range slices.Sorted(maps.Keys(nodes)) {
					fmt.Fprintf(w, "nodes\t%s\t%d\n", k, nodes[k])
				}
				return nil
			})
	},
}

func (self *source) counts(ctx context.Context) (terms, nodes map[string]int,
	err error,
) {
	if self.siteData != nil {
		terms, nodes = self.siteData.Counts()
		return terms, nodes, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		terms, err = self.store.CountTerms(ctx)
		return err
	})
	g.Go(func() (err error) {
		nodes, err = self.store.CountNodes(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err //nolint:wrapcheck // already wrapped
	}
	return terms, nodes, nil
}
