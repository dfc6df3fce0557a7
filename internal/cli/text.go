// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package cli // import "github.com/citizencage/drupal-8-twig-helpers/internal/cli"

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/citizencage/drupal-8-twig-helpers/internal/config"
	"github.com/citizencage/drupal-8-twig-helpers/internal/crypto"
	"github.com/citizencage/drupal-8-twig-helpers/internal/format"
	"github.com/citizencage/drupal-8-twig-helpers/internal/sanitizer"
)

var truncateFlags struct {
	length int
	suffix string
	words  bool
	plain  bool
}

var truncateCmd = cobra.Command{
	Use:   "truncate [TEXT]",
	Short: "Shorten HTML text, keeping its markup well formed",
	Long: `Shorten HTML text, keeping its markup well formed.

Without TEXT the text is read from stdin. Length and suffix default to
TRUNCATE_LENGTH and TRUNCATE_SUFFIX.`,
	Example: `
$ echo '<p>Hello <b>world</b></p>' | projecthelper truncate -l 8
<p>Hello...</p>
`,
	Args: cobra.MaximumNArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := textArg(cmd, args)
		if err != nil {
			return err
		}

		length := config.Opts.TruncateLength()
		if cmd.Flags().Changed("length") {
			length = truncateFlags.length
		}
		suffix := config.Opts.TruncateSuffix()
		if cmd.Flags().Changed("suffix") {
			suffix = truncateFlags.suffix
		}

		s := sanitizer.TruncateHTML(text, length,
			sanitizer.WithSuffix(suffix),
			sanitizer.WithExactCut(!truncateFlags.words),
			sanitizer.WithHTML(!truncateFlags.plain))
		_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
		return err
	},
}

var formatPhoneCmd = cobra.Command{
	Use:   "format-phone NUMBER",
	Short: "Format a North American phone number",
	Example: `
$ projecthelper format-phone +1.555.123.4567
(555) 123-4567
`,
	Args: cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), format.Phone(args[0]))
		return err
	},
}

var randHashCmd = cobra.Command{
	Use:   "rand-hash [LENGTH]",
	Short: "Generate random hex string, like an element id",
	Args:  cobra.MaximumNArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		length := crypto.DefaultHashLength
		if len(args) > 0 {
			if _, err := fmt.Sscan(args[0], &length); err != nil {
				return fmt.Errorf("invalid length %q: %w", args[0], err)
			}
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), crypto.RandHash(length))
		return err
	},
}

var videoEmbedFlags struct {
	poster string
	source string
}

var videoEmbedCmd = cobra.Command{
	Use:   "video-embed URL",
	Short: "Print markup of embedded YouTube or Vimeo player",
	Args:  cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		e := newEmbedder()
		var s string
		var err error
		if videoEmbedFlags.poster != "" {
			s, err = e.EmbedWithPoster(args[0], videoEmbedFlags.poster,
				videoEmbedFlags.source)
		} else {
			s, err = e.Embed(args[0], videoEmbedFlags.source)
		}
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
		return err
	},
}

func init() {
	truncateCmd.Flags().IntVarP(&truncateFlags.length, "length", "l", 0,
		"Maximum visible length, suffix included")
	truncateCmd.Flags().StringVarP(&truncateFlags.suffix, "suffix", "s", "",
		"Appended to truncated text")
	truncateCmd.Flags().BoolVarP(&truncateFlags.words, "words", "w", false,
		"Don't cut inside a word")
	truncateCmd.Flags().BoolVarP(&truncateFlags.plain, "plain", "p", false,
		"Input is plain text, not HTML")

	videoEmbedCmd.Flags().StringVarP(&videoEmbedFlags.poster, "poster", "p", "",
		"URL of poster image, starts the player after click on it")
	videoEmbedCmd.Flags().StringVarP(&videoEmbedFlags.source, "source", "s", "",
		"youtube or vimeo, guessed from URL by default")
}

// textArg returns the first argument or, without arguments, everything from
// stdin.
func textArg(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	if interactive(cmd) {
		return "", errors.New("expected text as argument or from stdin")
	}

	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimSuffix(string(b), "\n"), nil
}

// interactive reports whether stdin of cmd is a terminal.
func interactive(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
