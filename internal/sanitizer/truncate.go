// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package sanitizer // import "github.com/citizencage/drupal-8-twig-helpers/internal/sanitizer"

import (
	"slices"
	"strings"
	"unicode/utf8"
)

const DefaultSuffix = "..."

type truncateConfig struct {
	suffix   string
	exactCut bool
	html     bool
}

type TruncateOption func(c *truncateConfig)

// WithSuffix sets the string appended when the text was shortened.
func WithSuffix(s string) TruncateOption {
	return func(c *truncateConfig) { c.suffix = s }
}

// WithExactCut allows (true) or forbids (false) cutting inside a word.
func WithExactCut(exact bool) TruncateOption {
	return func(c *truncateConfig) { c.exactCut = exact }
}

// WithHTML enables or disables handling of HTML markup.
func WithHTML(enabled bool) TruncateOption {
	return func(c *truncateConfig) { c.html = enabled }
}

// TruncateHTML shortens text to maxLength visible characters, the suffix
// included. Tags don't count and entity references count as one character
// each. Tags left open by the cut are closed after the suffix.
func TruncateHTML(text string, maxLength int, opts ...TruncateOption) string {
	c := truncateConfig{suffix: DefaultSuffix, exactCut: true, html: true}
	for _, fn := range opts {
		fn(&c)
	}
	maxLength = max(maxLength, 0)

	if !c.html {
		return truncatePlain(text, maxLength, &c)
	}

	if PlainTextLength(text) <= maxLength {
		return text
	}

	t := truncator{
		maxLength: maxLength,
		budget:    utf8.RuneCountInString(c.suffix),
		cutAt:     -1,
	}
	t.walk(text)

	if !c.exactCut {
		t.cutAtWordBoundary()
	}

	t.b.WriteString(c.suffix)
	for _, name := range t.openTags {
		t.b.WriteString("</" + name + ">")
	}
	return t.b.String()
}

func truncatePlain(text string, maxLength int, c *truncateConfig) string {
	if utf8.RuneCountInString(text) <= maxLength {
		return text
	}

	keep := max(maxLength-utf8.RuneCountInString(c.suffix), 0)
	s := text[:runeOffset(text, keep)]
	if !c.exactCut {
		if i := strings.LastIndexByte(s, ' '); i >= 0 {
			s = s[:i]
		} else {
			s = ""
		}
	}
	return s + c.suffix
}

// runeOffset returns the byte offset of the n-th rune of s.
func runeOffset(s string, n int) int {
	for i := range s {
		if n == 0 {
			return i
		}
		n--
	}
	return len(s)
}

type truncator struct {
	b         strings.Builder
	openTags  openTags
	maxLength int
	budget    int

	// Last position where the output may be cut without splitting a word and
	// the open tags at that position.
	cutAt       int
	cutOpenTags openTags
}

func (self *truncator) walk(text string) {
	var seenText bool
	for tok := range Tokens(text) {
		if self.budget >= self.maxLength {
			return
		}

		switch tok.Kind {
		case VoidTagToken, OtherToken:
		case EndTagToken:
			self.openTags.Remove(tok.Name)
		case StartTagToken:
			self.openTags.Push(tok.Name)
		case TextToken:
			if !seenText {
				seenText = true
				self.rememberCut(self.b.Len())
			}
			if !self.writeText(tok.Raw) {
				return
			}
			continue
		}
		self.b.WriteString(tok.Raw)
	}
}

// writeText writes the text token, or the part of it which still fits. It
// returns false when the budget was exhausted by this token.
func (self *truncator) writeText(s string) bool {
	n := visibleLength(s)
	if self.budget+n > self.maxLength {
		prefix, _ := visiblePrefix(s, self.maxLength-self.budget)
		self.appendText(prefix)
		return false
	}

	self.appendText(s)
	self.budget += n
	return true
}

func (self *truncator) appendText(s string) {
	offset := self.b.Len()
	self.b.WriteString(s)
	if i := strings.LastIndexByte(s, ' '); i >= 0 {
		self.rememberCut(offset + i)
	}
}

func (self *truncator) rememberCut(at int) {
	self.cutAt = at
	self.cutOpenTags = slices.Clone(self.openTags)
}

func (self *truncator) cutAtWordBoundary() {
	if self.cutAt < 0 {
		return
	}
	s := self.b.String()[:self.cutAt]
	self.b.Reset()
	self.b.WriteString(s)
	self.openTags = self.cutOpenTags
}

// openTags is ordered from the innermost tag to the outermost one.
type openTags []string

func (self *openTags) Push(name string) {
	*self = slices.Insert(*self, 0, name)
}

// Remove deletes the first tag with the given name. Unbalanced markup is
// tolerated, so it's not an error if there is no such tag.
func (self *openTags) Remove(name string) bool {
	i := slices.Index(*self, name)
	if i < 0 {
		return false
	}
	*self = slices.Delete(*self, i, i+1)
	return true
}
