// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package sanitizer // import "github.com/citizencage/drupal-8-twig-helpers/internal/sanitizer"

import (
	"iter"
	"strings"

	"golang.org/x/net/html"
)

type TokenKind int

const (
	TextToken TokenKind = iota
	StartTagToken
	EndTagToken
	VoidTagToken
	// Comments and doctypes.
	OtherToken
)

// Token is one piece of markup or text, exactly as it appears in the source.
type Token struct {
	Kind TokenKind
	// Lower-cased tag name, empty for text and comments.
	Name string
	Raw  string
}

var voidElements = map[string]struct{}{
	"area":     {},
	"base":     {},
	"basefont": {},
	"br":       {},
	"col":      {},
	"embed":    {},
	"frame":    {},
	"hr":       {},
	"img":      {},
	"input":    {},
	"isindex":  {},
	"keygen":   {},
	"link":     {},
	"meta":     {},
	"param":    {},
	"source":   {},
	"track":    {},
	"wbr":      {},
}

// Tokens splits s into tags and text in document order. Concatenating Raw of
// all tokens gives s back.
func Tokens(s string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		z := html.NewTokenizer(strings.NewReader(s))
		for {
			tt := z.Next()
			if tt == html.ErrorToken {
				return
			}

			tok := Token{Raw: string(z.Raw())}
			switch tt {
			case html.TextToken:
				tok.Kind = TextToken
			case html.StartTagToken:
				tok.Name = tagName(z)
				if _, ok := voidElements[tok.Name]; ok {
					tok.Kind = VoidTagToken
				} else {
					tok.Kind = StartTagToken
				}
			case html.SelfClosingTagToken:
				tok.Kind, tok.Name = VoidTagToken, tagName(z)
			case html.EndTagToken:
				tok.Kind, tok.Name = EndTagToken, tagName(z)
			default:
				tok.Kind = OtherToken
			}

			if !yield(tok) {
				return
			}
		}
	}
}

func tagName(z *html.Tokenizer) string {
	name, _ := z.TagName()
	return strings.ToLower(string(name))
}
