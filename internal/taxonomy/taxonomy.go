// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package taxonomy // import "github.com/citizencage/drupal-8-twig-helpers/internal/taxonomy"

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strconv"
	"strings"

	"github.com/citizencage/drupal-8-twig-helpers/internal/logging"
	"github.com/citizencage/drupal-8-twig-helpers/internal/model"
	"github.com/citizencage/drupal-8-twig-helpers/internal/sanitizer"
)

const (
	DefaultSystemPrefix = "/taxonomy/term/"

	// ListOptions renders terms as <option> elements, any other list type
	// renders <li> elements.
	ListOptions = "options"
)

// TermRepository loads taxonomy terms. Methods return nil and no error if
// the term doesn't exist.
type TermRepository interface {
	TermByID(ctx context.Context, id int64) (*model.Term, error)
	TermByName(ctx context.Context, name, vocabulary string) (*model.Term, error)
	// TermTree returns all terms of the vocabulary in tree order: parents
	// before children, siblings by weight and name.
	TermTree(ctx context.Context, vocabulary string) ([]model.Term, error)
}

// AliasResolver translates between system paths and URL aliases. Methods
// return an empty string if nothing found.
type AliasResolver interface {
	AliasByPath(ctx context.Context, path string) (string, error)
	PathByAlias(ctx context.Context, alias string) (string, error)
}

// Helper renders taxonomy terms for templates.
type Helper struct {
	terms        TermRepository
	aliases      AliasResolver
	systemPrefix string
}

func NewHelper(terms TermRepository, aliases AliasResolver) *Helper {
	return &Helper{
		terms:        terms,
		aliases:      aliases,
		systemPrefix: DefaultSystemPrefix,
	}
}

// WithSystemPrefix changes prefix of term system paths, "/taxonomy/term/" by
// default.
func (self *Helper) WithSystemPrefix(prefix string) *Helper {
	self.systemPrefix = prefix
	return self
}

// CommaSeparatedTerms returns names of referenced terms joined by ", ". With
// non-empty tag every name is wrapped into this tag, optionally with class
// attribute. References to unknown terms are skipped.
func (self *Helper) CommaSeparatedTerms(ctx context.Context,
	refs []model.TermReference, tag, class string,
) (string, error) {
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		term, err := self.terms.TermByID(ctx, ref.TargetID)
		if err != nil {
			return "", fmt.Errorf("taxonomy: load referenced term: %w", err)
		} else if term == nil {
			logging.FromContext(ctx).Warn("Skip reference to unknown term",
				slog.Int64("term_id", ref.TargetID))
			continue
		}
		names = append(names, html.EscapeString(term.Name))
	}

	tag = strings.TrimSpace(tag)
	if tag == "" {
		return strings.Join(names, ", "), nil
	}

	var openTag string
	if class = strings.TrimSpace(class); class != "" {
		openTag = "<" + tag + ` class="` + html.EscapeString(class) + `">`
	} else {
		openTag = "<" + tag + ">"
	}
	closeTag := "</" + tag + ">"

	var b strings.Builder
	for i, name := range names {
		b.WriteString(openTag)
		b.WriteString(name)
		if i < len(names)-1 {
			b.WriteString(", ")
		}
		b.WriteString(closeTag)
	}
	return b.String(), nil
}

// GenerateTaxonomyTerms returns markup of all terms of the vocabulary, as
// <option> elements for ListOptions or empty listType and <li> elements
// otherwise.
func (self *Helper) GenerateTaxonomyTerms(ctx context.Context, vocabulary,
	listType string,
) (string, error) {
	terms, err := self.terms.TermTree(ctx, vocabulary)
	if err != nil {
		return "", fmt.Errorf("taxonomy: load terms of %q: %w", vocabulary, err)
	}

	var b strings.Builder
	for i := range terms {
		term := &terms[i]
		name := html.EscapeString(term.Name)
		if listType == "" || listType == ListOptions {
			b.WriteString(`<option value="` + strconv.FormatInt(term.ID, 10) +
				`">` + name + "</option>")
		} else {
			b.WriteString("<li>" + name + "</li>")
		}
	}
	return b.String(), nil
}

// TaxonomyAliasFromTerm returns URL alias of the term page.
func (self *Helper) TaxonomyAliasFromTerm(ctx context.Context, tid int64,
) (string, error) {
	systemPath := model.TermSystemPath(self.systemPrefix, tid)
	alias, err := self.aliases.AliasByPath(ctx, systemPath)
	if err != nil {
		return "", fmt.Errorf("taxonomy: alias of %q: %w", systemPath, err)
	}
	return alias, nil
}

// CustomizeTermAlias replaces everything up to the last slash of the term
// alias with replacement, keeping the term slug. For instance alias
// /topics/heart-health with replacement /doctors/ becomes
// /doctors/heart-health.
func (self *Helper) CustomizeTermAlias(ctx context.Context, tid int64,
	replacement string,
) (string, error) {
	alias, err := self.TaxonomyAliasFromTerm(ctx, tid)
	if err != nil || alias == "" {
		return alias, err
	}
	return replaceAliasPrefix(alias, replacement), nil
}

func replaceAliasPrefix(alias, replacement string) string {
	// Like ^.*/\s* the prefix ends at the last slash of the first line, blanks
	// after it are dropped, line breaks included.
	line, _, _ := strings.Cut(alias, "\n")
	i := strings.LastIndexByte(line, '/')
	if i < 0 {
		return alias
	}
	return replacement + strings.TrimLeft(alias[i+1:], " \t\n\r\f\v")
}

// TaxonomyTermFromAlias returns the term whose page has the given URL alias,
// or nil.
func (self *Helper) TaxonomyTermFromAlias(ctx context.Context, alias string,
) (*model.Term, error) {
	alias = sanitizer.RemoveInvalidChars(alias)
	systemPath, err := self.aliases.PathByAlias(ctx, alias)
	if err != nil {
		return nil, fmt.Errorf("taxonomy: system path of %q: %w", alias, err)
	} else if systemPath == "" {
		return nil, nil
	}

	tid, err := strconv.ParseInt(sanitizer.RemoveNonNumeric(systemPath), 10, 64)
	if err != nil {
		logging.FromContext(ctx).Debug("Alias doesn't point to a term",
			slog.String("alias", alias),
			slog.String("system_path", systemPath))
		return nil, nil
	}
	return self.term(ctx, tid)
}

func (self *Helper) term(ctx context.Context, tid int64) (*model.Term, error) {
	term, err := self.terms.TermByID(ctx, tid)
	if err != nil {
		return nil, fmt.Errorf("taxonomy: load term %d: %w", tid, err)
	}
	return term, nil
}

// TidByName returns id of the term with the given name, or 0. Empty
// vocabulary matches any vocabulary.
func (self *Helper) TidByName(ctx context.Context, name, vocabulary string,
) (int64, error) {
	term, err := self.terms.TermByName(ctx, name, vocabulary)
	if err != nil {
		return 0, fmt.Errorf("taxonomy: find term %q: %w", name, err)
	} else if term == nil {
		return 0, nil
	}
	return term.ID, nil
}

// TermName returns name of the term or empty string.
func (self *Helper) TermName(ctx context.Context, tid int64) (string, error) {
	term, err := self.term(ctx, tid)
	if err != nil || term == nil {
		return "", err
	}
	return term.Name, nil
}

// TermDescription returns description of the term or empty string.
func (self *Helper) TermDescription(ctx context.Context, tid int64,
) (string, error) {
	term, err := self.term(ctx, tid)
	if err != nil || term == nil {
		return "", err
	}
	return term.Description, nil
}
