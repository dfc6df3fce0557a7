// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package sitedata // import "github.com/citizencage/drupal-8-twig-helpers/internal/sitedata"

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"go.yaml.in/yaml/v4"

	"github.com/citizencage/drupal-8-twig-helpers/internal/config"
	"github.com/citizencage/drupal-8-twig-helpers/internal/model"
)

// Document is a YAML export of site content, used instead of the database.
type Document struct {
	Terms   []model.Term      `yaml:"terms" validate:"dive"`
	Aliases []model.PathAlias `yaml:"aliases" validate:"dive"`
	Nodes   []model.Node      `yaml:"nodes" validate:"dive"`
}

// Store serves site content from a Document. It's read only after load and
// safe for concurrent use.
type Store struct {
	terms       map[int64]*model.Term
	vocabs      map[string][]*model.Term
	aliasByPath map[string]string
	pathByAlias map[string]string
	nodes       map[string][]model.Node
}

// Load reads the YAML document from file. Files with .gz or .zst extension
// are decompressed.
func Load(filename string) (*Store, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("sitedata: %w", err)
	}
	defer f.Close()

	r, err := decompress(filename, f)
	if err != nil {
		return nil, fmt.Errorf("sitedata: decompress %q: %w", filename, err)
	}
	defer r.Close()

	s, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("sitedata: load %q: %w", filename, err)
	}
	return s, nil
}

func decompress(filename string, r io.Reader) (io.ReadCloser, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".gz":
		return gzip.NewReader(r) //nolint:wrapcheck // wrapped by caller
	case ".zst":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err //nolint:wrapcheck // wrapped by caller
		}
		return zr.IOReadCloser(), nil
	}
	return io.NopCloser(r), nil
}

// Parse reads the YAML document from r.
func Parse(r io.Reader) (*Store, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("sitedata: decode yaml: %w", err)
	}
	return New(&doc)
}

// New validates the document and indexes its content.
func New(doc *Document) (*Store, error) {
	if err := config.Validator().Struct(doc); err != nil {
		return nil, fmt.Errorf("sitedata: validate: %w", err)
	}

	s := &Store{
		terms:       make(map[int64]*model.Term, len(doc.Terms)),
		vocabs:      make(map[string][]*model.Term),
		aliasByPath: make(map[string]string, len(doc.Aliases)),
		pathByAlias: make(map[string]string, len(doc.Aliases)),
		nodes:       make(map[string][]model.Node),
	}

	for i := range doc.Terms {
		t := &doc.Terms[i]
		if _, ok := s.terms[t.ID]; ok {
			return nil, fmt.Errorf("sitedata: duplicate term id=%d", t.ID)
		}
		s.terms[t.ID] = t
		s.vocabs[t.Vocabulary] = append(s.vocabs[t.Vocabulary], t)
	}

	for _, t := range s.terms {
		if t.ParentID == 0 {
			continue
		}
		parent, ok := s.terms[t.ParentID]
		if !ok {
			return nil, fmt.Errorf("sitedata: term id=%d: unknown parent id=%d",
				t.ID, t.ParentID)
		} else if parent.Vocabulary != t.Vocabulary {
			return nil, fmt.Errorf(
				"sitedata: term id=%d: parent id=%d from another vocabulary",
				t.ID, t.ParentID)
		}
	}

	for _, a := range doc.Aliases {
		if _, ok := s.pathByAlias[a.Alias]; ok {
			return nil, fmt.Errorf("sitedata: duplicate alias %q", a.Alias)
		}
		s.aliasByPath[a.Path] = a.Alias
		s.pathByAlias[a.Alias] = a.Path
	}

	for _, n := range doc.Nodes {
		if n.Published {
			s.nodes[n.Type] = append(s.nodes[n.Type], n)
		}
	}
	for _, nodes := range s.nodes {
		slices.SortStableFunc(nodes, func(a, b model.Node) int {
			return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
		})
	}
	return s, nil
}

func (self *Store) TermByID(_ context.Context, id int64) (*model.Term, error) {
	if t, ok := self.terms[id]; ok {
		t := *t
		return &t, nil
	}
	return nil, nil
}

// TermByName returns the term with the lowest id and the given name, matched
// case-insensitive.
func (self *Store) TermByName(_ context.Context, name, vocabulary string,
) (*model.Term, error) {
	var found *model.Term
	for _, t := range self.terms {
		if !strings.EqualFold(t.Name, name) {
			continue
		} else if vocabulary != "" && t.Vocabulary != vocabulary {
			continue
		}
		if found == nil || t.ID < found.ID {
			found = t
		}
	}

	if found == nil {
		return nil, nil
	}
	t := *found
	return &t, nil
}

func (self *Store) TermTree(_ context.Context, vocabulary string,
) ([]model.Term, error) {
	terms := self.vocabs[vocabulary]
	children := make(map[int64][]*model.Term, len(terms))
	for _, t := range terms {
		children[t.ParentID] = append(children[t.ParentID], t)
	}
	for _, siblings := range children {
		slices.SortFunc(siblings, func(a, b *model.Term) int {
			return cmp.Or(cmp.Compare(a.Weight, b.Weight),
				cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)),
				cmp.Compare(a.ID, b.ID))
		})
	}

	tree := make([]model.Term, 0, len(terms))
	var walk func(parentID int64, depth int)
	walk = func(parentID int64, depth int) {
		for _, t := range children[parentID] {
			term := *t
			term.Depth = depth
			tree = append(tree, term)
			walk(t.ID, depth+1)
		}
	}
	walk(0, 0)
	return tree, nil
}

func (self *Store) AliasByPath(_ context.Context, path string) (string, error) {
	return self.aliasByPath[path], nil
}

func (self *Store) PathByAlias(_ context.Context, alias string) (string, error) {
	return self.pathByAlias[alias], nil
}

func (self *Store) PublishedNodes(_ context.Context, nodeType string,
) ([]model.Node, error) {
	return slices.Clone(self.nodes[nodeType]), nil
}

// Counts returns number of terms by vocabulary and published nodes by type.
func (self *Store) Counts() (terms, nodes map[string]int) {
	terms = make(map[string]int, len(self.vocabs))
	for vocabulary, list := range self.vocabs {
		terms[vocabulary] = len(list)
	}
	nodes = make(map[string]int, len(self.nodes))
	for nodeType, list := range self.nodes {
		nodes[nodeType] = len(list)
	}
	return terms, nodes
}
