// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package sitedata

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citizencage/drupal-8-twig-helpers/internal/archive"
	"github.com/citizencage/drupal-8-twig-helpers/internal/model"
	"github.com/citizencage/drupal-8-twig-helpers/internal/taxonomy"
	"github.com/citizencage/drupal-8-twig-helpers/internal/timezone"
)

var (
	_ taxonomy.TermRepository = (*Store)(nil)
	_ taxonomy.AliasResolver  = (*Store)(nil)
	_ archive.NodeQuery       = (*Store)(nil)
)

func loadTestdata(t *testing.T) *Store {
	t.Helper()
	s, err := Load("testdata/site.yaml")
	require.NoError(t, err)
	return s
}

func TestStore_terms(t *testing.T) {
	s := loadTestdata(t)
	ctx := t.Context()

	term, err := s.TermByID(ctx, 3)
	require.NoError(t, err)
	require.NotNil(t, term)
	assert.Equal(t, "Cardiology", term.Name)
	assert.Equal(t, "Heart and vessels", term.Description)
	assert.Equal(t, int64(1), term.ParentID)

	term.Name = "changed"
	again, err := s.TermByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Cardiology", again.Name)

	term, err = s.TermByID(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, term)

	term, err = s.TermByName(ctx, "downtown", "")
	require.NoError(t, err)
	require.NotNil(t, term)
	assert.Equal(t, int64(10), term.ID)

	term, err = s.TermByName(ctx, "Downtown", "specialties")
	require.NoError(t, err)
	assert.Nil(t, term)
}

func TestStore_TermTree(t *testing.T) {
	s := loadTestdata(t)

	terms, err := s.TermTree(t.Context(), "specialties")
	require.NoError(t, err)

	got := make([]string, len(terms))
	for i, term := range terms {
		got[i] = strings.Repeat("-", term.Depth) + term.Name
	}
	assert.Equal(t, []string{"Medicine", "-Cardiology", "-Surgery", "Arts"}, got)

	terms, err = s.TermTree(t.Context(), "missing")
	require.NoError(t, err)
	assert.Empty(t, terms)
}

func TestStore_aliases(t *testing.T) {
	s := loadTestdata(t)
	ctx := t.Context()

	alias, err := s.AliasByPath(ctx, "/taxonomy/term/3")
	require.NoError(t, err)
	assert.Equal(t, "/topics/heart-health", alias)

	path, err := s.PathByAlias(ctx, "/locations/downtown")
	require.NoError(t, err)
	assert.Equal(t, "/taxonomy/term/10", path)

	path, err = s.PathByAlias(ctx, "/nowhere")
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestStore_PublishedNodes(t *testing.T) {
	s := loadTestdata(t)

	nodes, err := s.PublishedNodes(t.Context(), "news")
	require.NoError(t, err)
	ids := make([]int64, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	assert.Equal(t, []int64{4, 2, 1}, ids)

	terms, nodeCounts := s.Counts()
	assert.Equal(t, map[string]int{"specialties": 4, "locations": 1}, terms)
	assert.Equal(t, map[string]int{"news": 3}, nodeCounts)
}

func TestStore_withHelpers(t *testing.T) {
	s := loadTestdata(t)
	ctx := t.Context()

	alias, err := taxonomy.NewHelper(s, s).CustomizeTermAlias(ctx, 3, "/doctors/")
	require.NoError(t, err)
	assert.Equal(t, "/doctors/heart-health", alias)

	markup, err := archive.NewFilter(s, timezone.NewFormatter("UTC")).
		GenerateMonthYearNodeFilter(ctx, "news", "list")
	require.NoError(t, err)
	assert.Equal(t, "<li>May 2024</li><li>December 2023</li>", markup)
}

func TestParse_invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   string
	}{
		{
			name:  "unknown field",
			input: "terms:\n  - id: 1\n    vocabulary: v\n    name: n\n    color: red\n",
			err:   "color",
		},
		{
			name:  "missing name",
			input: "terms:\n  - id: 1\n    vocabulary: v\n",
			err:   "name",
		},
		{
			name:  "duplicate term",
			input: "terms:\n  - {id: 1, vocabulary: v, name: a}\n  - {id: 1, vocabulary: v, name: b}\n",
			err:   "duplicate term id=1",
		},
		{
			name:  "unknown parent",
			input: "terms:\n  - {id: 1, vocabulary: v, name: a, parent: 7}\n",
			err:   "unknown parent id=7",
		},
		{
			name:  "parent from another vocabulary",
			input: "terms:\n  - {id: 1, vocabulary: v, name: a}\n  - {id: 2, vocabulary: w, name: b, parent: 1}\n",
			err:   "another vocabulary",
		},
		{
			name:  "relative alias",
			input: "aliases:\n  - {path: /node/1, alias: about}\n",
			err:   "alias",
		},
		{
			name:  "duplicate alias",
			input: "aliases:\n  - {path: /node/1, alias: /a}\n  - {path: /node/2, alias: /a}\n",
			err:   "duplicate alias",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.err)
		})
	}
}

func TestParse_empty(t *testing.T) {
	s, err := Parse(strings.NewReader(""))
	require.NoError(t, err)

	terms, err := s.TermTree(t.Context(), "any")
	require.NoError(t, err)
	assert.Empty(t, terms)
}

func TestNew(t *testing.T) {
	s, err := New(&Document{Terms: []model.Term{
		{ID: 1, Vocabulary: "v", Name: "One"},
	}})
	require.NoError(t, err)

	tid, err := taxonomy.NewHelper(s, s).TidByName(t.Context(), "one", "v")
	require.NoError(t, err)
	assert.Equal(t, int64(1), tid)
}

func TestLoad_compressed(t *testing.T) {
	b, err := os.ReadFile("testdata/site.yaml")
	require.NoError(t, err)
	dir := t.TempDir()

	tests := []struct {
		name   string
		ext    string
		writer func(w io.Writer) io.WriteCloser
	}{
		{
			name: "gzip",
			ext:  ".yaml.gz",
			writer: func(w io.Writer) io.WriteCloser {
				return gzip.NewWriter(w)
			},
		},
		{
			name: "zstd",
			ext:  ".yaml.zst",
			writer: func(w io.Writer) io.WriteCloser {
				zw, err := zstd.NewWriter(w)
				require.NoError(t, err)
				return zw
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filename := filepath.Join(dir, "site"+tt.ext)
			f, err := os.Create(filename)
			require.NoError(t, err)
			zw := tt.writer(f)
			_, err = zw.Write(b)
			require.NoError(t, err)
			require.NoError(t, zw.Close())
			require.NoError(t, f.Close())

			s, err := Load(filename)
			require.NoError(t, err)
			terms, nodes := s.Counts()
			assert.Equal(t, map[string]int{"specialties": 4, "locations": 1}, terms)
			assert.Equal(t, map[string]int{"news": 3}, nodes)
		})
	}

	filename := filepath.Join(dir, "plain.gz")
	require.NoError(t, os.WriteFile(filename, b, 0o600))
	_, err = Load(filename)
	require.ErrorContains(t, err, "decompress")
}

func TestStore_TermTree_siblingKeys(t *testing.T) {
	s, err := New(&Document{Terms: []model.Term{
		{ID: 20, Vocabulary: "ent", Name: "Ear"},
		{ID: 21, Vocabulary: "ent", Name: "ear-nose"},
		{ID: 6, Vocabulary: "ent", Name: "Ear1"},
		{ID: 22, Vocabulary: "ent", Name: "Throat", Weight: -1},
		{ID: 23, Vocabulary: "ent", Name: "Ear"},
	}})
	require.NoError(t, err)

	terms, err := s.TermTree(t.Context(), "ent")
	require.NoError(t, err)

	ids := make([]int64, len(terms))
	for i, term := range terms {
		ids[i] = term.ID
	}
	assert.Equal(t, []int64{22, 20, 23, 21, 6}, ids)
}
