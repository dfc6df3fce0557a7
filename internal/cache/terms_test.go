// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citizencage/drupal-8-twig-helpers/internal/model"
)

type countingRepo struct {
	calls atomic.Int64
	err   error
}

func (self *countingRepo) TermByID(_ context.Context, id int64,
) (*model.Term, error) {
	self.calls.Add(1)
	if self.err != nil {
		return nil, self.err
	}
	if id > 100 {
		return nil, nil
	}
	return &model.Term{ID: id, Vocabulary: "tags", Name: "term"}, nil
}

func (self *countingRepo) TermByName(_ context.Context, name, _ string,
) (*model.Term, error) {
	return &model.Term{ID: 1, Name: name}, self.err
}

func (self *countingRepo) TermTree(_ context.Context, _ string,
) ([]model.Term, error) {
	return []model.Term{{ID: 1}, {ID: 2}}, self.err
}

func TestTerms_TermByID(t *testing.T) {
	repo := new(countingRepo)
	cache := NewTerms(repo)
	ctx := t.Context()

	term, err := cache.TermByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, term)
	assert.Equal(t, int64(1), term.ID)

	again, err := cache.TermByID(ctx, 1)
	require.NoError(t, err)
	assert.Same(t, term, again)
	assert.Equal(t, int64(1), repo.calls.Load())

	hit, miss := cache.Stats()
	assert.Equal(t, uint64(1), hit)
	assert.Equal(t, uint64(1), miss)
}

func TestTerms_unknownCached(t *testing.T) {
	repo := new(countingRepo)
	cache := NewTerms(repo)

	for range 3 {
		term, err := cache.TermByID(t.Context(), 404)
		require.NoError(t, err)
		assert.Nil(t, term)
	}
	assert.Equal(t, int64(1), repo.calls.Load())
	assert.Equal(t, 1, cache.Len())
}

func TestTerms_concurrent(t *testing.T) {
	repo := new(countingRepo)
	cache := NewTerms(repo)

	var wg sync.WaitGroup
	for range 16 {
		wg.Go(func() {
			term, err := cache.TermByID(t.Context(), 7)
			assert.NoError(t, err)
			assert.NotNil(t, term)
		})
	}
	wg.Wait()

	assert.Equal(t, 1, cache.Len())
	hit, miss := cache.Stats()
	assert.Equal(t, uint64(1), miss)
	assert.GreaterOrEqual(t, hit, uint64(15))
}

func TestTerms_errorNotCached(t *testing.T) {
	repo := &countingRepo{err: errors.New("db down")}
	cache := NewTerms(repo)

	_, err := cache.TermByID(t.Context(), 1)
	require.ErrorIs(t, err, repo.err)
	assert.Zero(t, cache.Len())

	repo.err = nil
	term, err := cache.TermByID(t.Context(), 1)
	require.NoError(t, err)
	assert.NotNil(t, term)
}

func TestTerms_passThrough(t *testing.T) {
	cache := NewTerms(new(countingRepo))

	term, err := cache.TermByName(t.Context(), "News", "tags")
	require.NoError(t, err)
	assert.Equal(t, "News", term.Name)

	terms, err := cache.TermTree(t.Context(), "tags")
	require.NoError(t, err)
	assert.Len(t, terms, 2)
}
