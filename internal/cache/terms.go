// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package cache // import "github.com/citizencage/drupal-8-twig-helpers/internal/cache"

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/citizencage/drupal-8-twig-helpers/internal/model"
	"github.com/citizencage/drupal-8-twig-helpers/internal/taxonomy"
)

var _ taxonomy.TermRepository = (*Terms)(nil)

// Terms caches terms loaded by id from underlying repository. Unknown ids are
// cached too. Other methods go to the repository directly.
type Terms struct {
	repo taxonomy.TermRepository

	mu sync.RWMutex
	sg singleflight.Group

	terms map[int64]*model.Term
	hit   atomic.Uint64
	miss  uint64
}

func NewTerms(repo taxonomy.TermRepository) *Terms {
	return &Terms{repo: repo, terms: map[int64]*model.Term{}}
}

func (self *Terms) TermByID(ctx context.Context, id int64,
) (*model.Term, error) {
	if t, ok := self.termFromMap(id); ok {
		return t, nil
	}

	v, err, shared := self.sg.Do(strconv.FormatInt(id, 10), func() (any, error) {
		if t, ok := self.termFromMap(id); ok {
			return t, nil
		}

		t, err := self.repo.TermByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return self.rememberTerm(id, t), nil
	})
	if err != nil {
		return nil, fmt.Errorf("cache: fetch term id=%v to cache: %w", id, err)
	}

	if shared {
		self.hit.Add(1)
	}
	return v.(*model.Term), nil
}

func (self *Terms) termFromMap(id int64) (*model.Term, bool) {
	self.mu.RLock()
	defer self.mu.RUnlock()
	t, ok := self.terms[id]
	if ok {
		self.hit.Add(1)
	}
	return t, ok
}

func (self *Terms) rememberTerm(id int64, t *model.Term) *model.Term {
	self.mu.Lock()
	self.miss++
	self.terms[id] = t
	self.mu.Unlock()
	return t
}

func (self *Terms) TermByName(ctx context.Context, name, vocabulary string,
) (*model.Term, error) {
	t, err := self.repo.TermByName(ctx, name, vocabulary)
	if err != nil {
		return nil, fmt.Errorf("cache: term by name: %w", err)
	}
	return t, nil
}

func (self *Terms) TermTree(ctx context.Context, vocabulary string,
) ([]model.Term, error) {
	terms, err := self.repo.TermTree(ctx, vocabulary)
	if err != nil {
		return nil, fmt.Errorf("cache: term tree: %w", err)
	}
	return terms, nil
}

func (self *Terms) Stats() (hit, miss uint64) {
	self.mu.RLock()
	miss = self.miss
	self.mu.RUnlock()
	return self.hit.Load(), miss
}

func (self *Terms) Len() int {
	self.mu.RLock()
	defer self.mu.RUnlock()
	return len(self.terms)
}
