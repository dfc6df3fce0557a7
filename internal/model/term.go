// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package model // import "github.com/citizencage/drupal-8-twig-helpers/internal/model"

import (
	"fmt"
	"strconv"
)

// Term represents a taxonomy term.
type Term struct {
	ID          int64  `json:"id" db:"id" yaml:"id" validate:"required,min=1"`
	Vocabulary  string `json:"vocabulary" db:"vocabulary" yaml:"vocabulary" validate:"required"`
	Name        string `json:"name" db:"name" yaml:"name" validate:"required"`
	Description string `json:"description,omitempty" db:"description" yaml:"description"`
	Weight      int    `json:"weight" db:"weight" yaml:"weight"`
	ParentID    int64  `json:"parent_id,omitempty" db:"parent_id" yaml:"parent" validate:"min=0"`

	// Depth in the vocabulary tree, 0 for root terms. Only set by term tree
	// queries.
	Depth int `json:"depth" db:"depth" yaml:"-"`
}

func (self *Term) String() string {
	return fmt.Sprintf("ID=%d, Vocabulary=%s, Name=%s", self.ID, self.Vocabulary,
		self.Name)
}

// SystemPath returns the internal path of the term page, like
// /taxonomy/term/42.
func (self *Term) SystemPath(prefix string) string {
	return TermSystemPath(prefix, self.ID)
}

func TermSystemPath(prefix string, id int64) string {
	return prefix + strconv.FormatInt(id, 10)
}

// TermReference is a field value referencing a term.
type TermReference struct {
	TargetID int64 `json:"target_id" yaml:"target_id"`
}

func TermReferences(ids ...int64) []TermReference {
	refs := make([]TermReference, len(ids))
	for i, id := range ids {
		refs[i] = TermReference{TargetID: id}
	}
	return refs
}
