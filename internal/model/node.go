// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package model // import "github.com/citizencage/drupal-8-twig-helpers/internal/model"

import "time"

// Node is a published piece of content of some content type.
type Node struct {
	ID        int64     `json:"id" db:"id" yaml:"id" validate:"required,min=1"`
	Type      string    `json:"type" db:"type" yaml:"type" validate:"required"`
	Title     string    `json:"title" db:"title" yaml:"title"`
	Published bool      `json:"published" db:"published" yaml:"published"`
	CreatedAt time.Time `json:"created_at" db:"created_at" yaml:"created_at" validate:"required"`
}

// MonthYear is one entry of a month filter, like {"2024-05", "May 2024"}.
type MonthYear struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
