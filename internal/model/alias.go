// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package model // import "github.com/citizencage/drupal-8-twig-helpers/internal/model"

// PathAlias maps an internal system path to its public URL alias.
type PathAlias struct {
	Path  string `json:"path" db:"path" yaml:"path" validate:"required,startswith=/"`
	Alias string `json:"alias" db:"alias" yaml:"alias" validate:"required,startswith=/"`
}
