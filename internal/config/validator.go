// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package config // import "github.com/citizencage/drupal-8-twig-helpers/internal/config"

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Validator returns validator, which names fields by their env or yaml tags.
var Validator = sync.OnceValue(func() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if s := fld.Tag.Get("env"); s != "" {
			name, _, _ := strings.Cut(s, ",")
			if name == "-" {
				return ""
			}
			return name
		}
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
})
