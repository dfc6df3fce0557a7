// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package template // import "github.com/citizencage/drupal-8-twig-helpers/internal/template"

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/citizencage/drupal-8-twig-helpers/internal/logging"
	"github.com/citizencage/drupal-8-twig-helpers/internal/metric"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Engine handles the templating system.
type Engine struct {
	templates map[string]*template.Template
	funcMap   *funcMap
}

// NewEngine returns a new template engine.
func NewEngine(h *Helpers) *Engine {
	return &Engine{
		templates: make(map[string]*template.Template),
		funcMap:   &funcMap{h},
	}
}

// ParseTemplates parses template files embed into the application.
func (self *Engine) ParseTemplates() error {
	dirEntries, err := templateFiles.ReadDir("templates")
	if err != nil {
		return fmt.Errorf("template: failed read templates/: %w", err)
	}

	for _, dirEntry := range dirEntries {
		fullName := "templates/" + dirEntry.Name()
		fileData, err := templateFiles.ReadFile(fullName)
		if err != nil {
			return fmt.Errorf("template: failed read %q: %w", fullName, err)
		}
		if err := self.parse(dirEntry.Name(), fileData); err != nil {
			return err
		}
	}
	return nil
}

// ParseGlob parses template files matched by pattern. A template is named by
// the base name of its file and replaces an embedded one with the same name.
func (self *Engine) ParseGlob(pattern string) error {
	filenames, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("template: bad pattern %q: %w", pattern, err)
	} else if len(filenames) == 0 {
		return fmt.Errorf("template: pattern matches no files: %q", pattern)
	}
	return self.ParseFiles(filenames...)
}

// ParseFiles parses the named template files.
func (self *Engine) ParseFiles(filenames ...string) error {
	for _, filename := range filenames {
		fileData, err := readFile(filename)
		if err != nil {
			return err
		}
		if err := self.parse(filepath.Base(filename), fileData); err != nil {
			return err
		}
	}
	return nil
}

func readFile(filename string) ([]byte, error) {
	fileData, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("template: failed read %q: %w", filename, err)
	}
	return fileData, nil
}

func (self *Engine) parse(name string, b []byte) error {
	slog.Debug("Parsing template", slog.String("template_name", name))

	// Real functions are bound in Render, these ones only declare names.
	tpl, err := template.New(name).
		Funcs(self.funcMap.Map(context.Background())).
		Parse(string(b))
	if err != nil {
		return fmt.Errorf("template: failed parse %q: %w", name, err)
	}
	self.templates[name] = tpl
	return nil
}

// Names returns sorted names of all parsed templates.
func (self *Engine) Names() []string {
	return slices.Sorted(maps.Keys(self.templates))
}

// Render executes template name with data. Template functions use ctx for
// database lookups and logging.
func (self *Engine) Render(ctx context.Context, name string, data any,
) ([]byte, error) {
	start := time.Now()
	b, err := self.render(ctx, name, data)
	metric.ObserveRender(name, start, err)

	log := logging.FromContext(ctx).With(slog.String("template_name", name))
	if err != nil {
		log.Debug("template render failed", slog.Any("error", err))
		return nil, err
	}

	log.Debug("template rendered",
		slog.Int("size", len(b)),
		slog.Duration("elapsed", time.Since(start)))
	return b, nil
}

func (self *Engine) render(ctx context.Context, name string, data any,
) ([]byte, error) {
	tpl, ok := self.templates[name]
	if !ok {
		return nil, fmt.Errorf("template: this template does not exists: %q",
			name)
	}

	// Clone, because html/template forbids changing of executed templates.
	tpl, err := tpl.Clone()
	if err != nil {
		return nil, fmt.Errorf("template: failed clone %q: %w", name, err)
	}
	tpl.Funcs(self.funcMap.Map(ctx))

	var b bytes.Buffer
	if err := tpl.Execute(&b, data); err != nil {
		return nil, fmt.Errorf("template: failed execute %q: %w", name, err)
	}
	return b.Bytes(), nil
}
