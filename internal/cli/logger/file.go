// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package logger // import "github.com/citizencage/drupal-8-twig-helpers/internal/cli/logger"

import (
	"fmt"
	"os"
	"sync"
)

// NewLogFile opens filename for appending. The file is reopened when it was
// moved or removed, for instance by logrotate.
func NewLogFile(filename string) (f *LogFile, err error) {
	f = &LogFile{filename: filename}
	if err := f.open(); err != nil {
		return nil, err
	}
	return f, nil
}

type LogFile struct {
	filename string

	mu   sync.Mutex
	file *os.File
	info os.FileInfo
}

func (self *LogFile) open() error {
	f, err := os.OpenFile(self.filename,
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("stat of %q: %w", self.filename, err)
	}
	self.file, self.info = f, info
	return nil
}

func (self *LogFile) Write(p []byte) (int, error) {
	self.mu.Lock()
	defer self.mu.Unlock()

	if self.rotated() {
		if err := self.reopen(); err != nil {
			return 0, fmt.Errorf("reopen file %q: %w", self.filename, err)
		}
	}

	n, err := self.file.Write(p)
	if err != nil {
		return n, fmt.Errorf("write to %q: %w", self.filename, err)
	}
	return n, nil
}

// rotated reports whether filename points to another file or nothing.
func (self *LogFile) rotated() bool {
	info, err := os.Stat(self.filename)
	return err != nil || !os.SameFile(self.info, info)
}

func (self *LogFile) reopen() error {
	if err := self.file.Close(); err != nil {
		return fmt.Errorf("close %q: %w", self.filename, err)
	}
	return self.open()
}

func (self *LogFile) Close() error {
	self.mu.Lock()
	defer self.mu.Unlock()
	if err := self.file.Close(); err != nil {
		return fmt.Errorf("close %q: %w", self.filename, err)
	}
	return nil
}
