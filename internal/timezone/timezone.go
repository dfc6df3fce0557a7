// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package timezone // import "github.com/citizencage/drupal-8-twig-helpers/internal/timezone"

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Formatter formats times in the configured timezone.
type Formatter struct {
	tz string
}

// NewFormatter returns a formatter for IANA timezone tz. Unknown timezones
// fall back to the local one.
func NewFormatter(tz string) *Formatter { return &Formatter{tz: tz} }

func (self *Formatter) Format(t time.Time, layout string) string {
	return Convert(self.tz, t).Format(layout)
}

func (self *Formatter) Location() *time.Location { return getLocation(self.tz) }

// Convert returns the provided time expressed in the given timezone.
func Convert(tz string, t time.Time) time.Time {
	if t.Location().String() == tz {
		return t
	}

	loc := getLocation(tz)
	if t.Before(time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		return time.Date(0, time.January, 1, 0, 0, 0, 0, loc)
	}
	return t.In(loc)
}

// Valid reports whether tz is a known timezone.
func Valid(tz string) bool {
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Now returns the current time in the given timezone.
func Now(tz string) time.Time { return time.Now().In(getLocation(tz)) }

func getLocation(tz string) *time.Location { return locations.Location(tz) }

var locations = newLocationCache()

func newLocationCache() *locationCache {
	return &locationCache{locations: make(map[string]*time.Location)}
}

type locationCache struct {
	mu        sync.RWMutex
	locations map[string]*time.Location
	sg        singleflight.Group
}

func (self *locationCache) Location(tz string) *time.Location {
	self.mu.RLock()
	loc, ok := self.locations[tz]
	self.mu.RUnlock()
	if ok {
		return loc
	}

	v, _, _ := self.sg.Do(tz, func() (any, error) {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			loc = time.Local
		}
		self.mu.Lock()
		self.locations[tz] = loc
		self.mu.Unlock()
		return loc, nil
	})
	return v.(*time.Location)
}
