// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package video // import "github.com/citizencage/drupal-8-twig-helpers/internal/video"

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"path"
	"strings"

	"github.com/citizencage/drupal-8-twig-helpers/internal/crypto"
)

type Source string

const (
	YouTube Source = "youtube"
	Vimeo   Source = "vimeo"

	DefaultYouTubeURL     = "https://www.youtube.com/embed/"
	DefaultVimeoURL       = "https://player.vimeo.com/video/"
	DefaultPosterIDLength = 20

	youtubeParams       = "autoplay=0&start=0&rel=0&modestbranding=1"
	youtubeAutoplay     = "autoplay=1&start=0&rel=0&modestbranding=1"
	vimeoAutoplayParams = "autoplay=1&loop=1"
)

//go:embed templates/*.html
var templateFiles embed.FS

var templates = template.Must(template.ParseFS(templateFiles, "templates/*.html"))

// Embedder generates markup of embedded YouTube and Vimeo players.
type Embedder struct {
	youtubeURL     *url.URL
	vimeoURL       *url.URL
	posterIDLength int
	newID          func(length int) string
}

type Option func(e *Embedder)

func WithYouTubeURL(u *url.URL) Option {
	return func(e *Embedder) { e.youtubeURL = u }
}

func WithVimeoURL(u *url.URL) Option {
	return func(e *Embedder) { e.vimeoURL = u }
}

func WithPosterIDLength(n int) Option {
	return func(e *Embedder) { e.posterIDLength = n }
}

func New(opts ...Option) *Embedder {
	e := &Embedder{
		youtubeURL:     mustParseURL(DefaultYouTubeURL),
		vimeoURL:       mustParseURL(DefaultVimeoURL),
		posterIDLength: DefaultPosterIDLength,
		newID:          crypto.RandHash,
	}
	for _, fn := range opts {
		fn(e)
	}
	return e
}

func mustParseURL(s string) *url.URL {
	u, err := url.Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

// DetectSource returns the platform of video. An empty source is guessed
// from the URL, everything which isn't YouTube is Vimeo.
func DetectSource(video, source string) Source {
	switch strings.ToLower(source) {
	case string(YouTube):
		return YouTube
	case "":
		s := strings.ToLower(video)
		if strings.Contains(s, "youtube") || strings.Contains(s, "youtu.be") {
			return YouTube
		}
	}
	return Vimeo
}

// EmbedURL converts a link to a video page into an URL of the embeddable
// player.
func (self *Embedder) EmbedURL(video, source string) (string, Source) {
	src := DetectSource(video, source)
	if src == YouTube {
		if id := youtubeID(video); id != "" {
			return self.youtubeURL.JoinPath(id).String(), src
		}
		return video, src
	}
	return self.vimeoURL.JoinPath(vimeoID(video)).String(), src
}

// youtubeID returns id of the video from a watch or short link, or an empty
// string for any other link.
func youtubeID(video string) string {
	u, err := url.Parse(video)
	if err != nil {
		return ""
	}

	if strings.TrimPrefix(u.Hostname(), "www.") == "youtu.be" {
		return strings.Trim(u.Path, "/")
	}

	if strings.Contains(strings.ToLower(u.Path), "watch") {
		return u.Query().Get("v")
	}
	return ""
}

func vimeoID(video string) string {
	if u, err := url.Parse(video); err == nil && u.Path != "" {
		return path.Base(u.Path)
	}
	return video[strings.LastIndexByte(video, '/')+1:]
}

// Embed returns a responsive iframe of the video player.
func (self *Embedder) Embed(video, source string) (string, error) {
	src, platform := self.EmbedURL(video, source)
	if platform == YouTube {
		src = withParams(src, youtubeParams)
	}

	return render("embed", map[string]any{
		"Src": src,
		"End": template.HTML("<!-- embed-container -->"),
	})
}

// EmbedWithPoster returns a lazy player, which starts after a click on the
// poster button.
func (self *Embedder) EmbedWithPoster(video, poster, source string,
) (string, error) {
	src, platform := self.EmbedURL(video, source)
	if platform == YouTube {
		src = withParams(src, youtubeAutoplay)
	} else {
		src = withParams(src, vimeoAutoplayParams)
	}

	return render("poster", map[string]any{
		"Src":    src,
		"ID":     self.newID(self.posterIDLength),
		"Poster": poster,
		"End":    template.HTML("<!-- videoWrapper -->"),
	})
}

func withParams(s, params string) string {
	if strings.Contains(s, "?") {
		return s + "&" + params
	}
	return s + "?" + params
}

func render(name string, data map[string]any) (string, error) {
	var b bytes.Buffer
	if err := templates.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("video: render %q: %w", name, err)
	}
	return b.String(), nil
}
