package pages

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/a-h/templ"
	"gopkg.in/yaml.v3"

	"github.com/louisbranch/showcase/internal/services/web/router"
	"github.com/louisbranch/showcase/internal/services/web/ui"
)

// document is the YAML shape of one page content file.
type document struct {
	Title    string    `yaml:"title"`
	Headline string    `yaml:"headline"`
	Lead     string    `yaml:"lead"`
	Sections []section `yaml:"sections"`
}

type section struct {
	Heading    string   `yaml:"heading"`
	Paragraphs []string `yaml:"paragraphs"`
	Cards      []card   `yaml:"cards"`
}

type card struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

// ContentLoader returns a loader that reads the page named name from file in
// contentFS when first invoked.
func ContentLoader(contentFS fs.FS, name string, file string) router.Loader {
	return func(ctx context.Context) (templ.Component, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if contentFS == nil {
			return nil, errors.New("content filesystem is required")
		}
		data, err := fs.ReadFile(contentFS, file)
		if err != nil {
			return nil, fmt.Errorf("read page content %s: %w", file, err)
		}
		view, err := parseDocument(name, data)
		if err != nil {
			return nil, fmt.Errorf("parse page content %s: %w", file, err)
		}
		return view, nil
	}
}

func parseDocument(name string, data []byte) (ui.View, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return ui.View{}, err
	}
	doc.Title = strings.TrimSpace(doc.Title)
	if doc.Title == "" {
		return ui.View{}, errors.New("title is required")
	}
	headline := strings.TrimSpace(doc.Headline)
	if headline == "" {
		headline = doc.Title
	}

	sections := make([]ui.Section, 0, len(doc.Sections))
	for _, s := range doc.Sections {
		cards := make([]ui.Card, 0, len(s.Cards))
		for _, c := range s.Cards {
			cards = append(cards, ui.Card{Title: c.Title, Body: c.Body})
		}
		sections = append(sections, ui.Section{
			Heading:    s.Heading,
			Paragraphs: s.Paragraphs,
			Cards:      cards,
		})
	}

	return ui.View{
		Name:  name,
		Title: doc.Title,
		Body: templ.Join(
			ui.Hero(headline, doc.Lead, "", ""),
			ui.Sections(sections),
		),
	}, nil
}
