// Package pages manages the CMS pages shown on the public site.
package pages

import (
	"strings"

	"github.com/gosimple/slug"
)

type Page struct {
	ID        string `json:"_id"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
}

type Command struct {
	Title     string `json:"title" validate:"required,max=200"`
	Slug      string `json:"slug" validate:"max=200"`
	Content   string `json:"content" validate:"required"`
	Published bool   `json:"published"`
}

func CommandOf(p *Page) Command {
	return Command{
		Title:     p.Title,
		Slug:      p.Slug,
		Content:   p.Content,
		Published: p.Published,
	}
}

// Normalize derives the slug from the title when it is blank and
// lowercases and hyphenates it otherwise.
func (c *Command) Normalize() {
	c.Title = strings.TrimSpace(c.Title)
	if s := strings.TrimSpace(c.Slug); s != "" {
		c.Slug = slug.Make(s)
		return
	}
	c.Slug = slug.Make(c.Title)
}
