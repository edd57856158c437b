package community

import (
	"strings"
	"time"
)

const DefaultPostType = "experience"

// Post es una publicación de la comunidad. Desde este cliente solo se crean y se borran.
type Post struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	PostType  string `json:"post_type"`
	Author    string `json:"author"`
	CreatedAt string `json:"created_at"`
}

// CreateInput es el body de POST community.
type CreateInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	PostType string `json:"post_type"`
}

// el backend manda ISO 8601, con o sin zona y fracción de segundos
var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999",
	"2006-01-02",
}

// displayDate deja solo la fecha. Si no se puede parsear se muestra tal cual.
func displayDate(raw string) string {
	raw = strings.TrimSpace(raw)
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return raw
}
