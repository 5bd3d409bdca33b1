// Package pubs formats a publication list as Markdown.
package pubs

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

const (
	DefaultLimit = 10
	maxAuthors   = 10
)

// Publication is one record of a Scholar export.
type Publication struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	EprintURL string `json:"eprint_url"`
	Author    string `json:"author"`
	Journal   string `json:"journal"`
	Year      string `json:"pub_year"`

	// titled records that the decoded record carried a title key, even an
	// empty one.
	titled bool
}

// UnmarshalJSON decodes a record and remembers whether "title" was present,
// so an explicitly empty title is kept rather than shown as "Untitled".
func (p *Publication) UnmarshalJSON(data []byte) error {
	type plain Publication
	var rec struct {
		plain
		Title *string `json:"title"`
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	*p = Publication(rec.plain)
	if rec.Title != nil {
		p.Title = *rec.Title
		p.titled = true
	}
	return nil
}

// Read decodes a JSON array of publications.
func Read(r io.Reader) ([]Publication, error) {
	var pubs []Publication
	if err := json.NewDecoder(r).Decode(&pubs); err != nil {
		return nil, fmt.Errorf("decode publications: %w", err)
	}
	return pubs, nil
}

// Write renders the first limit publications as Markdown, followed by a link
// to the Scholar profile. A limit <= 0 means DefaultLimit.
func Write(w io.Writer, pubs []Publication, limit int, scholarID string) error {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(pubs) > limit {
		pubs = pubs[:limit]
	}

	var b strings.Builder
	b.WriteString("# Publications\n\n")
	for _, p := range pubs {
		b.WriteString(Citation(p))
		b.WriteString("\n\n")
	}
	if scholarID != "" {
		fmt.Fprintf(&b, "*Full publication list: [Google Scholar](https://scholar.google.com/citations?user=%s)*\n", scholarID)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write publications: %w", err)
	}
	return nil
}

// Citation formats one publication as "Authors (Year). Title. *Venue*."
//
// The title reads "Untitled" only when the record has none at all: a decoded
// record without a "title" key (or with a null one), or a literal with an
// empty Title. A decoded empty string is printed as is.
func Citation(p Publication) string {
	title := p.Title
	if title == "" && !p.titled {
		title = "Untitled"
	}
	url := p.EprintURL
	if url == "" {
		url = p.URL
	}
	if strings.HasPrefix(url, "http") {
		title = "[" + title + "](" + url + ")"
	}

	out := Authors(p.Author) + " (" + p.Year + "). " + title
	if p.Journal != "" {
		out += ". *" + p.Journal + "*"
	}
	return out + "."
}

// Authors abbreviates an author string to initials plus last name, e.g.
// "Ada King Lovelace and Alan Turing" becomes "A K Lovelace, A Turing".
// Lists longer than ten names are cut with "et al.".
func Authors(raw string) string {
	var names []string
	if strings.Contains(raw, " and ") {
		names = strings.Split(raw, " and ")
	} else {
		names = strings.Split(raw, ",")
	}

	var list []string
	for _, name := range names {
		parts := strings.Fields(name)
		if len(parts) == 0 {
			continue
		}
		last := parts[len(parts)-1]
		initials := make([]string, 0, len(parts)-1)
		for _, p := range parts[:len(parts)-1] {
			r, _ := utf8.DecodeRuneInString(p)
			initials = append(initials, string(r))
		}
		if len(initials) == 0 {
			list = append(list, last)
			continue
		}
		list = append(list, strings.Join(initials, " ")+" "+last)
	}

	if len(list) > maxAuthors {
		return strings.Join(list[:maxAuthors], ", ") + ", et al."
	}
	return strings.Join(list, ", ")
}
