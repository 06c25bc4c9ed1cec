package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"execfreq/internal/model"
)

// Record is one flat exported row. The show and digest commands read these
// back from a previously written file.
type Record struct {
	Score     int
	Source    string
	Title     string
	Link      string
	Author    string
	Excerpt   string
	Date      string
	Breakdown string
}

var header = []string{"score", "source", "title", "link", "author", "excerpt", "date", "score_breakdown"}

const (
	excerptLen  = 200
	maxTitleLen = 200
)

// WriteCSV exports scored posts, preserving their order.
func WriteCSV(path string, posts []model.ScoredPost) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, p := range posts {
		row := []string{
			strconv.Itoa(p.PainScore),
			string(p.Source),
			truncate(p.Title, maxTitleLen),
			p.URL,
			p.AuthorName,
			Excerpt(p.BodyText),
			p.CreatedAt.UTC().Format("2006-01-02 15:04"),
			p.Breakdown.String(),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}

// ReadCSV loads a previously exported file.
func ReadCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("export: open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("export: read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < len(header) {
			return nil, fmt.Errorf("export: %s: malformed row with %d columns", path, len(row))
		}
		score, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("export: %s: bad score %q: %w", path, row[0], err)
		}
		records = append(records, Record{
			Score:     score,
			Source:    row[1],
			Title:     row[2],
			Link:      row[3],
			Author:    row[4],
			Excerpt:   row[5],
			Date:      row[6],
			Breakdown: row[7],
		})
	}
	return records, nil
}

// Excerpt derives the display excerpt: whitespace-normalized body text
// capped at 200 characters. This is an export concern, never a scoring one.
func Excerpt(body string) string {
	return truncate(strings.Join(strings.Fields(body), " "), excerptLen)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
