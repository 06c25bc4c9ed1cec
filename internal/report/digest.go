package report

import (
	"bytes"
	_ "embed"
	"text/template"
)

// Lead is one ranked entry in a digest.
type Lead struct {
	Rank      int
	Score     int
	Source    string
	Title     string
	Link      string
	Author    string
	Excerpt   string
	Date      string
	Breakdown string
	Brief     string // optional AI one-liner; empty when no summarizer is configured
}

// Data is the digest template payload.
type Data struct {
	Title    string
	Datetime string
	Leads    []Lead
}

//go:embed digest.tmpl
var digestTpl string

var compiled = template.Must(template.New("digest").Parse(digestTpl))

// Render produces the markdown digest for a set of ranked leads.
func Render(d Data) (string, error) {
	var buf bytes.Buffer
	if err := compiled.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}
