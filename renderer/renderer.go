package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/powermix"
)

//go:embed templates/*.md
var templates embed.FS

// funcs are the formatting helpers available to every template.
var funcs = template.FuncMap{
	"compact": func(m powermix.Money) string { return m.Compact() },
	"grouped": func(q powermix.Quantity, places int) string { return q.Grouped(places) },
	"fixed":   func(q powermix.Quantity, places int32) string { return q.Fixed(places) },
}

// SourceMarkdown renders the details page of a source.
func SourceMarkdown(p powermix.SourceProfile) string {
	return renderTemplate("source", "source.md", nil, p)
}

// BudgetMarkdown renders the budget status of an allocation: total,
// allocated and remaining.
func BudgetMarkdown(a *powermix.Allocation) string {
	return renderTemplate("budget", "budget.md", nil, a)
}

// ResultsMarkdown renders the aggregate metrics of a portfolio.
func ResultsMarkdown(s powermix.Summary) string {
	return renderTemplate("results", "results.md", nil, s)
}

// ReportMarkdown renders the budget status of an allocation followed, when
// 'calculated' is set, by the results of the portfolio.
func ReportMarkdown(a *powermix.Allocation, s powermix.Summary, calculated bool) string {
	partials := map[string]string{
		"budget":  "budget.md",
		"results": "results.md",
	}
	data := struct {
		Allocation *powermix.Allocation
		Summary    powermix.Summary
		Calculated bool
	}{a, s, calculated}
	return renderTemplate("report", "report.md", partials, data)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			content, err = fs.ReadFile(templates, "templates/"+file)
			if err != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, err)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
