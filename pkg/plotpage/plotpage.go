// Package plotpage renders themed HTML pages of go-echarts charts.
package plotpage

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"
)

const styleTagLen = len("</style>")

// ErrUnknownTheme is returned by ParseTheme for unsupported themes.
var ErrUnknownTheme = errors.New("unknown theme")

// Renderable is the interface for chart components.
type Renderable interface {
	Render(w io.Writer) error
}

// Section represents one chart or table within a page.
type Section struct {
	Title    string
	Subtitle string
	Chart    Renderable
}

// Page represents a complete visualization page.
type Page struct {
	Title       string
	Description string
	Theme       Theme
	Sections    []Section
}

// NewPage creates a new light-themed page.
func NewPage(title, description string) *Page {
	return &Page{
		Title:       title,
		Description: description,
		Theme:       ThemeLight,
	}
}

// WithTheme sets the theme for the page.
func (p *Page) WithTheme(theme Theme) *Page {
	p.Theme = theme

	return p
}

// Add appends sections to the page.
func (p *Page) Add(sections ...Section) {
	p.Sections = append(p.Sections, sections...)
}

// Render writes the page as a standalone HTML document.
func (p *Page) Render(w io.Writer) error {
	var sections bytes.Buffer

	for _, section := range p.Sections {
		chartHTML, err := renderChart(section.Chart)
		if err != nil {
			return fmt.Errorf("render section %q: %w", section.Title, err)
		}

		html, err := renderTemplate("section.html", sectionData{
			Title:    section.Title,
			Subtitle: section.Subtitle,
			Chart:    template.HTML(chartHTML), //nolint:gosec // produced by go-echarts or our own templates.
		})
		if err != nil {
			return fmt.Errorf("render section %q: %w", section.Title, err)
		}

		sections.WriteString(string(html))
	}

	html, err := renderTemplate("page.html", pageData{
		Title:       p.Title,
		Description: p.Description,
		Theme:       GetThemeConfig(p.Theme),
		Content:     template.HTML(sections.String()), //nolint:gosec // assembled from escaped sections.
	})
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	_, err = io.WriteString(w, string(html))
	if err != nil {
		return fmt.Errorf("writing page: %w", err)
	}

	return nil
}

func renderChart(chart Renderable) (string, error) {
	if chart == nil {
		return "", nil
	}

	var buf bytes.Buffer

	err := chart.Render(&buf)
	if err != nil {
		return "", fmt.Errorf("rendering chart: %w", err)
	}

	return extractChartContent(buf.String()), nil
}

// extractChartContent strips the full HTML document go-echarts emits down
// to the chart container and its init script.
func extractChartContent(html string) string {
	trimmed := strings.TrimSpace(html)
	if !strings.HasPrefix(trimmed, "<!DOCTYPE") && !strings.HasPrefix(trimmed, "<html") {
		return html
	}

	start := strings.Index(html, `<div class="container">`)
	if start == -1 {
		return html
	}

	end := strings.Index(html, `</body>`)
	if end == -1 {
		return html
	}

	content := html[start:end]
	content = strings.ReplaceAll(content, `class="container"`, `class="echart-box"`)

	return removeStyleTags(content)
}

func removeStyleTags(content string) string {
	for {
		i := strings.Index(content, `<style>`)
		if i == -1 {
			return content
		}

		j := strings.Index(content[i:], `</style>`)
		if j == -1 {
			return content
		}

		content = content[:i] + content[i+j+styleTagLen:]
	}
}

// Table is a simple HTML table section.
type Table struct {
	Headers []string
	Rows    [][]string

	// Highlight marks rows rendered with the accent style.
	Highlight map[int]bool
}

// Render writes the table markup.
func (t *Table) Render(w io.Writer) error {
	rows := make([]tableRow, len(t.Rows))
	for i, cells := range t.Rows {
		rows[i] = tableRow{Cells: cells, Highlight: t.Highlight[i]}
	}

	html, err := renderTemplate("table.html", tableData{Headers: t.Headers, Rows: rows})
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, string(html))
	if err != nil {
		return fmt.Errorf("writing table: %w", err)
	}

	return nil
}
