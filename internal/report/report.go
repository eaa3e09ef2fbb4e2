package report

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/nikoly240702/tender-sniper/internal/matching"
)

// Generator renders Report Generator (C10) output. Stateless — a package-
// level parsed template would be equally safe, but Generator exists so the
// DI container has a consistent constructor-and-inject shape like every
// other collaborator.
type Generator struct {
	tmpl *template.Template
}

func NewGenerator() (*Generator, error) {
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"formatPrice": formatPrice,
	}).Parse(reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse report template: %w", err)
	}
	return &Generator{tmpl: tmpl}, nil
}

// Render produces the ordinary report: summary header plus per-tender
// cards, no rejected section.
func (g *Generator) Render(data Data) (string, error) {
	data.Rejected = nil
	return g.execute(data)
}

// RenderDebugReport produces the debug variant: the ordinary report plus
// a section listing every hard-rejected tender and why it was dropped.
// POST /search renders only the ordinary report; no HTTP route calls this.
func (g *Generator) RenderDebugReport(data Data, rejected []RejectedCard) (string, error) {
	data.Rejected = rejected
	return g.execute(data)
}

func (g *Generator) execute(data Data) (string, error) {
	var sb strings.Builder
	if err := g.tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return sb.String(), nil
}

func formatPrice(price *float64) string {
	if price == nil {
		return "не указана"
	}
	// Thousands-separated with a plain space, matching the
	// original's `f"{price:,.0f} ₽".replace(',', ' ')` formatting.
	whole := int64(*price)
	s := fmt.Sprintf("%d", whole)
	var grouped strings.Builder
	for i, digit := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			grouped.WriteRune(' ')
		}
		grouped.WriteRune(digit)
	}
	return grouped.String() + " ₽"
}

// RejectionSummary counts rejected tenders by reason — a small convenience
// for a one-line summary of a debug render without walking the full
// rejected slice. No HTTP handler calls it.
func RejectionSummary(rejected []RejectedCard) map[matching.RejectReason]int {
	out := make(map[matching.RejectReason]int)
	for _, r := range rejected {
		out[r.Reason]++
	}
	return out
}
