// Package report renders slips and validation results as plain-text tables for the CLI.
package report

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"jackpotsim/internal/betting"
)

var lang language.Tag = language.English

// Summary formats a validation result. Amounts use thousands separators.
func Summary(title string, res betting.Result) string {
	p := message.NewPrinter(lang)

	valid := "yes"
	if !res.IsValid {
		valid = "no"
	}
	t := newTable(title)
	t.add("Valid", valid)
	t.add("Combination Type", string(res.CombinationType))
	t.add("Doubles", p.Sprintf("%d", res.DoubleCount))
	t.add("Triples", p.Sprintf("%d", res.TripleCount))
	t.add("Total Combinations", p.Sprintf("%d", res.TotalCombinations))
	t.add("Total Cost", p.Sprintf("KSh %d", res.TotalCost))
	for i, e := range res.Errors {
		t.add(p.Sprintf("Error %d", i+1), e)
	}
	return t.String()
}

// Selections lists the picks of every game in game order.
func Selections(title string, sel betting.Selections) string {
	t := newTable(title)
	for _, g := range sel.Games() {
		picks := make([]string, len(sel[g]))
		for i, o := range sel[g] {
			picks[i] = string(o)
		}
		t.add("Game "+g, strings.Join(picks, " "))
	}
	return t.String()
}

// table is a two-column box with a centred title, rendered in insertion order.
type table struct {
	title      string
	labels     []string
	values     []string
	labelWidth int
	valueWidth int
}

func newTable(title string) *table {
	return &table{title: title}
}

func (t *table) add(label, value string) {
	t.labels = append(t.labels, label)
	t.values = append(t.values, value)
	t.labelWidth = max(t.labelWidth, runewidth.StringWidth(label))
	t.valueWidth = max(t.valueWidth, runewidth.StringWidth(value))
}

func (t *table) String() string {
	// one space of padding on each side of a cell
	left, right := t.labelWidth+2, t.valueWidth+2
	if w := runewidth.StringWidth(t.title); w > left+right+1 {
		right = w - left - 1
	}
	inner := left + right + 1
	titleWidth := runewidth.StringWidth(t.title)
	title := runewidth.FillRight(runewidth.FillLeft(t.title, titleWidth+(inner-titleWidth)/2), inner)

	var b strings.Builder
	b.WriteString("+" + strings.Repeat("-", inner) + "+\n")
	b.WriteString("|" + title + "|\n")
	divider := "+" + strings.Repeat("-", left) + "+" + strings.Repeat("-", right) + "+\n"
	b.WriteString(divider)
	for i, label := range t.labels {
		b.WriteString("| " + runewidth.FillRight(label, left-2) + " | " + runewidth.FillRight(t.values[i], right-2) + " |\n")
	}
	b.WriteString(divider)
	return b.String()
}
