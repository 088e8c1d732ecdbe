package domain

import "slices"

// Breakdown is one row of a breakdown table
type Breakdown struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// breakdownCounter accumulates counts per label, remembering the order in
// which labels were first seen.
type breakdownCounter struct {
	order  []string
	counts map[string]int
}

func newBreakdownCounter() *breakdownCounter {
	return &breakdownCounter{counts: make(map[string]int)}
}

func (c *breakdownCounter) add(label string, n int) {
	if _, ok := c.counts[label]; !ok {
		c.order = append(c.order, label)
	}
	c.counts[label] += n
}

func (c *breakdownCounter) total() int {
	sum := 0
	for _, n := range c.counts {
		sum += n
	}
	return sum
}

// sorted returns the rows by descending count; ties keep encounter order.
// Percentages are relative to the counter's own total.
func (c *breakdownCounter) sorted() []Breakdown {
	total := c.total()
	rows := make([]Breakdown, 0, len(c.order))
	for _, label := range c.order {
		n := c.counts[label]
		rows = append(rows, Breakdown{Label: label, Count: n, Percent: Percent(n, total)})
	}
	SortBreakdown(rows)
	return rows
}

// SortBreakdown sorts rows by descending count, keeping the original order
// of equal counts.
func SortBreakdown(rows []Breakdown) {
	slices.SortStableFunc(rows, func(a, b Breakdown) int {
		return b.Count - a.Count
	})
}

// BreakdownTotal sums the counts of rows
func BreakdownTotal(rows []Breakdown) int {
	sum := 0
	for _, r := range rows {
		sum += r.Count
	}
	return sum
}
