package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	apiclient "github.com/trolley-nz/trolley/internal/api/client"
	domain "github.com/trolley-nz/trolley/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printProductsTable(products []domain.ProductWithPrices) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tNAME\tBRAND\tCATEGORY\tCHEAPEST\tAT\tSPECIAL\n")
	for i := range products {
		p := &products[i]
		cheapest := p.CheapestPrice()
		price, at := "-", "-"
		if cheapest.Available() {
			price = fmt.Sprintf("$%.2f", cheapest.Price)
			at = string(cheapest.Store)
		}
		special := ""
		if p.OnSpecialAt(cheapest.Store) {
			special = "yes"
		}
		tw.writef("%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID,
			truncate(p.Name, 32),
			truncate(p.Brand, 20),
			p.Category,
			price,
			at,
			special,
		)
	}
	return tw.finish()
}

func printProductDetail(p *domain.ProductWithPrices) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID:\t%s\n", p.ID)
	tw.writef("Name:\t%s\n", p.Name)
	tw.writef("Brand:\t%s\n", p.Brand)
	tw.writef("Category:\t%s\n", p.Category)
	tw.writef("Size:\t%s %s\n", p.Size, p.Unit)
	for i := range p.Prices {
		sp := &p.Prices[i]
		line := fmt.Sprintf("$%.2f", sp.Price)
		if sp.OnSpecial && sp.SpecialPrice != nil {
			line = fmt.Sprintf("$%.2f (was $%.2f", *sp.SpecialPrice, sp.Price)
			if sp.SpecialLabel != "" {
				line += ", " + sp.SpecialLabel
			}
			line += ")"
		}
		tw.writef("%s:\t%s\n", sp.Store, line)
	}
	return tw.finish()
}

func printStoresTable(stores []domain.StoreInfo) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("NAME\tTAGLINE\n")
	for i := range stores {
		tw.writef("%s\t%s\n", stores[i].Name, stores[i].Tagline)
	}
	return tw.finish()
}

func printRecipesTable(recipes []domain.Recipe) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tNAME\tCOOK TIME\tSERVES\tDIFFICULTY\tINGREDIENTS\n")
	for i := range recipes {
		r := &recipes[i]
		tw.writef("%s\t%s\t%dm\t%d\t%s\t%s\n",
			r.ID,
			truncate(r.Name, 32),
			r.CookTime,
			r.Servings,
			r.Difficulty,
			truncate(strings.Join(r.Ingredients, ", "), 48),
		)
	}
	return tw.finish()
}

func printMatchesTable(matches []apiclient.MatchResult) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("RECIPE\tMATCHED\tMISSING\tCOOK TIME\n")
	for i := range matches {
		m := &matches[i]
		tw.writef("%s\t%d/%d\t%s\t%dm\n",
			truncate(m.Recipe.Name, 32),
			len(m.Matched),
			len(m.Recipe.Ingredients),
			truncate(strings.Join(m.Missing, ", "), 40),
			m.Recipe.CookTime,
		)
	}
	return tw.finish()
}

func printListTable(items []domain.ShoppingListItem) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tNAME\tQTY\tCHEAPEST\tAT\tDONE\n")
	for i := range items {
		item := &items[i]
		cheapest := item.Product.CheapestPrice()
		price, at := "-", "-"
		if cheapest.Available() {
			price = fmt.Sprintf("$%.2f", cheapest.Price*float64(item.Quantity))
			at = string(cheapest.Store)
		}
		done := ""
		if item.Checked {
			done = "x"
		}
		tw.writef("%s\t%s\t%d\t%s\t%s\t%s\n",
			item.ID,
			truncate(item.Product.Name, 32),
			item.Quantity,
			price,
			at,
			done,
		)
	}
	return tw.finish()
}

func printOptimizedList(ol *domain.OptimizedList) error {
	tw := newTabWriter(os.Stdout)
	for i := range ol.Groups {
		g := &ol.Groups[i]
		tw.writef("%s\t$%.2f\n", g.Store, g.Total)
		for j := range g.Items {
			item := &g.Items[j]
			tw.writef("  %s\tx%d\n", truncate(item.Product.Name, 32), item.Quantity)
		}
	}
	tw.writef("\n")
	tw.writef("Total:\t$%.2f\n", ol.TotalCost)
	tw.writef("Worst case:\t$%.2f\n", ol.WorstCaseCost)
	tw.writef("You save:\t$%.2f\n", ol.TotalSavings)
	return tw.finish()
}

func printFridgeItems(items []string) {
	for _, item := range items {
		fmt.Println(item)
	}
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
