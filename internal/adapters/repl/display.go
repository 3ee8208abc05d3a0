// internal/adapters/repl/display.go
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/ammerola/stockdesk/internal/core/domain"
	"github.com/ammerola/stockdesk/internal/core/services"
)

const (
	tableWidth = 78
	timeLayout = "2006-01-02 15:04"
)

func rule(w io.Writer, ch string) {
	fmt.Fprintln(w, strings.Repeat(ch, tableWidth))
}

// truncate shortens s to n runes
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "~"
}

// listStatus prints the loading, error and empty states. It reports whether
// rows should follow.
func listStatus[T any](w io.Writer, state services.State[T], plural string) bool {
	switch state.Status {
	case services.StatusIdle, services.StatusLoading:
		fmt.Fprintf(w, "  Loading %s...\n", plural)
		return false
	case services.StatusError:
		fmt.Fprintf(w, "  Could not load %s: %s\n", plural, domain.UserMessage(state.Err, "request failed"))
		return false
	}

	if state.Empty() {
		if q := state.Search.Committed; q != "" {
			fmt.Fprintf(w, "  No %s match %q.\n", plural, q)
		} else {
			fmt.Fprintf(w, "  No %s found.\n", plural)
		}
		return false
	}
	return true
}

func pager[T any](w io.Writer, state services.State[T]) {
	p := state.Page
	fmt.Fprintf(w, "  Page %d of %d  (%d total)", p.CurrentPage, p.TotalPages, p.TotalItems)
	if q := state.Search.Committed; q != "" {
		fmt.Fprintf(w, "  search: %q", q)
	}
	var hints []string
	if p.HasPrev() {
		hints = append(hints, "prev")
	}
	if p.HasNext() {
		hints = append(hints, "next")
	}
	if len(hints) > 0 {
		fmt.Fprintf(w, "  [%s]", strings.Join(hints, " | "))
	}
	fmt.Fprintln(w)
}

// PrintProducts renders one page of the product list
func PrintProducts(w io.Writer, state services.State[domain.Product]) {
	fmt.Fprintln(w)
	rule(w, "=")
	fmt.Fprintln(w, "  PRODUCTS")
	rule(w, "=")

	if listStatus(w, state, "products") {
		fmt.Fprintf(w, "  %-6s %-26s %-10s %-14s %10s %6s\n", "ID", "NAME", "SKU", "CATEGORY", "PRICE", "STOCK")
		rule(w, "-")
		for _, p := range state.Items {
			flag := ""
			if p.LowStock() {
				flag = " LOW"
			}
			fmt.Fprintf(w, "  %-6s %-26s %-10s %-14s %10s %6d%s\n",
				truncate(p.ID.String(), 6),
				truncate(p.Name, 26),
				truncate(p.SKU, 10),
				truncate(p.CategoryName(), 14),
				p.Price.StringFixed(2),
				p.Stock,
				flag)
		}
		rule(w, "-")
		pager(w, state)
	}
	rule(w, "=")
}

// PrintCategories renders one page of the category list
func PrintCategories(w io.Writer, state services.State[domain.Category]) {
	fmt.Fprintln(w)
	rule(w, "=")
	fmt.Fprintln(w, "  CATEGORIES")
	rule(w, "=")

	if listStatus(w, state, "categories") {
		fmt.Fprintf(w, "  %-8s %s\n", "ID", "NAME")
		rule(w, "-")
		for _, c := range state.Items {
			fmt.Fprintf(w, "  %-8s %s\n", truncate(c.ID.String(), 8), c.Name)
		}
		rule(w, "-")
		pager(w, state)
	}
	rule(w, "=")
}

// PrintProduct renders the detail view of one product
func PrintProduct(w io.Writer, p domain.Product) {
	fmt.Fprintf(w, "ID:        %s\n", p.ID)
	fmt.Fprintf(w, "NAME:      %s\n", p.Name)
	fmt.Fprintf(w, "SKU:       %s\n", p.SKU)
	fmt.Fprintf(w, "CATEGORY:  %s\n", p.CategoryName())
	fmt.Fprintf(w, "PRICE:     %s\n", p.Price.StringFixed(2))
	fmt.Fprintf(w, "STOCK:     %d\n", p.Stock)
	if p.Image != "" {
		fmt.Fprintf(w, "IMAGE:     %s\n", p.Image)
	}
}

// PrintMovements renders a product's audit log
func PrintMovements(w io.Writer, product domain.Product, movements []domain.Movement) {
	fmt.Fprintln(w)
	rule(w, "=")
	fmt.Fprintf(w, "  MOVEMENTS - %s\n", product.Name)
	rule(w, "=")

	if len(movements) == 0 {
		fmt.Fprintln(w, "  No movements recorded.")
		rule(w, "=")
		return
	}

	fmt.Fprintf(w, "  %-16s %-6s %6s  %-30s %s\n", "DATE", "TYPE", "QTY", "REASON", "USER")
	rule(w, "-")
	for _, m := range movements {
		date := "-"
		if !m.CreatedAt.IsZero() {
			date = m.CreatedAt.Local().Format(timeLayout)
		}
		kind := "EXIT"
		if m.IsEntry() {
			kind = "ENTRY"
		}
		fmt.Fprintf(w, "  %-16s %-6s %+6d  %-30s %s\n",
			date, kind, m.SignedQuantity(), truncate(m.Reason, 30), m.ActorName())
	}
	rule(w, "=")
}

// PrintDashboard renders the landing summary
func PrintDashboard(w io.Writer, s *services.DashboardSummary) {
	role := "client"
	if s.IsAdmin {
		role = "admin"
	}

	fmt.Fprintln(w)
	rule(w, "=")
	fmt.Fprintf(w, "  Welcome, %s (%s)\n", s.User.Name, role)
	rule(w, "=")
	fmt.Fprintf(w, "  Products:    %d\n", s.TotalProducts)
	fmt.Fprintf(w, "  Categories:  %d\n", s.TotalCategories)

	if len(s.LowStock) > 0 {
		rule(w, "-")
		fmt.Fprintf(w, "  LOW STOCK (below %d)\n", domain.LowStockThreshold)
		for _, p := range s.LowStock {
			fmt.Fprintf(w, "  %-6s %-40s %6d\n", truncate(p.ID.String(), 6), truncate(p.Name, 40), p.Stock)
		}
	}
	rule(w, "=")
}
