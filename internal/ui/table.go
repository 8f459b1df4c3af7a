package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/five82/storefront/internal/query"
)

type column struct {
	title string
	width int
}

// renderContent renders the active view below the header.
func (m Model) renderContent() string {
	styles := m.theme.Styles()
	var b strings.Builder

	if m.snap.filterable() {
		b.WriteString(m.renderFilterBar(styles))
		b.WriteString("\n")
	}

	switch {
	case m.snap.onCart():
		b.WriteString(m.renderCart(styles))
	case !m.snap.hasView:
		b.WriteString(styles.MutedText.Render("Nothing to show at " + m.snap.location.Path))
	default:
		b.WriteString(m.renderList(styles))
		b.WriteString("\n")
		b.WriteString(m.renderPagination(styles))
	}

	if m.flash != "" {
		b.WriteString("\n")
		b.WriteString(styles.WarningText.Render(m.flash))
	}
	return b.String()
}

func (m Model) renderFilterBar(styles Styles) string {
	q := query.Parse(m.snap.location.Values, query.DomainProducts)
	arrow := "↑"
	if q.SortOrder == query.SortDesc {
		arrow = "↓"
	}
	category := q.Category
	if category == "" {
		category = "all"
	}

	parts := []string{
		styles.MutedText.Render("sort ") + styles.AccentText.Render(q.SortBy+" "+arrow),
		styles.MutedText.Render("category ") + styles.AccentText.Render(category),
	}
	st := m.snap.status
	switch {
	case st.CategoryLoading:
		parts = append(parts, styles.WarningText.Render(m.spinner.View()+" categories"))
	case st.CategoryError != "":
		parts = append(parts, styles.DangerText.Render("categories: "+truncate(st.CategoryError, 40)))
	}
	parts = append(parts, m.input.View())
	return strings.Join(parts, styles.FaintText.Render("  |  "))
}

func (m Model) renderList(styles Styles) string {
	switch m.snap.view.Domain {
	case query.DomainProducts:
		cols := []column{{"ID", 6}, {"Product", 28}, {"Price", 10}, {"Special", 10}, {"Stock", 6}, {"In cart", 7}}
		rows := make([][]string, 0, len(m.snap.products.Items))
		for _, p := range m.snap.products.Items {
			inCart := 0
			for _, it := range m.snap.cart.Items {
				if it.ProductID == p.ProductID {
					inCart = it.Quantity
				}
			}
			rows = append(rows, []string{id(p.ProductID), p.ProductName, money(p.Price), money(p.SpecialPrice), strconv.Itoa(p.Quantity), strconv.Itoa(inCart)})
		}
		return m.renderTable(styles, cols, rows)

	case query.DomainCategories:
		cols := []column{{"ID", 6}, {"Category", 30}}
		rows := make([][]string, 0, len(m.snap.categories.Items))
		for _, c := range m.snap.categories.Items {
			rows = append(rows, []string{id(c.CategoryID), c.CategoryName})
		}
		return m.renderTable(styles, cols, rows)

	case query.DomainOrders:
		cols := []column{{"ID", 6}, {"Email", 28}, {"Date", 12}, {"Status", 14}, {"Items", 5}, {"Total", 10}}
		rows := make([][]string, 0, len(m.snap.orders.Items))
		for _, o := range m.snap.orders.Items {
			rows = append(rows, []string{id(o.OrderID), o.Email, o.OrderDate, o.OrderStatus, strconv.Itoa(len(o.OrderItems)), money(o.TotalAmount)})
		}
		return m.renderTable(styles, cols, rows)

	case query.DomainSellers:
		cols := []column{{"ID", 6}, {"Username", 20}, {"Email", 30}}
		rows := make([][]string, 0, len(m.snap.sellers.Items))
		for _, s := range m.snap.sellers.Items {
			rows = append(rows, []string{id(s.UserID), s.Username, s.Email})
		}
		return m.renderTable(styles, cols, rows)
	}
	return ""
}

func (m Model) renderCart(styles Styles) string {
	cols := []column{{"ID", 6}, {"Product", 28}, {"Qty", 5}, {"Unit", 10}, {"Line", 10}}
	cart := m.snap.cart
	rows := make([][]string, 0, len(cart.Items))
	for _, it := range cart.Items {
		rows = append(rows, []string{id(it.ProductID), it.ProductName, strconv.Itoa(it.Quantity), money(it.UnitPrice), money(it.LineTotal())})
	}

	var b strings.Builder
	b.WriteString(m.renderTable(styles, cols, rows))
	b.WriteString("\n")
	b.WriteString(styles.Text.Render("total " + money(cart.TotalPrice)))
	if cart.CartID != nil {
		b.WriteString(styles.FaintText.Render(fmt.Sprintf("  cart #%d", *cart.CartID)))
	} else {
		b.WriteString(styles.FaintText.Render("  not uploaded"))
	}
	return b.String()
}

func (m Model) renderTable(styles Styles, cols []column, rows [][]string) string {
	var b strings.Builder
	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = cell(c.title, c.width)
	}
	b.WriteString(styles.ColumnHeader.Render(strings.Join(titles, " ")))
	b.WriteString("\n")

	if len(rows) == 0 {
		b.WriteString(styles.MutedText.Render("No results"))
		return b.String()
	}
	for i, row := range rows {
		cells := make([]string, len(cols))
		for j, c := range cols {
			cells[j] = cell(row[j], c.width)
		}
		line := strings.Join(cells, " ")
		if i == m.selected {
			b.WriteString(styles.Selected.Render(line))
		} else {
			b.WriteString(styles.Text.Render(line))
		}
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderPagination(styles Styles) string {
	meta := m.snap.meta()
	pages := max(meta.TotalPages, 1)
	return styles.FaintText.Render(fmt.Sprintf("page %d of %d | %d results", meta.PageNumber+1, pages, meta.TotalElements))
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}
