package ui

import (
	"fmt"
	"strings"
)

// renderHeader renders the status bar: view, role, request state and cart.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{
		bg.Render("storefront", styles.Logo),
		bg.Render(m.viewTitle(), styles.AccentText),
		bg.Render(string(m.role()), styles.MutedText),
	}
	parts = append(parts, m.statusSegments(styles, bg)...)

	cart := m.snap.cart
	parts = append(parts, bg.Render(fmt.Sprintf("cart %d | %s", len(cart.Items), money(cart.TotalPrice)), styles.Text))

	if a := m.snap.analytics; a.Loaded {
		parts = append(parts, bg.Render(
			fmt.Sprintf("products %d | orders %d | revenue %s", a.ProductCount, a.TotalOrders, money(a.TotalRevenue)),
			styles.InfoText))
	}
	return bg.FillLine(bg.Join(parts, "  "), m.width)
}

// statusSegments describes the global and button tiers. The category tier
// is shown next to the category filter.
func (m Model) statusSegments(styles Styles, bg BgStyle) []string {
	st := m.snap.status
	var out []string
	if st.GlobalLoading {
		out = append(out, bg.Render(m.spinner.View()+" loading", styles.WarningText))
	}
	if st.ButtonLoading {
		out = append(out, bg.Render("working", styles.WarningText))
	}
	if st.GlobalError != "" {
		out = append(out, bg.Render("error: "+truncate(st.GlobalError, 60), styles.DangerText))
	}
	return out
}

func (m Model) viewTitle() string {
	switch {
	case m.snap.onCart():
		return "Cart"
	case m.snap.hasView:
		return m.snap.view.Title
	}
	return m.snap.location.Path
}

// renderCommandBar renders the short key help.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()
	return styles.Footer.Width(m.width).Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("Press any key to close"))
	return b.String()
}
