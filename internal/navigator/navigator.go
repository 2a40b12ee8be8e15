// Package navigator tracks which screen of the dashboard is on display.
//
// The set of screens is closed: View values only come from the constants
// below or from ParseView, which rejects unknown slugs at the edge of the
// program. Every view may follow every other view; there is no history.
package navigator

import "fmt"

type View uint8

const (
	Landing View = iota
	Login
	Signup
	Dashboard
	Inventory
	Sales
	Billing
	Suppliers
	Reports
	Profile

	viewCount
)

type viewInfo struct {
	slug  string
	label string
	shell bool
}

var views = [viewCount]viewInfo{
	Landing:   {slug: "landing", label: "Home"},
	Login:     {slug: "login", label: "Sign In"},
	Signup:    {slug: "signup", label: "Create Account"},
	Dashboard: {slug: "dashboard", label: "Dashboard", shell: true},
	Inventory: {slug: "inventory", label: "Inventory", shell: true},
	Sales:     {slug: "sales", label: "Sales Panel", shell: true},
	Billing:   {slug: "billing", label: "Billing", shell: true},
	Suppliers: {slug: "suppliers", label: "Suppliers", shell: true},
	Reports:   {slug: "reports", label: "Reports", shell: true},
	Profile:   {slug: "profile", label: "Profile", shell: true},
}

// ParseView maps a slug such as "inventory" to its View.
func ParseView(slug string) (View, bool) {
	for v, info := range views {
		if info.slug == slug {
			return View(v), true
		}
	}
	return 0, false
}

// All returns every view in declaration order.
func All() []View {
	all := make([]View, 0, viewCount)
	for v := View(0); v < viewCount; v++ {
		all = append(all, v)
	}
	return all
}

// Menu returns the sidebar entries of the dashboard layout in display order.
func Menu() []View {
	return []View{Dashboard, Inventory, Sales, Billing, Suppliers, Reports, Profile}
}

func (v View) Valid() bool { return v < viewCount }

func (v View) String() string {
	if !v.Valid() {
		return fmt.Sprintf("View(%d)", uint8(v))
	}
	return views[v].slug
}

func (v View) Slug() string  { return v.String() }
func (v View) Label() string { return views[v.mustValid()].label }

// InShell reports whether the view renders inside the dashboard layout
// (sidebar and header) rather than as a standalone page.
func (v View) InShell() bool { return views[v.mustValid()].shell }

// Path is the URL the web layer serves the view on.
func (v View) Path() string {
	if v == Landing {
		return "/"
	}
	return "/" + v.Slug()
}

func (v View) mustValid() View {
	if !v.Valid() {
		panic(fmt.Sprintf("navigator: unknown view %d", uint8(v)))
	}
	return v
}

// Navigator holds the current view and the scroll offset within it.
// It is not safe for concurrent use.
type Navigator struct {
	current View
	scroll  int
}

// New returns a navigator showing the landing page.
func New() *Navigator {
	return &Navigator{current: Landing}
}

// Navigate makes v the current view and scrolls back to the top.
// Passing a value outside the View constants is a programming error.
func (n *Navigator) Navigate(v View) {
	n.current = v.mustValid()
	n.scroll = 0
}

func (n *Navigator) Current() View { return n.current }

func (n *Navigator) ScrollOffset() int { return n.scroll }

// Scroll records how far down the current view the user has scrolled.
// Negative offsets clamp to the top.
func (n *Navigator) Scroll(offset int) {
	n.scroll = max(offset, 0)
}
