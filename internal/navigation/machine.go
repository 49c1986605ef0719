// Package navigation tracks the displayed page, the active section and the
// back-navigation history of one portal session.
package navigation

import (
	"slices"

	"github.com/olegiv/gov-portal/internal/model"
)

// Pages known to the portal.
const (
	PageHome          = "home"
	PageAbout         = "about"
	PageSchemes       = "schemes"
	PageCitizen       = "citizen"
	PageAccessibility = "accessibility"
	PageContact       = "contact"
	PageDashboard     = "dashboard"
	PageAdmin         = "admin"
)

var knownPages = []string{
	PageHome, PageAbout, PageSchemes, PageCitizen,
	PageAccessibility, PageContact, PageDashboard, PageAdmin,
}

// shortcutPages maps Alt+1..Alt+6 to their pages.
var shortcutPages = []string{
	PageHome, PageAbout, PageSchemes, PageCitizen, PageAccessibility, PageContact,
}

// KnownPages returns the displayable pages.
func KnownPages() []string {
	return slices.Clone(knownPages)
}

// IsKnownPage reports whether page can be displayed.
func IsKnownPage(page string) bool {
	return slices.Contains(knownPages, page)
}

// ShortcutPage returns the page bound to the Alt+n keyboard shortcut.
func ShortcutPage(n int) (string, bool) {
	if n < 1 || n > len(shortcutPages) {
		return "", false
	}
	return shortcutPages[n-1], true
}

// Machine is the navigation state machine. The zero value is not usable;
// create one with New. A Machine is not safe for concurrent use.
type Machine struct {
	page    string
	section string
	history []model.NavigationEntry
}

// New returns a machine displaying the home page with an empty history.
func New() *Machine {
	return &Machine{page: PageHome}
}

// Current returns the displayed page.
func (m *Machine) Current() string { return m.page }

// Section returns the active section, or "" when none is set.
func (m *Machine) Section() string { return m.section }

// Depth returns the number of history entries.
func (m *Machine) Depth() int { return len(m.history) }

// History returns a copy of the history stack, oldest first.
func (m *Machine) History() []model.NavigationEntry {
	return slices.Clone(m.history)
}

// NavigateTo pushes {page, section} onto the history and displays it.
// An unknown page is still pushed but leaves the display unchanged; the
// return value reports whether the page was displayed.
func (m *Machine) NavigateTo(page, section string) bool {
	m.history = append(m.history, model.NavigationEntry{Page: page, Section: section})
	return m.display(page, section)
}

// GoBack pops the current entry and displays the new top. With one entry
// or fewer it displays home and clears the history.
func (m *Machine) GoBack() model.NavigationEntry {
	if len(m.history) <= 1 {
		m.history = m.history[:0]
		m.display(PageHome, "")
		return model.NavigationEntry{Page: PageHome}
	}

	m.history = m.history[:len(m.history)-1]
	top := m.history[len(m.history)-1]
	m.display(top.Page, top.Section)
	return top
}

// Show displays page without touching the history.
func (m *Machine) Show(page string) bool {
	return m.display(page, "")
}

// SetSection changes the active section of the displayed page without
// touching the history.
func (m *Machine) SetSection(section string) {
	m.section = section
}

// Reset displays home and clears the history.
func (m *Machine) Reset() {
	m.history = m.history[:0]
	m.display(PageHome, "")
}

// BackVisible reports whether the back button is shown.
func (m *Machine) BackVisible() bool {
	return m.page != PageHome
}

func (m *Machine) display(page, section string) bool {
	if !IsKnownPage(page) {
		return false
	}
	m.page = page
	m.section = section
	return true
}
