package navigation

import (
	"reflect"
	"testing"

	"github.com/olegiv/gov-portal/internal/model"
)

func TestNavigateAndBack(t *testing.T) {
	m := New()
	m.NavigateTo(PageSchemes, "")
	m.NavigateTo(PageContact, "")

	top := m.GoBack()
	if m.Current() != PageSchemes || m.Depth() != 1 {
		t.Errorf("after back: page=%q depth=%d, want schemes/1", m.Current(), m.Depth())
	}
	if top.Page != PageSchemes {
		t.Errorf("GoBack returned %+v", top)
	}
}

func TestGoBackRestoresSection(t *testing.T) {
	m := New()
	m.NavigateTo(PageAdmin, "users")
	m.NavigateTo(PageAdmin, "feedback")
	m.GoBack()

	if m.Current() != PageAdmin || m.Section() != "users" {
		t.Errorf("page=%q section=%q, want admin/users", m.Current(), m.Section())
	}
}

func TestGoBackShallowHistory(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Machine)
	}{
		{"empty", func(*Machine) {}},
		{"single entry", func(m *Machine) { m.NavigateTo(PageAbout, "") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			tt.setup(m)
			m.GoBack()

			if m.Current() != PageHome || m.Depth() != 0 {
				t.Errorf("page=%q depth=%d, want home/0", m.Current(), m.Depth())
			}
			if m.BackVisible() {
				t.Error("back button visible on home")
			}
		})
	}
}

func TestNavigateUnknownPage(t *testing.T) {
	m := New()
	m.NavigateTo(PageAbout, "")

	if shown := m.NavigateTo("nowhere", ""); shown {
		t.Error("unknown page reported as displayed")
	}
	if m.Current() != PageAbout {
		t.Errorf("Current = %q, want about", m.Current())
	}
	if m.Depth() != 2 {
		t.Errorf("Depth = %d, want 2", m.Depth())
	}
}

func TestShowDoesNotPush(t *testing.T) {
	m := New()
	m.NavigateTo(PageSchemes, "")
	m.Show(PageContact)

	if m.Current() != PageContact || m.Depth() != 1 {
		t.Errorf("page=%q depth=%d", m.Current(), m.Depth())
	}
	want := []model.NavigationEntry{{Page: PageSchemes}}
	if !reflect.DeepEqual(m.History(), want) {
		t.Errorf("History = %+v", m.History())
	}
}

func TestShortcutPage(t *testing.T) {
	tests := []struct {
		n    int
		want string
		ok   bool
	}{
		{1, PageHome, true},
		{3, PageSchemes, true},
		{6, PageContact, true},
		{0, "", false},
		{7, "", false},
	}
	for _, tt := range tests {
		got, ok := ShortcutPage(tt.n)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ShortcutPage(%d) = %q, %v; want %q, %v", tt.n, got, ok, tt.want, tt.ok)
		}
	}
}

func TestHistoryIsCopy(t *testing.T) {
	m := New()
	m.NavigateTo(PageAbout, "")
	h := m.History()
	h[0].Page = "mutated"

	if m.History()[0].Page != PageAbout {
		t.Error("History exposes internal slice")
	}
}
