package model

// NavigationEntry is one step of the navigation history.
// Section is empty when the entry targets a whole page.
type NavigationEntry struct {
	Page    string `json:"page"`
	Section string `json:"section,omitempty"`
}
