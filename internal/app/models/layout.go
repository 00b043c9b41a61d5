package models

import "github.com/a-h/templ"

type User struct {
	ID    string
	Name  string
	Email string
}

type NavItem struct {
	Name string
	URL  string
	Icon string
}

type Navigation struct {
	Items []NavItem
}

type LayoutTempl struct {
	Title     string
	User      *User
	Nav       Navigation
	ActiveNav string
	Content   templ.Component
	// PageID identifies this page load on later HTMX requests.
	PageID string
	// Widgets are rendered after the main content (chat panel).
	Widgets templ.Component
	// Flash toasts rendered once on this page load.
	Flash []Notification
}

// UserID returns the id exposed on the page body, empty for anonymous visitors.
func (l LayoutTempl) UserID() string {
	if l.User == nil {
		return ""
	}
	return l.User.ID
}

var MainNav = Navigation{
	Items: []NavItem{
		{Name: "Inicio", URL: "/"},
		{Name: "Negocios", URL: "#negocios"},
		{Name: "Salir", URL: "/logout"},
	},
}

var OfflineNav = Navigation{
	Items: []NavItem{
		{Name: "Inicio", URL: "/"},
		{Name: "Negocios", URL: "#negocios"},
		{Name: "Iniciar sesión", URL: "/login"},
		{Name: "Registro", URL: "/register"},
	},
}

// Categories shown as quick filters on the home page.
var Categories = []string{"Restaurantes", "Hospedajes", "Sitios Turisticos", "Bares"}
