// Package navigation provides the menus, breadcrumbs and active state of rendered pages.
package navigation

// Sections of the site. The active section highlights the menu entry.
const (
	SectionHome     = "home"
	SectionServices = "services"
	SectionProjects = "projects"
	SectionNews     = "news"
	SectionAbout    = "about"
	SectionContact  = "contact"

	SectionDashboard = "dashboard"
	SectionTeam      = "team"
	SectionMessages  = "messages"
	SectionSettings  = "settings"
)

// BreadcrumbItem represents a single breadcrumb link.
type BreadcrumbItem struct {
	Title  string
	URL    string
	Active bool
}

// MenuItem is an entry of a navigation bar.
type MenuItem struct {
	Title   string
	URL     string
	Section string
	Icon    string
}

// Context represents the navigation context for a page.
type Context struct {
	ActiveSection string
	ActivePage    string
	Breadcrumbs   []BreadcrumbItem
	PageTitle     string
	// Description overrides the site description in the page meta tags.
	Description string
}

//nolint:gochecknoglobals
var (
	publicMenu = []MenuItem{
		{Title: "Home", URL: "/", Section: SectionHome},
		{Title: "Services", URL: "/services", Section: SectionServices},
		{Title: "Projects", URL: "/projects", Section: SectionProjects},
		{Title: "News", URL: "/news", Section: SectionNews},
		{Title: "About", URL: "/about", Section: SectionAbout},
		{Title: "Contact", URL: "/contact", Section: SectionContact},
	}

	adminMenu = []MenuItem{
		{Title: "Dashboard", URL: "/admin", Section: SectionDashboard, Icon: "LayoutDashboard"},
		{Title: "Services", URL: "/admin/services", Section: SectionServices, Icon: "FileText"},
		{Title: "Projects", URL: "/admin/projects", Section: SectionProjects, Icon: "Briefcase"},
		{Title: "News", URL: "/admin/news", Section: SectionNews, Icon: "Newspaper"},
		{Title: "Team", URL: "/admin/team", Section: SectionTeam, Icon: "Users"},
		{Title: "Messages", URL: "/admin/messages", Section: SectionMessages, Icon: "Mail"},
		{Title: "Settings", URL: "/admin/settings", Section: SectionSettings, Icon: "Settings"},
	}
)

// PublicMenu returns the menu of the public site.
func PublicMenu() []MenuItem {
	return append([]MenuItem(nil), publicMenu...)
}

// AdminMenu returns the sidebar of the dashboard.
func AdminMenu() []MenuItem {
	return append([]MenuItem(nil), adminMenu...)
}

// NewContext creates a new navigation context.
func NewContext(pageTitle, activeSection, activePage string) *Context {
	return &Context{
		PageTitle:     pageTitle,
		ActiveSection: activeSection,
		ActivePage:    activePage,
		Breadcrumbs:   make([]BreadcrumbItem, 0),
	}
}

// AddBreadcrumb adds a breadcrumb item to the context.
func (c *Context) AddBreadcrumb(title, url string, active bool) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, BreadcrumbItem{
		Title:  title,
		URL:    url,
		Active: active,
	})

	return c
}

// WithDescription sets the page meta description.
func (c *Context) WithDescription(desc string) *Context {
	c.Description = desc

	return c
}

// IsActive checks if the given section and page match the current context.
func (c *Context) IsActive(section, page string) bool {
	return c.ActiveSection == section && c.ActivePage == page
}

// IsSectionActive checks if the given section is active.
func (c *Context) IsSectionActive(section string) bool {
	return c.ActiveSection == section
}
