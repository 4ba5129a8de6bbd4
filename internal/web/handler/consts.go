package handler

const (
	// PublicLayout wraps every page of the public site.
	PublicLayout = "layouts/public"

	// AdminLayout wraps the admin dashboard pages.
	AdminLayout = "layouts/admin"

	// RootPath is the root path the route group.
	RootPath = "/"

	// AdminPath is the prefix of all dashboard routes.
	AdminPath = "/admin"

	// APIPath is the prefix of all JSON routes.
	APIPath = "/api"

	// NotFoundTemplate is rendered for unknown pages and records.
	NotFoundTemplate = "errors/404"

	// ServerErrorTemplate is rendered when a page cannot be built.
	ServerErrorTemplate = "errors/500"

	// ErrNilACDFatalLogMsg is used if app or cfg or db var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or db is nil"

	// LocalsCurrentUser holds the session.User of a signed in admin.
	LocalsCurrentUser = "CurrentUser"

	// LocalsSite holds the site.Settings for templates.
	LocalsSite = "Site"
)
