// Package auth provides the session checks guarding the admin dashboard and the admin API.
//
// The middleware performs the following tasks:
//   - Redirects dashboard requests without a valid session to the login page
//   - Answers API requests without a valid session with 401 JSON
//   - Adds the current admin to fiber.Locals for handlers and templates
//   - Sends signed in users away from the login page
//   - Ends sessions whose admin was deleted or changed the password
//
// Init must be called with the database before the middleware serves requests.
//
// Usage:
//
//	app.Use(handler.AdminPath, authmiddleware.RequireAdmin)
package auth
