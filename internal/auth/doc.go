// Package auth authenticates admin dashboard users.
//
// There is a single role: an account in admin_users either exists and knows
// its password or it does not. New hashes are Argon2id. Bcrypt hashes from
// earlier installations are still accepted and replaced by an Argon2id hash
// on the next successful login.
//
// Example usage:
//
//	authService := auth.NewService(db)
//
//	user, err := authService.Authenticate(email, password)
//	if errors.Is(err, auth.ErrInvalidPassword) {
//	    // 401
//	}
//
//	// create or reset the configured admin
//	res, err := authService.Bootstrap(cfg.Admin.Email, cfg.Admin.Name, cfg.Admin.Password)
package auth
