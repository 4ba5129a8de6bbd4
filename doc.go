// Package main is the entry point of jls-web, the JL Surveying & Services
// website. It serves the public marketing pages and the admin dashboard used
// to edit services, projects, news and team members, read contact messages
// and change site settings. Content is stored with gorm in postgres, mysql or
// sqlite.
package main
