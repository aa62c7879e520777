// Package models provides the portfolio data models shared by the API client,
// the page controllers and the mock API.
//
// # Projects
//
// [Project] is the read-side shape returned by the portfolio API. It accepts
// the field variants seen in the wild: "_id" instead of "id", a singular
// "image", and list fields sent either as JSON arrays or comma-separated
// strings (see [StringList]).
//
// [ProjectInput] is the write-side payload for create and full-replace update:
//
//	in := models.ProjectInput{
//	    Title:        "Portfolio",
//	    Technologies: models.ParseCSV("Go, HTMX"),
//	}
//
// # Users
//
// [User] is a free-form profile object. Its identifier resolves as "id",
// falling back to "_id":
//
//	uid := user.ID()
package models
