// Package search builds post filters for the /search route.
package search

import (
	"strings"

	"gorm.io/gorm"
)

// Search modes accepted in the search_by query parameter.
// Anything else, including an absent parameter, falls through to ModeAny.
const (
	ModeTitle  = "title"
	ModeAuthor = "author"
	ModeTag    = "tag"
	ModeAny    = "any"
)

// Filter returns a GORM scope restricting a posts query to matches for
// the given query string and mode.
//
// title and author match by case-insensitive substring; tag matches a tag
// name exactly, and an unknown tag yields an empty result rather than an
// error. Any other mode is the union of all three with tag names matched
// by substring, grouped by post so a double match appears once.
//
// An empty query matches nothing in every mode.
func Filter(query, mode string) func(*gorm.DB) *gorm.DB {
	if query == "" {
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("1 = 0")
		}
	}

	pattern := "%" + strings.ToLower(query) + "%"

	switch mode {
	case ModeTitle:
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("LOWER(posts.title) LIKE ?", pattern)
		}
	case ModeAuthor:
		return func(db *gorm.DB) *gorm.DB {
			return db.
				Joins("JOIN users ON users.id = posts.author_id").
				Where("LOWER(users.username) LIKE ?", pattern)
		}
	case ModeTag:
		return func(db *gorm.DB) *gorm.DB {
			return db.
				Joins("JOIN post_tags ON post_tags.post_id = posts.id").
				Joins("JOIN tags ON tags.id = post_tags.tag_id").
				Where("tags.name = ?", query)
		}
	default:
		return func(db *gorm.DB) *gorm.DB {
			return db.
				Joins("JOIN users ON users.id = posts.author_id").
				Joins("LEFT JOIN post_tags ON post_tags.post_id = posts.id").
				Joins("LEFT JOIN tags ON tags.id = post_tags.tag_id").
				Where("LOWER(posts.title) LIKE ? OR LOWER(users.username) LIKE ? OR LOWER(tags.name) LIKE ?",
					pattern, pattern, pattern).
				Group("posts.id")
		}
	}
}
