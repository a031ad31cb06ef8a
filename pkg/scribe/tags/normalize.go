package tags

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/scribehq/scribe/pkg/scribe/models"
	"gorm.io/gorm"
)

// MaxNameLength is the longest tag name accepted, matching the column size.
const MaxNameLength = 50

// ErrNameTooLong is returned when a tag name exceeds MaxNameLength after trimming
var ErrNameTooLong = errors.New("tag name too long")

// Normalize turns a comma-separated tag string into tag records.
// Each fragment is trimmed; empty fragments and duplicates are dropped.
// Existing tags are reused by exact name match, new names create new tags.
// Matching is case-sensitive: "Go" and "go" are distinct tags.
// An empty input returns an empty slice, which clears tags on update flows.
func Normalize(db *gorm.DB, raw string) ([]models.Tag, error) {
	tags := []models.Tag{}
	seen := make(map[string]bool)

	for _, fragment := range strings.Split(raw, ",") {
		name := strings.TrimSpace(fragment)
		if name == "" || seen[name] {
			continue
		}
		if utf8.RuneCountInString(name) > MaxNameLength {
			return nil, ErrNameTooLong
		}
		seen[name] = true

		var tag models.Tag
		if err := db.Where("name = ?", name).First(&tag).Error; err != nil {
			tag = models.Tag{Name: name}
			if err := db.Create(&tag).Error; err != nil {
				return nil, err
			}
		}
		tags = append(tags, tag)
	}

	return tags, nil
}

// Join renders a tag set back into the comma-separated form used by edit forms
func Join(tags []models.Tag) string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return strings.Join(names, ", ")
}
