// Package authz decides whether an identity may mutate a post.
// Only a post's author may update or delete it; there is no admin bypass.
package authz

import "github.com/scribehq/scribe/pkg/scribe/models"

// Action is a mutating operation on a post
type Action string

const (
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Authorize reports whether the user may perform the action on the post.
// The rule is the same for every action: the requester must be the author.
func Authorize(userID uint, post *models.Post, action Action) bool {
	switch action {
	case ActionUpdate, ActionDelete:
		return userID == post.AuthorID
	default:
		return false
	}
}
