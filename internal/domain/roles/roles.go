// Package roles holds the community role hierarchy and the permission matrix
// built on it: head > admin > member.
package roles

import "strings"

// Role is a member's standing inside one community.
type Role string

const (
	Head   Role = "head"
	Admin  Role = "admin"
	Member Role = "member"
)

var rank = map[Role]int{
	Member: 1,
	Admin:  2,
	Head:   3,
}

// Parse normalizes s into a Role; ok is false for unknown values.
func Parse(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	_, ok := rank[r]
	return r, ok
}

// Rank returns the position of r in the hierarchy, 0 for unknown roles.
func (r Role) Rank() int {
	return rank[r]
}

// AtLeast reports whether r is min or above.
func (r Role) AtLeast(min Role) bool {
	return r.Rank() > 0 && r.Rank() >= min.Rank()
}

func (r Role) String() string {
	return string(r)
}

// CanTransferHead: only the head hands over headship.
func CanTransferHead(actor Role) bool {
	return actor == Head
}

// CanModerate covers removing, promoting and demoting members, deleting
// other people's posts, comments and events, and creating events.
func CanModerate(actor Role) bool {
	return actor.AtLeast(Admin)
}

// CanDeleteContent reports whether actorID with role may delete content
// owned by ownerID.
func CanDeleteContent(actorID, ownerID uint, actor Role) bool {
	return actorID == ownerID || CanModerate(actor)
}

// CanChangeRoleOf reports whether actor may promote/demote or remove a member
// currently holding target. Nobody but the head itself changes the head.
func CanChangeRoleOf(actor, target Role) bool {
	if !CanModerate(actor) {
		return false
	}
	return target != Head
}
