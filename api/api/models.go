/* models.go
 * Request and response payloads for the callable operations.
 */

package api

// MigrateRequest is the payload of migrateGuestToMember.
type MigrateRequest struct {
	GroupID  string `json:"groupId" validate:"required"`
	GuestID  string `json:"guestId" validate:"required"`
	MemberID string `json:"memberId" validate:"required"`
}

// MigrateResponse reports the migration outcome to the caller.
type MigrateResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	MatchesUpdated int    `json:"matchesUpdated"`
}

// JoinRequest is the payload of joinGroup.
type JoinRequest struct {
	InviteCode string `json:"inviteCode" validate:"required"`
}

// JoinResponse reports the join outcome to the caller.
type JoinResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	GroupID       string `json:"groupId"`
	GroupName     string `json:"groupName"`
	AlreadyMember bool   `json:"alreadyMember"`
}
