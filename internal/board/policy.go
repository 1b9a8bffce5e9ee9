package board

import "bulletin/internal/models"

// canMutate is the access policy: may caller perform a mutation on an entity
// with the given creator and current status, moving it to requested?
//
// Only the creator may ever mutate an entity; there is no moderator role.
// The structural side delegates to the lifecycle table, so a legal transition
// by a non-owner and an illegal transition by the owner are rejected the same
// way. Callers collapse both into the NoPermission sentinel.
func canMutate(caller, creator models.AccountID, current, requested models.Status) bool {
	if caller != creator {
		return false
	}
	return current.CanTransition(requested)
}
