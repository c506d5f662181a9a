package service

// requireOwner gates mutations on stored resources. Existence is always
// checked before ownership so a missing resource surfaces as not-found, never
// as forbidden.
func requireOwner(ownerID, callerID int64, notOwnerErr error) error {
	if ownerID != callerID {
		return notOwnerErr
	}
	return nil
}
