package services

// CanMutate reports whether actorID may update or delete the resource owned by ownerID.
func CanMutate(actorID, ownerID string) bool {
	return actorID != "" && actorID == ownerID
}
