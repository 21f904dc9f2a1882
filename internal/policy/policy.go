package policy

// Profile editing is strictly ownership based: a user may only edit their
// own profile. Role membership grants no override.

// CanEditProfile reports whether the acting principal may open the edit form
// for, or update, the target user's profile.
func CanEditProfile(principalID, targetID string) bool {
	if principalID == "" {
		return false
	}
	return principalID == targetID
}

// CanViewProfile reports whether a principal may view a profile. Profiles
// are public; this exists so the view route goes through the same policy
// layer as editing.
func CanViewProfile(principalID, targetID string) bool {
	return true
}
