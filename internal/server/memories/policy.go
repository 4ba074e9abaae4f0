package memories

import "github.com/haiderzaidi/allaboutme/internal/idgen"

// Access rules for memory records: reads require the record to be public or
// owned by the requester; writes require ownership with no privacy
// exception. Write misses surface as not-found so that "exists but
// forbidden" and "does not exist" are indistinguishable.

// CanRead reports whether the requester may read the memory. An empty
// requesterID means an unauthenticated caller.
func CanRead(m *Memory, requesterID string) bool {
	if !m.IsPrivate {
		return true
	}
	return requesterID != "" && m.UserID == requesterID
}

// SearchScope returns the candidate-set restriction for a search or listing.
// Without a valid requester identity, or when private records are not
// requested alongside one, only public memories are candidates. A valid
// identity asking for private records is restricted to its own memories;
// a caller can never search another user's private records.
func SearchScope(requesterID string, includePrivate bool) Scope {
	if requesterID == "" || !idgen.Validate(requesterID, idgen.PrefixUser) {
		return Scope{PublicOnly: true}
	}
	if includePrivate {
		return Scope{OwnerID: requesterID}
	}
	return Scope{OwnerID: requesterID, PublicOnly: true}
}
