package models

// User is the authenticated identity held by the session store. A session
// either has a full User or none at all; there is no partial state.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
