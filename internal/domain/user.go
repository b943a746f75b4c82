package domain

import "strings"

type User struct {
	Name     string
	Listings []int
}

// Canonical lowercases a username for identity checks. Indices key on the
// canonical form; User.Name keeps the casing supplied at registration.
func Canonical(username string) string {
	return strings.ToLower(username)
}

func NewUser(name string) *User {
	return &User{Name: name}
}

// RemoveListing drops id from the user's owned listings, preserving order.
func (u *User) RemoveListing(id int) {
	for i, lid := range u.Listings {
		if lid == id {
			u.Listings = append(u.Listings[:i], u.Listings[i+1:]...)
			return
		}
	}
}
