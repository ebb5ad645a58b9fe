// Package user models the people acting on orders.
//
// An Actor is the authenticated identity passed explicitly into every order
// operation: an id, a username and exactly one Role. A User is the stored
// credential record an Actor is derived from at login.
package user
