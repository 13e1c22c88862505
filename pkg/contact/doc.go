// Package contact wires a contact form to the remote users/posts API and keeps
// the view state the page renders from.
//
// The Fetcher loads users and posts and creates posts, flipping the loading
// and error flags as requests complete. The Controller owns the form, submits
// it, drives the transient success banner, and coordinates user selection and
// refreshes. Every state change is a direct flag assignment made when a
// request completes; there is no further state machine.
//
// Users and posts failures are intentionally asymmetric: a users failure sets
// the visible error string while a posts failure is only logged.
package contact
