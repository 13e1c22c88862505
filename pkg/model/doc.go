// Package model defines the records exchanged with the remote REST API and the
// contact form snapshot. Users and posts are immutable once fetched; callers
// receive copies and never mutate the slices held by the view state.
package model
