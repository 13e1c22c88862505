// Package jsonplaceholder is a small typed client for the JSONPlaceholder REST
// API (https://jsonplaceholder.typicode.com). It covers the three calls the
// contact page needs: listing users, listing the first posts, and creating a
// post. The remote service echoes created records without persisting them.
package jsonplaceholder
