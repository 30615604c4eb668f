// Package common contains shared constants and sentinel errors used across
// the bookstore server and its admin tooling.
package common

// SessionCookieName is the cookie that carries the signed session token.
const SessionCookieName = "bookstore.sid"

// ShopName is rendered in every page header.
const ShopName = "Bertie's Books"
