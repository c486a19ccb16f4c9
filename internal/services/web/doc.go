// Package web hosts the marketing site: it bootstraps the app and serves it
// over HTTP with bounded shutdown.
package web
