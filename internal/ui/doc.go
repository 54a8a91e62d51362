// Package ui implements the interactive terminal browser for the Streamlet
// client: playlist and watch-history lists with engagement keys wired to the
// state stores' optimistic toggles.
package ui
