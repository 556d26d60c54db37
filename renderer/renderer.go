// Package renderer turns cash-flow reports into markdown documents.
//
// Every function returns a complete document, ready to be printed as is or
// rendered for a terminal.
package renderer
