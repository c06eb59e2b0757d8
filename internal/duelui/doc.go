// Package duelui renders the interactive duel screen. It is a thin
// presentation layer over ranking.Controller: every key press maps to exactly
// one controller call, and the model never touches the session record
// directly.
package duelui
