// Package ephemeral provides a scoped temporary directory for revealing key
// material. A Scope is removed on Close, when its context is cancelled, or at
// the end of With, whichever happens first.
package ephemeral
