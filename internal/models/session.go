package models

// Session identifies the signed-in user for an operation. It is passed
// explicitly into every service call instead of being read from ambient
// state; a nil session means no one is signed in.
type Session struct {
	UID         string
	DisplayName string
}
