package main

// TextHandlerFunc handles one inbound text event for a loaded visitor.
type TextHandlerFunc func(v *Visitor, ev TextEvent) []Reply

// isAdmin checks if a username is in the configured admin list.
func (d *Dispatcher) isAdmin(username string) bool {
	for _, admin := range d.admins {
		if admin == username {
			return true
		}
	}
	return false
}

// requireAdmin wraps a handler with an admin verification on the Telegram
// username.
func (d *Dispatcher) requireAdmin(handler TextHandlerFunc) TextHandlerFunc {
	return func(v *Visitor, ev TextEvent) []Reply {
		if !d.isAdmin(ev.Username) {
			return []Reply{{ChatID: v.ChatID, Text: textAdminOnly}}
		}
		return handler(v, ev)
	}
}
