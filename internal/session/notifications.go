package session

import "sync"

// maxNotifications bounds how many entries the list retains.
const maxNotifications = 50

// Notification is a transient user-facing message produced during
// session reconciliation or profile sync.
type Notification struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Notifications is a bounded, newest-first list of notifications.
type Notifications struct {
	mu      sync.Mutex
	entries []Notification
}

func NewNotifications() *Notifications {
	return &Notifications{}
}

// Push prepends a notification, dropping the oldest entry once the
// list exceeds its cap.
func (n *Notifications) Push(title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.entries = append([]Notification{{Title: title, Message: message}}, n.entries...)
	if len(n.entries) > maxNotifications {
		n.entries = n.entries[:maxNotifications]
	}
}

// List returns a copy of the current notifications, newest first.
func (n *Notifications) List() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]Notification, len(n.entries))
	copy(out, n.entries)
	return out
}

// Clear removes all notifications.
func (n *Notifications) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.entries = nil
}
