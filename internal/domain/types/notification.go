package types

// Notification is a budget, goal or transaction alert.
type Notification struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Message          string    `json:"message"`
	NotificationType string    `json:"notification_type"`
	Priority         string    `json:"priority"`
	IsRead           bool      `json:"is_read"`
	ActionURL        string    `json:"action_url,omitempty"`
	CreatedAt        Timestamp `json:"created_at"`
}

// NotificationList is the response of GET /notifications.
type NotificationList struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unread_count"`
}
