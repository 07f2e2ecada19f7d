package enums

import "fmt"

// MessageStatus describes the allowed values for the `status` column in cms_contact_messages.
type MessageStatus string

const (
	MessageStatusUnread  MessageStatus = "unread"
	MessageStatusRead    MessageStatus = "read"
	MessageStatusReplied MessageStatus = "replied"
)

var validMessageStatuses = []MessageStatus{
	MessageStatusUnread,
	MessageStatusRead,
	MessageStatusReplied,
}

// IsValid reports whether the value matches the canonical message status enum.
func (m MessageStatus) IsValid() bool {
	for _, candidate := range validMessageStatuses {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMessageStatus converts the raw string to MessageStatus.
func ParseMessageStatus(value string) (MessageStatus, error) {
	for _, candidate := range validMessageStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid message status %q", value)
}
