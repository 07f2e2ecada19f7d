package enums

import "fmt"

// PageStatus describes the allowed values for the `status` column in cms_pages.
type PageStatus string

const (
	PageStatusDraft     PageStatus = "draft"
	PageStatusPublished PageStatus = "published"
)

var validPageStatuses = []PageStatus{
	PageStatusDraft,
	PageStatusPublished,
}

// IsValid reports whether the value matches the canonical page status enum.
func (p PageStatus) IsValid() bool {
	for _, candidate := range validPageStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePageStatus converts the raw string to PageStatus.
func ParsePageStatus(value string) (PageStatus, error) {
	for _, candidate := range validPageStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid page status %q", value)
}
