package enums

import "fmt"

// MenuTarget describes the allowed values for the `target` column in cms_menu_items.
type MenuTarget string

const (
	MenuTargetSelf  MenuTarget = "_self"
	MenuTargetBlank MenuTarget = "_blank"
)

var validMenuTargets = []MenuTarget{
	MenuTargetSelf,
	MenuTargetBlank,
}

// IsValid reports whether the value matches the canonical menu target enum.
func (m MenuTarget) IsValid() bool {
	for _, candidate := range validMenuTargets {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMenuTarget converts the raw string to MenuTarget.
func ParseMenuTarget(value string) (MenuTarget, error) {
	for _, candidate := range validMenuTargets {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid menu target %q", value)
}
