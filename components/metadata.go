package components

// String returns the display name for a Tag.
func (t Tag) String() string {
	names := TagNames()
	if int(t) < len(names) {
		return names[t]
	}
	return "Unknown"
}

// TagNames returns the display names for all tags.
// The order matches the Tag constants.
func TagNames() []string {
	return []string{"None", "Player", "Enemy", "Food", "Arena"}
}

// String returns the display name for a SpeedMode.
func (m SpeedMode) String() string {
	switch m {
	case SpeedNormal:
		return "normal"
	case SpeedSprint:
		return "sprint"
	}
	return "unknown"
}
