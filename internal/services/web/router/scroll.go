package router

// Position is a document scroll offset in CSS pixels.
type Position struct {
	Left float64 `json:"left"`
	Top  float64 `json:"top"`
}

// Top is the top-of-page position.
var Top = Position{Top: 0}

// NavigationEvent describes one committed navigation.
type NavigationEvent struct {
	To   Location
	From Location
	// SavedPosition is set only when returning to a history entry that
	// recorded where it was left.
	SavedPosition *Position
}

// ScrollBehavior returns the scroll target after a navigation commits.
type ScrollBehavior func(NavigationEvent) Position

// RestoreOrTop returns the saved position verbatim when one exists and the
// top of the page otherwise.
func RestoreOrTop(event NavigationEvent) Position {
	if event.SavedPosition != nil {
		return *event.SavedPosition
	}
	return Top
}
