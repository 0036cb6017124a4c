package route

import "github.com/Lawmlor123/run-app/internal/shared/geo"

// Candidate is one generated round-trip loop offered for selection.
type Candidate struct {
	ID       int              `json:"id"`
	Geometry []geo.Coordinate `json:"geometry"`
	Selected bool             `json:"selected"`
}
