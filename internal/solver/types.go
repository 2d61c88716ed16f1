package solver

// Response is the success payload of POST /solve_maze
type Response struct {
	// GifURL references the rendered solution animation
	GifURL string `json:"gifUrl"`

	// Stats is optional; its absence only suppresses stats rendering
	Stats *Stats `json:"stats,omitempty"`
}

// Stats summarizes a solve run
type Stats struct {
	PathLength     int     `json:"pathLength"`
	ExploredCells  int     `json:"exploredCells"`
	ProcessingTime float64 `json:"processingTime"`
}

// valid reports whether every field is non-negative
func (s *Stats) valid() bool {
	return s.PathLength >= 0 && s.ExploredCells >= 0 && s.ProcessingTime >= 0
}

// payload is the union of the success and failure body shapes
type payload struct {
	GifURL string `json:"gifUrl"`
	Stats  *Stats `json:"stats"`
	Error  string `json:"error"`
}
