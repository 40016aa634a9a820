package traffic

// SolveRequest is a player's reported maximum flow for a network
type SolveRequest struct {
	Matrix   [][]int `json:"matrix"`
	Reported int     `json:"reported"`
	Name     string  `json:"name"`
}

// SolveResponse compares the report with both algorithms
type SolveResponse struct {
	EdmondsKarp int        `json:"edmondsKarp"`
	Dinic       int        `json:"dinic"`
	EKTimeMs    float64    `json:"ekTimeMs"`
	DinicTimeMs float64    `json:"dinicTimeMs"`
	Reported    int        `json:"reported"`
	Correct     bool       `json:"correct"`
	FlowEdges   []FlowEdge `json:"flowEdges"`
}
