package tsp

// StartRequest opens a session
type StartRequest struct {
	PlayerName string `json:"playerName"`
}

// StartResponse describes a new session
type StartResponse struct {
	SessionID      int64    `json:"sessionId"`
	PlayerName     string   `json:"playerName"`
	HomeCity       string   `json:"homeCity"`
	CityLabels     []string `json:"cityLabels"`
	DistanceMatrix [][]int  `json:"distanceMatrix"`
}

// SelectCitiesRequest picks the cities the route must visit
type SelectCitiesRequest struct {
	SessionID int64    `json:"sessionId"`
	Cities    []string `json:"cities"`
}

// AlgorithmResult is one algorithm's tour over the selection
type AlgorithmResult struct {
	AlgorithmName string   `json:"algorithmName"`
	Path          []string `json:"path"`
	TotalDistance int      `json:"totalDistance"`
	TimeMs        float64  `json:"timeMs"`
}

// SelectCitiesResponse reports the stored selection and every algorithm's tour
type SelectCitiesResponse struct {
	SessionID        int64             `json:"sessionId"`
	HomeCity         string            `json:"homeCity"`
	SelectedCities   []string          `json:"selectedCities"`
	AlgorithmResults []AlgorithmResult `json:"algorithmResults"`
}

// SolveRequest is a player's proposed route
type SolveRequest struct {
	SessionID         int64    `json:"sessionId"`
	ProposedPath      []string `json:"proposedPath"`
	TimeTakenByUserMs int64    `json:"timeTakenByUserMs"`
}

// SolveResponse is the verdict on a proposed route
type SolveResponse struct {
	SessionID         int64    `json:"sessionId"`
	PlayerName        string   `json:"playerName"`
	HomeCity          string   `json:"homeCity"`
	Correct           bool     `json:"correct"`
	SubmittedDistance int      `json:"submittedDistance"`
	OptimalDistance   int      `json:"optimalDistance"`
	OptimalPath       []string `json:"optimalPath"`
	Message           string   `json:"message"`
}
