package messages

type SetStarted struct {
	SetID        string   `json:"setID"`
	Players      []string `json:"players"`
	PileSize     int      `json:"pileSize"`
	BestOf       int      `json:"bestOf"`
	AIDifficulty int      `json:"aiDifficulty"`
	Resumed      bool     `json:"resumed"`
}

type MatchStarted struct {
	Match     int    `json:"match"`
	FirstTurn int    `json:"firstTurn"`
	Player    string `json:"player"`
	Method    string `json:"method"`
	Call      string `json:"call,omitempty"`
	Outcome   string `json:"outcome,omitempty"`
	Remaining int    `json:"remaining"`
}

type Move struct {
	Match     int    `json:"match"`
	Seat      int    `json:"seat"`
	Player    string `json:"player"`
	Count     int    `json:"count"`
	Remaining int    `json:"remaining"`
}

type MatchEnded struct {
	Match     int    `json:"match"`
	LoserSeat int    `json:"loserSeat"`
	Loser     string `json:"loser"`
}

type Standing struct {
	Seat   int    `json:"seat"`
	Name   string `json:"name"`
	Losses int    `json:"losses"`
}

type SetEnded struct {
	SetID     string     `json:"setID"`
	Winner    string     `json:"winner"`
	Standings []Standing `json:"standings"`
}

// Standings is sent to a spectator when it joins mid-set.
type Standings struct {
	SetID         string     `json:"setID"`
	MatchesPlayed int        `json:"matchesPlayed"`
	BestOf        int        `json:"bestOf"`
	Remaining     int        `json:"remaining"`
	Standings     []Standing `json:"standings"`
}
