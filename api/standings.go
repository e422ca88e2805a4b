package api

import "github.com/bigredeye/gradebook/internal/scorer"

type StandingsRequest struct {
	Threshold *float64 `form:"threshold"`
}

type StandingsResponse struct {
	Status

	Standings *scorer.Standings `json:"standings,omitempty"`
}

type RankingRequest struct {
	Limit *int `form:"limit"`
}

type RankingResponse struct {
	Status

	Ranking []scorer.Ranked `json:"ranking,omitempty"`
}
