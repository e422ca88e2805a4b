package gradebook

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/bigredeye/gradebook/api"
	"github.com/bigredeye/gradebook/internal/scorer"
)

type Client struct {
	client *resty.Client
}

func NewClient(endpoint string) (*Client, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("empty endpoint")
	}

	client := resty.New().
		SetBaseURL(endpoint).
		SetTimeout(time.Second * 10).
		SetRetryCount(3)

	return &Client{client}, nil
}

func checkStatus(what string, resp *resty.Response, status *api.Status) error {
	if !status.Ok {
		if status.Error == "" {
			return fmt.Errorf("failed to %s: %s", what, resp.Status())
		}
		return fmt.Errorf("failed to %s: %s", what, status.Error)
	}
	return nil
}

func (c *Client) LoadStandings(threshold float64) (*scorer.Standings, error) {
	res := &api.StandingsResponse{}
	resp, err := c.client.R().
		SetResult(res).
		SetError(res).
		SetQueryParam("threshold", strconv.FormatFloat(threshold, 'f', -1, 64)).
		Get("/api/standings")
	if err != nil {
		return nil, err
	}

	if err := checkStatus("fetch standings", resp, &res.Status); err != nil {
		return nil, err
	}
	return res.Standings, nil
}

func (c *Client) LoadRanking(limit int) ([]scorer.Ranked, error) {
	res := &api.RankingResponse{}
	resp, err := c.client.R().
		SetResult(res).
		SetError(res).
		SetQueryParam("limit", strconv.Itoa(limit)).
		Get("/api/ranking")
	if err != nil {
		return nil, err
	}

	if err := checkStatus("fetch ranking", resp, &res.Status); err != nil {
		return nil, err
	}
	if res.Ranking == nil {
		return []scorer.Ranked{}, nil
	}
	return res.Ranking, nil
}

func (c *Client) AddGrade(studentID, courseCode string, grade float64) ([]float64, error) {
	res := &api.GradeResponse{}
	resp, err := c.client.R().
		SetResult(res).
		SetError(res).
		SetBody(api.GradeRequest{
			StudentID:  studentID,
			CourseCode: courseCode,
			Grade:      &grade,
		}).
		Post("/api/grade")
	if err != nil {
		return nil, err
	}

	if err := checkStatus("add grade", resp, &res.Status); err != nil {
		return nil, err
	}
	return res.Grades, nil
}
