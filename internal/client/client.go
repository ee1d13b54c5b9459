// Package client talks to the movie-quiz HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"movie-quiz/internal/data/entity"
	"movie-quiz/internal/dto/request"
	"movie-quiz/internal/dto/response"
	"movie-quiz/pkg/utils"
)

var ErrServiceUnavailable = errors.New("quiz service unavailable")

// APIError is a non-2xx reply from the server.
type APIError struct {
	StatusCode int
	Message    string
	Detail     string
}

func (e *APIError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	if e.Detail != "" {
		return msg + ": " + e.Detail
	}
	return msg
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "http://localhost:3001"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

// Movies fetches the catalog from /movies.json.
func (c *Client) Movies(ctx context.Context) ([]entity.Movie, error) {
	var payload response.MovieListResponse
	if err := c.doJSON(ctx, http.MethodGet, "/movies.json", nil, &payload); err != nil {
		return nil, fmt.Errorf("fetch movies: %w", err)
	}

	movies := make([]entity.Movie, 0, len(payload.Movies))
	for _, m := range payload.Movies {
		reviews := make([]entity.Review, 0, len(m.Reviews))
		for _, r := range m.Reviews {
			reviews = append(reviews, entity.Review(r))
		}
		movies = append(movies, entity.Movie{
			Title:   m.Title,
			Poster:  m.Poster,
			Rating:  m.Rating,
			Reviews: reviews,
		})
	}
	return movies, nil
}

// SaveResult posts a finished run to /api/save-result.
func (c *Client) SaveResult(ctx context.Context, result entity.QuizResult) (*response.SaveResultResponse, error) {
	var payload response.SaveResultResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/save-result", request.NewSaveResultRequest(result), &payload); err != nil {
		return nil, fmt.Errorf("save result: %w", err)
	}
	return &payload, nil
}

func (c *Client) Leaderboard(ctx context.Context) (*response.LeaderboardResponse, error) {
	var payload response.LeaderboardResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/leaderboard", nil, &payload); err != nil {
		return nil, fmt.Errorf("fetch leaderboard: %w", err)
	}
	return &payload, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, requestBody any, responseBody any) error {
	var body io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if requestBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload utils.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			apiErr.Message = payload.Error
			apiErr.Detail = payload.Message
		}
		if strings.TrimSpace(apiErr.Message) == "" {
			apiErr.Message = resp.Status
		}
		return apiErr
	}

	if responseBody == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(responseBody)
}
