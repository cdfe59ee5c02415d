package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"portfolio-backend/pkg/models"
)

const contributionCalendarQuery = `
query($login: String!) {
	user(login: $login) {
		contributionsCollection {
			contributionCalendar {
				totalContributions
				weeks {
					contributionDays {
						contributionCount
						date
					}
				}
			}
		}
	}
}`

type graphQLError struct {
	Message string `json:"message"`
}

type calendarResponse struct {
	Data struct {
		User struct {
			ContributionsCollection struct {
				ContributionCalendar struct {
					TotalContributions int                       `json:"totalContributions"`
					Weeks              []models.ContributionWeek `json:"weeks"`
				} `json:"contributionCalendar"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	} `json:"data"`
	Errors []graphQLError `json:"errors,omitempty"`
}

// ContributionCalendar runs the contribution calendar GraphQL query. The
// endpoint rejects anonymous requests, so callers must hold a personal
// token. The query is attempted exactly once.
func (c *Client) ContributionCalendar(ctx context.Context, username string) (models.ContributionCalendar, error) {
	payload := map[string]any{
		"query":     contributionCalendarQuery,
		"variables": map[string]any{"login": username},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return models.ContributionCalendar{}, fmt.Errorf("marshaling query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphQLURL, bytes.NewReader(body))
	if err != nil {
		return models.ContributionCalendar{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.ContributionCalendar{}, fmt.Errorf("executing request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Printf("Failed to close GraphQL response body: %v", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return models.ContributionCalendar{}, fmt.Errorf("GitHub GraphQL returned status %d: %s", resp.StatusCode, respBody)
	}

	var result calendarResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return models.ContributionCalendar{}, fmt.Errorf("decoding calendar response: %w", err)
	}
	if len(result.Errors) > 0 {
		return models.ContributionCalendar{}, fmt.Errorf("GitHub GraphQL error: %s", result.Errors[0].Message)
	}

	cal := result.Data.User.ContributionsCollection.ContributionCalendar
	return models.ContributionCalendar{
		TotalContributions: cal.TotalContributions,
		Weeks:              cal.Weeks,
	}, nil
}
