package connect

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/macreleaser/buildtrain/pkg/prompt"
)

var (
	// ErrTeamNotFound means a preselected team is not available to the account.
	ErrTeamNotFound = errors.New("team not found")
	// ErrTeamAmbiguous means the account has several teams and none was chosen.
	ErrTeamAmbiguous = errors.New("account belongs to multiple teams")
)

// Team is a content provider the account can act for.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (t Team) String() string { return fmt.Sprintf("%s (%s)", t.Name, t.ID) }

type teamsResponse struct {
	Teams []Team `json:"teams"`
}

type selectTeamRequest struct {
	TeamID string `json:"teamId"`
}

// ListTeams returns the teams of the signed-in account.
func (c *Client) ListTeams(ctx context.Context) ([]Team, error) {
	var resp teamsResponse
	if err := c.do(ctx, http.MethodGet, []string{"teams"}, nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return resp.Teams, nil
}

// SelectTeam makes teamID the active team of the session.
func (c *Client) SelectTeam(ctx context.Context, teamID string) error {
	if err := c.do(ctx, http.MethodPost, []string{"teams", "select"}, nil, selectTeamRequest{TeamID: teamID}, nil); err != nil {
		return fmt.Errorf("failed to select team %s: %w", teamID, err)
	}
	return nil
}

// ChooseTeam picks the team to act for. A preselected id or name must match
// one of teams; a sole team is chosen automatically; otherwise the operator
// picks one by number.
func ChooseTeam(ctx context.Context, teams []Team, preselected string, p prompt.Prompter) (Team, error) {
	if len(teams) == 0 {
		return Team{}, fmt.Errorf("account has no teams")
	}

	if preselected != "" {
		for _, t := range teams {
			if t.ID == preselected || t.Name == preselected {
				return t, nil
			}
		}
		return Team{}, fmt.Errorf("%w: %s", ErrTeamNotFound, preselected)
	}

	if len(teams) == 1 {
		return teams[0], nil
	}

	if p == nil || !p.Interactive() {
		return Team{}, fmt.Errorf("%w, set a team to use one of them: %s", ErrTeamAmbiguous, joinTeams(teams))
	}

	var question strings.Builder
	question.WriteString("Multiple teams found:\n")
	for i, t := range teams {
		fmt.Fprintf(&question, "  %d) %s\n", i+1, t)
	}
	question.WriteString("Select team number: ")

	for {
		answer, err := p.Ask(ctx, question.String())
		if err != nil {
			return Team{}, fmt.Errorf("failed to select team: %w", err)
		}
		n, err := strconv.Atoi(strings.TrimSpace(answer))
		if err == nil && n >= 1 && n <= len(teams) {
			return teams[n-1], nil
		}
	}
}

func joinTeams(teams []Team) string {
	names := make([]string, len(teams))
	for i, t := range teams {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}
