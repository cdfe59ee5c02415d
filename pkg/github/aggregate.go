package github

import (
	"context"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	gh "github.com/google/go-github/v45/github"

	"portfolio-backend/pkg/models"
)

// Caps applied to the derived lists regardless of upstream volume.
const (
	maxFeatured       = 4
	maxRecentActivity = 5
	maxLanguages      = 6
)

// Aggregator builds the consolidated profile view served to the site.
type Aggregator struct {
	client   *Client
	username string
	logger   *log.Logger
}

// NewAggregator creates an aggregator for the configured identity.
func NewAggregator(client *Client, username string, logger *log.Logger) *Aggregator {
	return &Aggregator{
		client:   client,
		username: username,
		logger:   logger,
	}
}

// BuildProfile issues the upstream calls and merges the results into one
// view model. The profile, repository, and event fetches are required and
// fail the whole operation; the contribution calendar degrades to empty
// data when unavailable.
func (a *Aggregator) BuildProfile(ctx context.Context) (*models.ProfileData, error) {
	user, err := a.client.User(ctx, a.username)
	if err != nil {
		return nil, err
	}

	repos, err := a.client.TopRepos(ctx, a.username)
	if err != nil {
		return nil, err
	}

	// GraphQL requires a personal token; without one the calendar stays empty.
	calendar := models.ContributionCalendar{Weeks: []models.ContributionWeek{}}
	if a.client.HasToken() {
		cal, calErr := a.client.ContributionCalendar(ctx, a.username)
		if calErr != nil {
			a.logger.Printf("Contribution calendar unavailable: %v", calErr)
		} else {
			calendar = cal
			if calendar.Weeks == nil {
				calendar.Weeks = []models.ContributionWeek{}
			}
		}
	}

	events, err := a.client.PublicEvents(ctx, a.username)
	if err != nil {
		return nil, err
	}

	return &models.ProfileData{
		Stats: models.ProfileStats{
			TotalRepos:         user.GetPublicRepos(),
			Followers:          user.GetFollowers(),
			TotalContributions: calendar.TotalContributions,
			StarsEarned:        sumStars(repos),
		},
		Featured:          featuredRepos(repos),
		RecentActivity:    recentActivity(events),
		LanguageBreakdown: languageBreakdown(repos),
		ContributionWeeks: calendar.Weeks,
	}, nil
}

// featuredRepos projects the first four non-fork repositories into the
// showcase shape, defaulting missing descriptions and languages.
func featuredRepos(repos []*gh.Repository) []models.FeaturedRepo {
	featured := make([]models.FeaturedRepo, 0, maxFeatured)
	for _, r := range repos {
		if r.GetFork() {
			continue
		}
		featured = append(featured, models.NewFeaturedRepo(
			r.GetName(),
			r.GetDescription(),
			r.GetLanguage(),
			r.GetStargazersCount(),
			r.GetForksCount(),
			r.GetHTMLURL(),
			formatTime(r.GetPushedAt().Time),
		))
		if len(featured) == maxFeatured {
			break
		}
	}
	return featured
}

// recentActivity folds push events into per-repository totals, keeping the
// latest push timestamp and summing commit counts, then returns the five
// most recently pushed repositories.
func recentActivity(events []*gh.Event) []models.RepoActivity {
	totals := make(map[string]*models.RepoActivity)
	var order []string

	for _, ev := range events {
		if ev.GetType() != "PushEvent" {
			continue
		}
		name := shortRepoName(ev.GetRepo().GetName())
		if name == "" {
			// Upstream identifiers should always be owner/name; skip anything else
			continue
		}

		pushedAt := formatTime(ev.GetCreatedAt())
		entry, seen := totals[name]
		if !seen {
			entry = &models.RepoActivity{Repo: name, PushedAt: pushedAt}
			totals[name] = entry
			order = append(order, name)
		}
		entry.Commits += pushCommitCount(ev)
		if pushedAt > entry.PushedAt {
			entry.PushedAt = pushedAt
		}
	}

	activity := make([]models.RepoActivity, 0, len(order))
	for _, name := range order {
		activity = append(activity, *totals[name])
	}
	// Fixed-format UTC timestamps, so lexical order is chronological order
	sort.SliceStable(activity, func(i, j int) bool {
		return activity[i].PushedAt > activity[j].PushedAt
	})
	if len(activity) > maxRecentActivity {
		activity = activity[:maxRecentActivity]
	}
	return activity
}

// languageBreakdown counts one occurrence per repository's primary language
// and converts the counts into rounded percentage shares of the six most
// common languages. Repositories without a listed language are excluded.
func languageBreakdown(repos []*gh.Repository) []models.LanguageStat {
	counts := make(map[string]int)
	var order []string

	for _, r := range repos {
		lang := r.GetLanguage()
		if lang == "" {
			continue
		}
		if _, seen := counts[lang]; !seen {
			order = append(order, lang)
		}
		counts[lang]++
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	if total == 0 {
		total = 1
	}

	// Stable sort keeps first-seen order for languages with equal counts
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > maxLanguages {
		order = order[:maxLanguages]
	}

	breakdown := make([]models.LanguageStat, 0, len(order))
	for _, lang := range order {
		breakdown = append(breakdown, models.LanguageStat{
			Name:       lang,
			Percentage: int(math.Round(float64(counts[lang]) / float64(total) * 100)),
			Color:      languageColor(lang),
		})
	}
	return breakdown
}

func sumStars(repos []*gh.Repository) int {
	var total int
	for _, r := range repos {
		total += r.GetStargazersCount()
	}
	return total
}

func pushCommitCount(ev *gh.Event) int {
	if ev.RawPayload == nil {
		return 0
	}
	payload, err := ev.ParsePayload()
	if err != nil {
		return 0
	}
	push, ok := payload.(*gh.PushEvent)
	if !ok {
		return 0
	}
	return len(push.Commits)
}

// shortRepoName extracts the repository segment from an owner/name
// identifier. Malformed identifiers yield "".
func shortRepoName(full string) string {
	_, name, found := strings.Cut(full, "/")
	if !found {
		return ""
	}
	return name
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
