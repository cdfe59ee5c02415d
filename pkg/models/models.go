package models

// Placeholder values used when a repository omits an optional field, so the
// renderer never receives an absent required field.
const (
	DefaultDescription = "No description provided."
	DefaultLanguage    = "Unknown"
)

// ProfileStats holds the aggregate counters shown in the stats strip.
type ProfileStats struct {
	TotalRepos         int `json:"totalRepos"`
	Followers          int `json:"followers"`
	TotalContributions int `json:"totalContributions"`
	StarsEarned        int `json:"starsEarned"`
}

// FeaturedRepo is one of the top non-fork repositories shown to visitors.
type FeaturedRepo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Stars       int    `json:"stars"`
	Forks       int    `json:"forks"`
	URL         string `json:"url"`
	UpdatedAt   string `json:"updatedAt"`
}

// NewFeaturedRepo builds a FeaturedRepo, substituting placeholders for a
// missing description or primary language.
func NewFeaturedRepo(name, description, language string, stars, forks int, url, pushedAt string) FeaturedRepo {
	if description == "" {
		description = DefaultDescription
	}
	if language == "" {
		language = DefaultLanguage
	}
	return FeaturedRepo{
		Name:        name,
		Description: description,
		Language:    language,
		Stars:       stars,
		Forks:       forks,
		URL:         url,
		UpdatedAt:   pushedAt,
	}
}

// RepoActivity is the aggregated push activity for a single repository.
type RepoActivity struct {
	Repo     string `json:"repo"`
	Commits  int    `json:"commits"`
	PushedAt string `json:"pushedAt"`
}

// LanguageStat is one entry of the language breakdown chart.
type LanguageStat struct {
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
	Color      string `json:"color"`
}

// ContributionDay is a single cell of the contribution calendar.
type ContributionDay struct {
	ContributionCount int    `json:"contributionCount"`
	Date              string `json:"date"`
}

// ContributionWeek is one column of the contribution calendar.
type ContributionWeek struct {
	ContributionDays []ContributionDay `json:"contributionDays"`
}

// ContributionCalendar holds roughly a year of daily contribution counts.
type ContributionCalendar struct {
	TotalContributions int
	Weeks              []ContributionWeek
}

// ProfileData is the consolidated view model returned by GET /api/github.
type ProfileData struct {
	Stats             ProfileStats       `json:"stats"`
	Featured          []FeaturedRepo     `json:"featured"`
	RecentActivity    []RepoActivity     `json:"recentActivity"`
	LanguageBreakdown []LanguageStat     `json:"languageBreakdown"`
	ContributionWeeks []ContributionWeek `json:"contributionWeeks"`
}

// ContactRequest is the body of a contact form submission.
type ContactRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	ProjectType string `json:"projectType"`
	Message     string `json:"message"`
}

// Complete reports whether all four required fields are present.
func (r ContactRequest) Complete() bool {
	return r.Name != "" && r.Email != "" && r.ProjectType != "" && r.Message != ""
}
