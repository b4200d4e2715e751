package services

import (
	"strings"

	"paper-desk/models"
)

// EligibleReviewers returns the candidate subset of reviewers for manual
// assignment, preserving server order. A reviewer qualifies when the paper
// declares no interest tags, or when any of the paper's tags equals the
// reviewer's interest tag case-insensitively. An empty result means the UI
// must show an explicit "no matching reviewer" state, not an empty list.
func EligibleReviewers(paper *models.Paper, reviewers []models.Reviewer) []models.Reviewer {
	if len(paper.Interests) == 0 {
		return reviewers
	}
	eligible := make([]models.Reviewer, 0, len(reviewers))
	for _, reviewer := range reviewers {
		for _, interest := range paper.Interests {
			if strings.EqualFold(reviewer.Interests, interest) {
				eligible = append(eligible, reviewer)
				break
			}
		}
	}
	return eligible
}
