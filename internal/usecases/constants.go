package usecases

// ContributionReward is the token credit granted when a contribution is
// accepted.
const ContributionReward = 100.00

// Websocket event names
const (
	EventNewContribution      = "new_contribution"
	EventContributionReviewed = "contribution_reviewed"
	EventTokenTransferred     = "token_transferred"
)
