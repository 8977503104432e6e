// Package engine computes lead scores for contacts. Scoring is a pure
// function of the contact profile, its account, and the interaction history;
// persistence and transport live in the surrounding scoring module.
package engine

import (
	"strings"
	"time"
)

// Weights holds every scoring weight. Inject DefaultWeights (the calibrated
// production values) or a modified copy for experiments.
type Weights struct {
	// Demographic: contact title and department.
	TitleExecutive      int
	TitleDirector       int
	TitleManager        int
	DepartmentMarketing int
	DepartmentSales     int

	// Firmographic: account size and industry.
	CompanySizeEnterprise int
	CompanySizeMid        int
	IndustryMatch         int

	// Behavioral: interactions inside the recency window.
	MeetingScheduled int
	EventAttendance  int
	InboundEmail     int
	OtherInteraction int

	// Engagement: sentiment and frequency over the full history.
	SentimentPositive        int
	InteractionFrequencyHigh int

	// WindowDays bounds which interactions count as recent behavior.
	WindowDays int
	// PositiveSentimentThreshold is the positive-interaction count that must
	// be exceeded to award SentimentPositive.
	PositiveSentimentThreshold int
	// FrequencyThreshold is the total interaction count that must be
	// exceeded to award InteractionFrequencyHigh.
	FrequencyThreshold int
}

// DefaultWeights returns the calibrated production weights.
func DefaultWeights() Weights {
	return Weights{
		TitleExecutive:      20,
		TitleDirector:       18,
		TitleManager:        15,
		DepartmentMarketing: 10,
		DepartmentSales:     8,

		CompanySizeEnterprise: 25,
		CompanySizeMid:        15,
		IndustryMatch:         15,

		MeetingScheduled: 30,
		EventAttendance:  25,
		InboundEmail:     5,
		OtherInteraction: 3,

		SentimentPositive:        20,
		InteractionFrequencyHigh: 15,

		WindowDays:                 30,
		PositiveSentimentThreshold: 3,
		FrequencyThreshold:         5,
	}
}

// Contact is the slice of contact data scoring reads.
type Contact struct {
	Title      string
	Department string
}

// Account is the slice of account data scoring reads.
type Account struct {
	CompanySize string
	Industry    string
}

// Interaction is one logged touchpoint with the contact.
type Interaction struct {
	Type       string
	Direction  string
	Sentiment  string
	OccurredAt time.Time
}

// Breakdown holds the per-category sub-scores. The total score is their sum,
// unbounded above.
type Breakdown struct {
	Demographic  int `json:"demographic"`
	Firmographic int `json:"firmographic"`
	Behavioral   int `json:"behavioral"`
	Engagement   int `json:"engagement"`
}

// Total sums all category sub-scores.
func (b Breakdown) Total() int {
	return b.Demographic + b.Firmographic + b.Behavioral + b.Engagement
}

// Engine scores contacts with a fixed weight set.
type Engine struct {
	weights Weights
}

// New creates an engine over the given weights.
func New(weights Weights) *Engine {
	return &Engine{weights: weights}
}

// Score computes the category breakdown for a contact. account is nil when
// the contact has no account. now anchors the behavioral recency window.
func (e *Engine) Score(contact Contact, account *Account, interactions []Interaction, now time.Time) Breakdown {
	var b Breakdown
	b.Demographic = e.scoreDemographic(contact)
	if account != nil {
		b.Firmographic = e.scoreFirmographic(*account)
	}
	b.Behavioral = e.scoreBehavioral(interactions, now)
	b.Engagement = e.scoreEngagement(interactions)
	return b
}

// scoreDemographic awards points for seniority and department. Title
// matching is a case-insensitive substring check with executive taking
// precedence over director over manager; only one title weight applies.
// Department matching is exact and independent of the title.
func (e *Engine) scoreDemographic(contact Contact) int {
	score := 0

	title := strings.ToLower(contact.Title)
	switch {
	case strings.Contains(title, "executive"):
		score += e.weights.TitleExecutive
	case strings.Contains(title, "director"):
		score += e.weights.TitleDirector
	case strings.Contains(title, "manager"):
		score += e.weights.TitleManager
	}

	switch strings.ToLower(contact.Department) {
	case "marketing":
		score += e.weights.DepartmentMarketing
	case "sales":
		score += e.weights.DepartmentSales
	}

	return score
}

// scoreFirmographic awards points for company size brackets and for
// industries containing "fashion" or "luxury".
func (e *Engine) scoreFirmographic(account Account) int {
	score := 0

	switch account.CompanySize {
	case "201-500", "501-1000", "1000+":
		score += e.weights.CompanySizeEnterprise
	case "51-200":
		score += e.weights.CompanySizeMid
	}

	industry := strings.ToLower(account.Industry)
	if strings.Contains(industry, "fashion") || strings.Contains(industry, "luxury") {
		score += e.weights.IndustryMatch
	}

	return score
}

// scoreBehavioral sums weights for interactions strictly inside the recency
// window. Every recent interaction contributes; unknown types earn the
// baseline weight.
func (e *Engine) scoreBehavioral(interactions []Interaction, now time.Time) int {
	cutoff := now.AddDate(0, 0, -e.weights.WindowDays)
	score := 0

	for _, interaction := range interactions {
		if !interaction.OccurredAt.After(cutoff) {
			continue
		}
		switch interaction.Type {
		case "meeting":
			score += e.weights.MeetingScheduled
		case "event":
			score += e.weights.EventAttendance
		case "email":
			if interaction.Direction == "inbound" {
				score += e.weights.InboundEmail
			}
		default:
			score += e.weights.OtherInteraction
		}
	}

	return score
}

// scoreEngagement looks at the full interaction history: a sentiment bonus
// when positive interactions exceed the threshold, and a frequency bonus
// when the total count does.
func (e *Engine) scoreEngagement(interactions []Interaction) int {
	positive := 0
	for _, interaction := range interactions {
		if interaction.Sentiment == "positive" {
			positive++
		}
	}

	score := 0
	if positive > e.weights.PositiveSentimentThreshold {
		score += e.weights.SentimentPositive
	}
	if len(interactions) > e.weights.FrequencyThreshold {
		score += e.weights.InteractionFrequencyHigh
	}

	return score
}
