package engine

import (
	"testing"
	"time"
)

func TestScoreDemographic(t *testing.T) {
	e := New(DefaultWeights())
	now := time.Now()

	tests := []struct {
		name    string
		contact Contact
		want    int
	}{
		{"executive title", Contact{Title: "Chief Executive Officer"}, 20},
		{"director title", Contact{Title: "Creative Director"}, 18},
		{"manager title", Contact{Title: "Brand Manager"}, 15},
		{"case insensitive", Contact{Title: "ACCOUNT EXECUTIVE"}, 20},
		{"executive beats director", Contact{Title: "Executive Director"}, 20},
		{"director beats manager", Contact{Title: "Director of Manager Relations"}, 18},
		{"no title match", Contact{Title: "Stylist"}, 0},
		{"marketing department", Contact{Department: "Marketing"}, 10},
		{"sales department", Contact{Department: "sales"}, 8},
		{"department is exact match", Contact{Department: "sales ops"}, 0},
		{"title and department stack", Contact{Title: "Marketing Manager", Department: "marketing"}, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Score(tt.contact, nil, nil, now)
			if got.Demographic != tt.want {
				t.Errorf("demographic = %d, want %d", got.Demographic, tt.want)
			}
		})
	}
}

func TestScoreFirmographic(t *testing.T) {
	e := New(DefaultWeights())
	now := time.Now()

	tests := []struct {
		name    string
		account *Account
		want    int
	}{
		{"no account", nil, 0},
		{"enterprise 201-500", &Account{CompanySize: "201-500"}, 25},
		{"enterprise 501-1000", &Account{CompanySize: "501-1000"}, 25},
		{"enterprise 1000+", &Account{CompanySize: "1000+"}, 25},
		{"mid market", &Account{CompanySize: "51-200"}, 15},
		{"small company", &Account{CompanySize: "1-50"}, 0},
		{"fashion industry", &Account{Industry: "Fashion Retail"}, 15},
		{"luxury industry", &Account{Industry: "Luxury Goods"}, 15},
		{"other industry", &Account{Industry: "Logistics"}, 0},
		{"size and industry stack", &Account{CompanySize: "1000+", Industry: "luxury fashion"}, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Score(Contact{}, tt.account, nil, now)
			if got.Firmographic != tt.want {
				t.Errorf("firmographic = %d, want %d", got.Firmographic, tt.want)
			}
		})
	}
}

func TestScoreBehavioralWindow(t *testing.T) {
	e := New(DefaultWeights())
	now := time.Now()

	interactions := []Interaction{
		{Type: "meeting", OccurredAt: now.AddDate(0, 0, -1)},          // 30
		{Type: "event", OccurredAt: now.AddDate(0, 0, -29)},           // 25
		{Type: "email", Direction: "inbound", OccurredAt: now},        // 5
		{Type: "email", Direction: "outbound", OccurredAt: now},       // 0
		{Type: "call", OccurredAt: now.AddDate(0, 0, -5)},             // 3
		{Type: "meeting", OccurredAt: now.AddDate(0, 0, -31)},         // outside window
		{Type: "event", OccurredAt: now.AddDate(0, 0, -30).Add(-time.Hour)}, // outside window
	}

	got := e.Score(Contact{}, nil, interactions, now)
	if got.Behavioral != 63 {
		t.Errorf("behavioral = %d, want 63", got.Behavioral)
	}
}

func TestScoreEngagementThresholds(t *testing.T) {
	e := New(DefaultWeights())
	now := time.Now()
	old := now.AddDate(0, 0, -90) // outside behavioral window, still counts here

	positive := func(n int) []Interaction {
		out := make([]Interaction, n)
		for i := range out {
			out[i] = Interaction{Type: "note", Sentiment: "positive", OccurredAt: old}
		}
		return out
	}
	neutral := func(n int) []Interaction {
		out := make([]Interaction, n)
		for i := range out {
			out[i] = Interaction{Type: "note", Sentiment: "neutral", OccurredAt: old}
		}
		return out
	}

	tests := []struct {
		name         string
		interactions []Interaction
		want         int
	}{
		{"exactly 3 positive is not enough", positive(3), 0},
		{"4 positive awards sentiment", positive(4), 20},
		{"exactly 5 total is not enough", neutral(5), 0},
		{"6 total awards frequency", neutral(6), 15},
		{"both bonuses stack", append(positive(4), neutral(3)...), 35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Score(Contact{}, nil, tt.interactions, now)
			if got.Engagement != tt.want {
				t.Errorf("engagement = %d, want %d", got.Engagement, tt.want)
			}
		})
	}
}

func TestScoreTotalIsSumOfCategories(t *testing.T) {
	e := New(DefaultWeights())
	now := time.Now()

	contact := Contact{Title: "Marketing Director", Department: "marketing"}
	account := &Account{CompanySize: "501-1000", Industry: "Luxury Fashion"}
	interactions := []Interaction{
		{Type: "meeting", Sentiment: "positive", OccurredAt: now.AddDate(0, 0, -2)},
		{Type: "event", Sentiment: "positive", OccurredAt: now.AddDate(0, 0, -10)},
		{Type: "email", Direction: "inbound", Sentiment: "positive", OccurredAt: now.AddDate(0, 0, -3)},
		{Type: "call", Sentiment: "positive", OccurredAt: now.AddDate(0, 0, -4)},
		{Type: "note", Sentiment: "neutral", OccurredAt: now.AddDate(0, 0, -60)},
		{Type: "note", Sentiment: "neutral", OccurredAt: now.AddDate(0, 0, -70)},
	}

	got := e.Score(contact, account, interactions, now)

	if got.Demographic != 28 {
		t.Errorf("demographic = %d, want 28", got.Demographic)
	}
	if got.Firmographic != 40 {
		t.Errorf("firmographic = %d, want 40", got.Firmographic)
	}
	if got.Behavioral != 63 {
		t.Errorf("behavioral = %d, want 63", got.Behavioral)
	}
	if got.Engagement != 35 {
		t.Errorf("engagement = %d, want 35", got.Engagement)
	}
	if got.Total() != got.Demographic+got.Firmographic+got.Behavioral+got.Engagement {
		t.Errorf("total = %d, want sum of categories", got.Total())
	}
}

func TestScoreEmptyContactIsZero(t *testing.T) {
	e := New(DefaultWeights())
	got := e.Score(Contact{}, nil, nil, time.Now())
	if got.Total() != 0 {
		t.Errorf("total = %d, want 0", got.Total())
	}
}
