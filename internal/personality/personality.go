package personality

import (
	"errors"
	"math/rand"
)

// Type is the closed set of honey badger personality variants.
type Type string

const (
	Relentless  Type = "RELENTLESS"
	Cheerleader Type = "CHEERLEADER"
	Coach       Type = "COACH"
	Buddy       Type = "BUDDY"
	Competitor  Type = "COMPETITOR"
)

// Category names a situational phrase bank inside a profile.
type Category string

const (
	CategoryGreeting      Category = "greeting"
	CategoryMotivation    Category = "motivation"
	CategoryCheckIn       Category = "checkIn"
	CategoryCelebration   Category = "celebration"
	CategoryPushBack      Category = "pushBack"
	CategoryEncouragement Category = "encouragement"
	CategoryStrategy      Category = "strategy"
	CategoryFeedback      Category = "feedback"
	CategorySupport       Category = "support"
	CategoryProgress      Category = "progress"
	CategoryChallenge     Category = "challenge"
)

var ErrUnknownPersonality = errors.New("unknown personality type")

// Traits is a five-dimension behavioral weight vector, each value 0-10.
type Traits struct {
	Persistence     int `json:"persistence"`
	Encouragement   int `json:"encouragement"`
	Competitiveness int `json:"competitiveness"`
	Humor           int `json:"humor"`
	Empathy         int `json:"empathy"`
}

// Profile is the immutable configuration for one personality variant. The
// catalog is populated at init and shared by reference; callers must not
// mutate it.
type Profile struct {
	Type         Type
	Name         string
	Description  string
	Avatar       string
	Traits       Traits
	Phrases      map[Category][]string
	SystemPrompt string
}

// Description is the presentation view of a profile.
type Description struct {
	Type        Type   `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Avatar      string `json:"avatar"`
	Traits      Traits `json:"traits"`
}

// Types returns all personality variants in a stable order.
func Types() []Type {
	return []Type{Relentless, Cheerleader, Coach, Buddy, Competitor}
}

// Resolve looks up the profile for a personality type.
func Resolve(t Type) (*Profile, error) {
	p, ok := catalog[t]
	if !ok {
		return nil, ErrUnknownPersonality
	}
	return p, nil
}

// PickPhrase draws a random phrase from the category's bank. A missing or
// empty category yields a neutral placeholder, never an error.
func PickPhrase(p *Profile, category Category) string {
	phrases := p.Phrases[category]
	if len(phrases) == 0 {
		return "Honey badger is thinking... 🤔"
	}
	return phrases[rand.Intn(len(phrases))]
}

// Describe returns the read-only presentation of a profile.
func Describe(p *Profile) Description {
	return Description{
		Type:        p.Type,
		Name:        p.Name,
		Description: p.Description,
		Avatar:      p.Avatar,
		Traits:      p.Traits,
	}
}
