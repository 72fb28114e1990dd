package onboarding

import "encoding/json"

const (
	AssessmentType   = "onboarding"
	SourceSelf       = "self"
	DefaultIntensity = 3
	DefaultDimension = "cognitive"
	DefaultConfident = 0.5
	DefaultScore     = 0.7
)

// GoalType is one of the fixed goal slots.
type GoalType string

const (
	GoalDream     GoalType = "dream"
	GoalSkill     GoalType = "skill"
	GoalShortTerm GoalType = "short_term"
)

type ProfileUpdate struct {
	Nickname            string
	Age                 int
	Grade               string
	Gender              string
	OnboardingCompleted bool
}

type AssessmentRecord struct {
	Type   string
	Source string
	Data   json.RawMessage
}

type InterestRecord struct {
	Category  string
	Specific  string
	Intensity int
	Source    string
}

type StrengthRecord struct {
	Dimension  string
	TagName    string
	Confidence float64
	Source     string
}

type TraitRecord struct {
	TraitName string
	Score     float64
	Source    string
}

type GoalRecord struct {
	Type    GoalType
	Content string
}

// Records is everything one submission produces. Interest and trait records
// are linked to the assessment once it has an id.
type Records struct {
	Profile    ProfileUpdate
	Assessment AssessmentRecord
	Interests  []InterestRecord
	Strengths  []StrengthRecord
	Traits     []TraitRecord
	Goals      []GoalRecord
}

// Ingest maps a validated payload to records. It does no I/O.
func Ingest(p *Payload) (Records, error) {
	raw, err := p.Raw()
	if err != nil {
		return Records{}, err
	}

	rec := Records{
		Profile: ProfileUpdate{
			Nickname:            p.BasicInfo.Nickname,
			Age:                 p.BasicInfo.Age,
			Grade:               p.BasicInfo.Grade,
			Gender:              p.BasicInfo.Gender,
			OnboardingCompleted: true,
		},
		Assessment: AssessmentRecord{Type: AssessmentType, Source: SourceSelf, Data: raw},
	}

	for _, c := range p.Interests.Categories {
		rec.Interests = append(rec.Interests, InterestRecord{
			Category:  c,
			Specific:  p.Interests.Specific,
			Intensity: DefaultIntensity,
			Source:    SourceSelf,
		})
	}
	for _, s := range p.Strengths.Self {
		rec.Strengths = append(rec.Strengths, StrengthRecord{
			Dimension:  DefaultDimension,
			TagName:    s,
			Confidence: DefaultConfident,
			Source:     SourceSelf,
		})
	}
	for _, t := range p.Personality.Traits {
		rec.Traits = append(rec.Traits, TraitRecord{TraitName: t, Score: DefaultScore, Source: SourceSelf})
	}

	slots := []struct {
		typ     GoalType
		content string
	}{
		{GoalDream, p.Goals.Dream},
		{GoalSkill, p.Goals.Learn},
		{GoalShortTerm, p.Goals.ThisYear},
	}
	for _, s := range slots {
		if s.content == "" {
			continue
		}
		rec.Goals = append(rec.Goals, GoalRecord{Type: s.typ, Content: s.content})
	}

	return rec, nil
}
