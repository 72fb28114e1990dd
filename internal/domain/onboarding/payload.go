// Package onboarding turns the onboarding questionnaire into normalized
// profile records.
package onboarding

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// BasicInfo is the first questionnaire step. Grade is stored as sent.
type BasicInfo struct {
	Nickname string `json:"nickname,omitempty" validate:"omitempty,max=50"`
	Age      int    `json:"age" validate:"required,gte=5,lte=20"`
	Grade    string `json:"grade" validate:"required,max=20"`
	Gender   string `json:"gender" validate:"required,oneof=male female other"`
}

// Interests step.
type Interests struct {
	Categories []string `json:"interest_categories" validate:"max=5,dive,oneof=science arts sports social tech nature language music"`
	Specific   string   `json:"interest_specific"`
	Time       string   `json:"interest_time,omitempty"`
	Flow       string   `json:"interest_flow,omitempty"`
}

// Strengths step.
type Strengths struct {
	Self   []string `json:"strength_self" validate:"max=4,dive,required,max=50"`
	Others string   `json:"strength_others,omitempty"`
	Proud  string   `json:"strength_proud,omitempty"`
	Enjoy  string   `json:"strength_enjoy,omitempty"`
}

// Personality step.
type Personality struct {
	Energy    string   `json:"personality_energy,omitempty"`
	Challenge string   `json:"personality_challenge,omitempty"`
	Learning  string   `json:"personality_learning,omitempty"`
	Traits    []string `json:"personality_traits" validate:"max=5,dive,required,max=50"`
	Decision  string   `json:"personality_decision,omitempty"`
}

// Goals step. Only the first three fields become goal records.
type Goals struct {
	Dream    string `json:"goals_dream"`
	Learn    string `json:"goals_learn"`
	ThisYear string `json:"goals_this_year"`
	Become   string `json:"goals_become,omitempty"`
	Help     string `json:"goals_help,omitempty"`
}

// Payload is a full onboarding submission.
type Payload struct {
	BasicInfo   BasicInfo   `json:"basicInfo" validate:"required"`
	Interests   Interests   `json:"interests"`
	Strengths   Strengths   `json:"strengths"`
	Personality Personality `json:"personality"`
	Goals       Goals       `json:"goals"`

	raw json.RawMessage
}

var validate = validator.New()

// Parse decodes a raw submission and keeps the original bytes for archiving.
func Parse(raw []byte) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode onboarding payload: %w", err)
	}
	p.raw = append(json.RawMessage(nil), raw...)
	return &p, nil
}

// Raw returns the submission exactly as received. Payloads built in code are
// marshalled on demand.
func (p *Payload) Raw() (json.RawMessage, error) {
	if len(p.raw) > 0 {
		return p.raw, nil
	}
	return json.Marshal(p)
}

// Validate checks required fields and list limits. The returned error is a
// validator.ValidationErrors when a field rule fails.
func (p *Payload) Validate() error {
	p.trim()
	return validate.Struct(p)
}

func (p *Payload) trim() {
	p.BasicInfo.Nickname = strings.TrimSpace(p.BasicInfo.Nickname)
	p.BasicInfo.Grade = strings.TrimSpace(p.BasicInfo.Grade)
	p.Goals.Dream = strings.TrimSpace(p.Goals.Dream)
	p.Goals.Learn = strings.TrimSpace(p.Goals.Learn)
	p.Goals.ThisYear = strings.TrimSpace(p.Goals.ThisYear)
	p.Interests.Specific = strings.TrimSpace(p.Interests.Specific)
}
