package dto

import (
	"github.com/yigit/growthpath/internal/domain/progression"
)

// LevelResponse is one row of the level table.
type LevelResponse struct {
	Level     int    `json:"level" example:"2"`
	Name      string `json:"name" example:"好奇观察者"`
	MinPoints int    `json:"minPoints" example:"300"`
	Icon      string `json:"icon"`
}

// LevelInfoResponse is the resolved level for a point total.
type LevelInfoResponse struct {
	Current      LevelResponse  `json:"current"`
	Next         *LevelResponse `json:"next,omitempty"`
	ProgressPct  float64        `json:"progressPct" example:"42.5"`
	PointsToNext int            `json:"pointsToNext" example:"120"`
}

type UnlockConditionResponse struct {
	Type      string   `json:"type" example:"tasks_completed"`
	Value     int      `json:"value" example:"3"`
	TaskTypes []string `json:"taskTypes,omitempty"`
}

type MentorResponse struct {
	ID              string                  `json:"id" example:"davinci"`
	Name            string                  `json:"name"`
	Title           string                  `json:"title"`
	Icon            string                  `json:"icon"`
	Description     string                  `json:"description"`
	Dimensions      []string                `json:"dimensions"`
	UnlockCondition UnlockConditionResponse `json:"unlockCondition"`
}

type UnlockProgressResponse struct {
	Current    int     `json:"current"`
	Required   int     `json:"required"`
	Percentage float64 `json:"percentage"`
}

type MentorStatusResponse struct {
	MentorResponse
	Unlocked  bool                   `json:"unlocked"`
	Satisfied bool                   `json:"satisfied"`
	Progress  UnlockProgressResponse `json:"progress"`
}

// ProgressResponse is the dashboard view of a user's progression.
type ProgressResponse struct {
	UserID          string                 `json:"userId"`
	TotalPoints     int                    `json:"totalPoints"`
	Level           LevelInfoResponse      `json:"level"`
	CompletedByType map[string]int         `json:"completedByType"`
	CompletedTasks  []int64                `json:"completedTasks"`
	Mentors         []MentorStatusResponse `json:"mentors"`
	NextMentor      *MentorStatusResponse  `json:"nextMentor,omitempty"`
	UnlockedCount   int                    `json:"unlockedCount"`
	// PendingUnlocks are satisfied but not yet recorded.
	PendingUnlocks []string `json:"pendingUnlocks,omitempty"`
}

// UnlockSyncResponse lists mentors unlocked by a sync call.
type UnlockSyncResponse struct {
	NewlyUnlocked []MentorResponse `json:"newlyUnlocked"`
	UnlockedCount int              `json:"unlockedCount"`
}

func FromLevel(l progression.Level) LevelResponse {
	return LevelResponse{Level: l.Level, Name: l.Name, MinPoints: l.MinPoints, Icon: l.Icon}
}

func FromLevels(levels []progression.Level) []LevelResponse {
	out := make([]LevelResponse, 0, len(levels))
	for _, l := range levels {
		out = append(out, FromLevel(l))
	}
	return out
}

func FromLevelInfo(info progression.LevelInfo) LevelInfoResponse {
	resp := LevelInfoResponse{
		Current:      FromLevel(info.Current),
		ProgressPct:  info.ProgressPct,
		PointsToNext: info.PointsToNext,
	}
	if info.Next != nil {
		next := FromLevel(*info.Next)
		resp.Next = &next
	}
	return resp
}

func FromMentor(m progression.Mentor) MentorResponse {
	types := make([]string, 0, len(m.Condition.TaskTypes))
	for _, t := range m.Condition.TaskTypes {
		types = append(types, string(t))
	}
	return MentorResponse{
		ID:          m.ID,
		Name:        m.Name,
		Title:       m.Title,
		Icon:        m.Icon,
		Description: m.Description,
		Dimensions:  m.Dimensions,
		UnlockCondition: UnlockConditionResponse{
			Type:      string(m.Condition.Type),
			Value:     m.Condition.Value,
			TaskTypes: types,
		},
	}
}

func FromMentors(ms []progression.Mentor) []MentorResponse {
	out := make([]MentorResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromMentor(m))
	}
	return out
}

func FromMentorStatus(st progression.MentorStatus) MentorStatusResponse {
	return MentorStatusResponse{
		MentorResponse: FromMentor(st.Mentor),
		Unlocked:       st.Unlocked,
		Satisfied:      st.Satisfied,
		Progress: UnlockProgressResponse{
			Current:    st.Progress.Current,
			Required:   st.Progress.Required,
			Percentage: st.Progress.Percentage,
		},
	}
}

// FromSummary builds the dashboard response.
func FromSummary(userID string, completed []int64, s progression.Summary) *ProgressResponse {
	resp := &ProgressResponse{
		UserID:          userID,
		TotalPoints:     s.Points,
		Level:           FromLevelInfo(s.Level),
		CompletedByType: make(map[string]int, len(s.CompletedByType)),
		CompletedTasks:  completed,
		Mentors:         make([]MentorStatusResponse, 0, len(s.Mentors)),
	}
	if resp.CompletedTasks == nil {
		resp.CompletedTasks = []int64{}
	}
	for t, n := range s.CompletedByType {
		resp.CompletedByType[string(t)] = n
	}
	for _, st := range s.Mentors {
		if st.Unlocked {
			resp.UnlockedCount++
		}
		resp.Mentors = append(resp.Mentors, FromMentorStatus(st))
	}
	if s.NextMentor != nil {
		next := FromMentorStatus(*s.NextMentor)
		resp.NextMentor = &next
	}
	for _, m := range s.NewUnlocks {
		resp.PendingUnlocks = append(resp.PendingUnlocks, m.ID)
	}
	return resp
}
