package works

import (
	"strconv"
	"strings"
)

// ReviewStatus is the review state of a work. There is no rejected state.
type ReviewStatus string

const (
	ReviewPending   ReviewStatus = "pending"
	ReviewCompleted ReviewStatus = "completed"
)

func (s ReviewStatus) Valid() bool {
	return s == ReviewPending || s == ReviewCompleted
}

const (
	tagFeedback = "feedback:"
	tagPoints   = "points:"
	tagStatus   = "status:"
)

// Review is the outcome recorded on a work.
type Review struct {
	Status   ReviewStatus
	Points   int
	Feedback string
}

// ParseLegacyTags reads review metadata from the old tag encoding. ok is
// false when no status or points tag is present.
func ParseLegacyTags(tags []string) (r Review, ok bool) {
	r.Status = ReviewPending
	for _, tag := range tags {
		switch {
		case strings.HasPrefix(tag, tagFeedback):
			r.Feedback = strings.TrimPrefix(tag, tagFeedback)
		case strings.HasPrefix(tag, tagPoints):
			if n, err := strconv.Atoi(strings.TrimPrefix(tag, tagPoints)); err == nil {
				r.Points = n
				ok = true
			}
		case strings.HasPrefix(tag, tagStatus):
			v := strings.TrimPrefix(tag, tagStatus)
			if v == "completed" || v == "approved" {
				r.Status = ReviewCompleted
			}
			ok = true
		}
	}
	return r, ok
}

// StripMetaTags drops reserved metadata tags, blank tags and duplicates.
func StripMetaTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || IsMetaTag(tag) {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func IsMetaTag(tag string) bool {
	return strings.HasPrefix(tag, tagFeedback) ||
		strings.HasPrefix(tag, tagPoints) ||
		strings.HasPrefix(tag, tagStatus)
}
