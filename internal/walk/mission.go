package walk

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	// BatchSize is the number of missions handed out for one walk.
	BatchSize = 3
	// TargetCount is how many captures complete a mission.
	TargetCount = 3
)

// Mission is one photographable objective of a walk.
type Mission struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	Count       int    `json:"count"`
	TargetCount int    `json:"targetCount"`
}

// MissionDraft is a name/description pair as produced by a generator,
// before it becomes a tracked Mission.
type MissionDraft struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewMissionBatch turns generator output into exactly BatchSize fresh
// missions. Missing entries or blank names are synthesized, extra drafts
// are dropped.
func NewMissionBatch(drafts []MissionDraft) []Mission {
	missions := make([]Mission, 0, BatchSize)
	for i := 0; i < BatchSize; i++ {
		var d MissionDraft
		if i < len(drafts) {
			d = drafts[i]
		}

		name := strings.TrimSpace(d.Name)
		if name == "" {
			name = fmt.Sprintf("Mission %d", i+1)
		}

		missions = append(missions, newMission(name, strings.TrimSpace(d.Description)))
	}
	return missions
}

// DefaultMissions is the fixed batch used whenever generation is unavailable.
func DefaultMissions() []Mission {
	return NewMissionBatch(defaultDrafts)
}

var defaultDrafts = []MissionDraft{
	{Name: "古い建物", Description: "歴史を感じる建築物を撮影"},
	{Name: "緑のあるもの", Description: "植物や自然を撮影"},
	{Name: "面白い形", Description: "ユニークな形状のものを撮影"},
}

func newMission(name, description string) Mission {
	return Mission{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Completed:   false,
		Count:       0,
		TargetCount: TargetCount,
	}
}

// capture advances the counter. Completion is derived in the same step so
// the capture that reaches the target is the one that completes it.
func (m *Mission) capture() {
	m.Count++
	if m.TargetCount <= 0 {
		m.TargetCount = TargetCount
	}
	m.Completed = m.Completed || m.Count >= m.TargetCount
}

// Remaining returns how many captures are still needed.
func (m Mission) Remaining() int {
	if m.Completed {
		return 0
	}
	return m.TargetCount - m.Count
}
