// Package progress persists the player's unlock and score statistics
// across sessions.
package progress

import (
	"encoding/json"
	"log"
	"strconv"

	"github.com/quasilyte/gdata"
)

const saveKey = "save"

// ItemStore is the narrow slice of storage the tracker needs. It is
// satisfied by *gdata.Manager; tests use an in-memory map.
type ItemStore interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// OpenStore opens the platform save-data location for the game.
func OpenStore(appName string) (ItemStore, error) {
	return gdata.Open(gdata.Config{AppName: appName})
}

// Record is the on-disk progress document.
type Record struct {
	UnlockedLevels int            `json:"unlocked_levels"`
	LevelScores    map[string]int `json:"level_scores"`
	TotalTime      float64        `json:"total_time"`
	TotalDeaths    int            `json:"total_deaths"`
}

func defaultRecord() Record {
	return Record{
		UnlockedLevels: 1,
		LevelScores:    map[string]int{},
	}
}

// Tracker owns the progress record and writes it through the store after
// every mutation. Store failures are logged and otherwise ignored; losing
// a save write never interrupts play.
type Tracker struct {
	store ItemStore
	rec   Record
}

// NewTracker loads the existing record or starts a fresh one. store may
// be nil, in which case progress lives only for the process lifetime.
func NewTracker(store ItemStore) *Tracker {
	t := &Tracker{store: store, rec: defaultRecord()}
	if store == nil {
		return t
	}
	data, err := store.LoadItem(saveKey)
	if err != nil {
		log.Printf("progress: warning: load failed: %v", err)
		return t
	}
	if len(data) == 0 {
		t.save()
		return t
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		log.Printf("progress: warning: corrupt save, starting over: %v", err)
		return t
	}
	if rec.LevelScores == nil {
		rec.LevelScores = map[string]int{}
	}
	if rec.UnlockedLevels < 1 {
		rec.UnlockedLevels = 1
	}
	t.rec = rec
	return t
}

// RecordCompletion stores a finished catalog level: keeps the best score,
// unlocks the next level, and accumulates play time.
func (t *Tracker) RecordCompletion(levelID, score, levelIndex int, elapsedSeconds float64) {
	key := strconv.Itoa(levelID)
	if best, ok := t.rec.LevelScores[key]; !ok || score > best {
		t.rec.LevelScores[key] = score
	}
	if unlocked := levelIndex + 2; unlocked > t.rec.UnlockedLevels {
		t.rec.UnlockedLevels = unlocked
	}
	t.rec.TotalTime += elapsedSeconds
	t.save()
}

func (t *Tracker) RecordDeath() {
	t.rec.TotalDeaths++
	t.save()
}

// Unlocked is how many catalog levels are currently playable.
func (t *Tracker) Unlocked() int { return t.rec.UnlockedLevels }

func (t *Tracker) BestScore(levelID int) (int, bool) {
	score, ok := t.rec.LevelScores[strconv.Itoa(levelID)]
	return score, ok
}

// Record returns a copy of the current document for the stats screen.
func (t *Tracker) Record() Record {
	out := t.rec
	out.LevelScores = make(map[string]int, len(t.rec.LevelScores))
	for k, v := range t.rec.LevelScores {
		out.LevelScores[k] = v
	}
	return out
}

func (t *Tracker) save() {
	if t.store == nil {
		return
	}
	data, err := json.Marshal(t.rec)
	if err != nil {
		log.Printf("progress: warning: marshal failed: %v", err)
		return
	}
	if err := t.store.SaveItem(saveKey, data); err != nil {
		log.Printf("progress: warning: save failed: %v", err)
	}
}
