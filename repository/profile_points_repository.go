package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"streambot/domain/entities"
)

// ProfilePointsRepository reads and writes stats.points of chat profiles in users.json.
// The file belongs to the visualizer, so every other field is preserved untouched.
type ProfilePointsRepository struct {
	file *jsonFile
}

// NewProfilePointsRepository creates a profile repository backed by the file at path.
// The file is not created when missing; the visualizer owns it.
func NewProfilePointsRepository(path string) *ProfilePointsRepository {
	return &ProfilePointsRepository{file: newJSONFile(path)}
}

// GetPoints returns the profile balance and whether the profile exists.
// Only the requested profile is parsed; a malformed points value reads as 0.
func (r *ProfilePointsRepository) GetPoints(ctx context.Context, chatUsername string) (int64, bool, error) {
	users := map[string]json.RawMessage{}
	if err := r.file.read(&users); err != nil {
		return 0, false, err
	}

	raw, ok := users[strings.ToLower(chatUsername)]
	if !ok {
		return 0, false, nil
	}
	return profilePoints(raw), true, nil
}

// profilePoints extracts stats.points from one profile document
func profilePoints(raw json.RawMessage) int64 {
	var profile struct {
		Stats struct {
			Points json.RawMessage `json:"points"`
		} `json:"stats"`
	}
	if err := json.Unmarshal(raw, &profile); err != nil {
		return 0
	}

	var points float64
	if err := json.Unmarshal(profile.Stats.Points, &points); err != nil {
		return 0
	}
	return entities.NormalizePoints(points)
}

// SetPoints stores the balance on an existing profile, found is false when there is none
func (r *ProfilePointsRepository) SetPoints(ctx context.Context, chatUsername string, points int64) (bool, error) {
	key := strings.ToLower(chatUsername)
	found := false

	users := map[string]json.RawMessage{}
	err := r.file.update(&users, func() error {
		raw, ok := users[key]
		if !ok {
			return errProfileMissing
		}
		found = true

		profile := map[string]json.RawMessage{}
		if err := json.Unmarshal(raw, &profile); err != nil {
			return fmt.Errorf("failed to parse profile %s: %w", key, err)
		}

		stats := map[string]json.RawMessage{}
		if rawStats, ok := profile["stats"]; ok && string(rawStats) != "null" {
			if err := json.Unmarshal(rawStats, &stats); err != nil {
				return fmt.Errorf("failed to parse stats of %s: %w", key, err)
			}
		}

		stats["points"] = json.RawMessage(fmt.Sprintf("%d", entities.ClampPoints(points)))

		encodedStats, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		profile["stats"] = encodedStats

		encodedProfile, err := json.Marshal(profile)
		if err != nil {
			return err
		}
		users[key] = encodedProfile
		return nil
	})

	if err == errProfileMissing {
		return false, nil
	}
	if err != nil {
		return found, err
	}
	return true, nil
}
