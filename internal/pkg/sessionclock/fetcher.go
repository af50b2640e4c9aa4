package sessionclock

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
)

// SnapshotFetcher builds a FetchFunc that reads the current-day snapshot
// from the attendance API. tokenFn is called per request so a refreshed
// access token is picked up without rebuilding the tracker.
func SnapshotFetcher(client *http.Client, baseURL string, tokenFn func() string) FetchFunc {
	if client == nil {
		client = http.DefaultClient
	}

	return func(ctx context.Context) (attendance.Snapshot, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/v1/attendance/today", nil)
		if err != nil {
			return attendance.Snapshot{}, err
		}
		req.Header.Set("Accept", "application/json")
		if tokenFn != nil {
			req.Header.Set("Authorization", "Bearer "+tokenFn())
		}

		resp, err := client.Do(req)
		if err != nil {
			return attendance.Snapshot{}, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return attendance.Snapshot{}, fmt.Errorf("snapshot fetch returned status %d", resp.StatusCode)
		}

		var body struct {
			Success bool                        `json:"success"`
			Data    attendance.SnapshotResponse `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return attendance.Snapshot{}, fmt.Errorf("failed to decode snapshot response: %w", err)
		}
		if !body.Success {
			return attendance.Snapshot{}, fmt.Errorf("snapshot fetch was not successful")
		}

		return body.Data.Snapshot, nil
	}
}
