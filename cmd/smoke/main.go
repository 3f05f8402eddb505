package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

const (
	defaultAPIBase = "http://localhost:8080"
)

var (
	apiBase         string
	client          = &http.Client{Timeout: 30 * time.Second}
	testDate        string
	createdIDs      = make(map[string]string) // track created resources for cleanup
	currentSnapshot json.RawMessage           // held snapshot attached to chat turns
)

func main() {
	fmt.Println("=== Run Coach E2E Smoke Test ===")
	fmt.Println()

	apiBase = getEnv("API_BASE_URL", defaultAPIBase)
	fmt.Printf("API Base: %s\n", apiBase)
	fmt.Println()

	// Test date (today)
	testDate = time.Now().Format("2006-01-02")

	steps := []struct {
		name string
		fn   func() error
	}{
		{"Healthz", testHealthz},
		{"Sync Runs", testSyncRuns},
		{"Get Snapshot", testGetSnapshot},
		{"Chat Requests Snapshot", testChatRequestsSnapshot},
		{"Chat Factual Answer", testChatFactualAnswer},
		{"Create Report (CSV)", testCreateReportCSV},
		{"List Reports", testListReports},
		{"Download Report", testDownloadReport},
		{"Delete Report", testDeleteReport},
	}

	failed := false
	for i, step := range steps {
		fmt.Printf("[%d/%d] %s... ", i+1, len(steps), step.name)
		if err := step.fn(); err != nil {
			fmt.Printf("❌ FAILED\n")
			fmt.Printf("  Error: %v\n\n", err)
			failed = true
			break
		}
		fmt.Printf("✅ OK\n")
	}

	fmt.Println()
	if failed {
		fmt.Println("❌ SMOKE TEST FAILED")
		os.Exit(1)
	}

	fmt.Println("✅ ALL SMOKE TESTS PASSED")
}

func testHealthz() error {
	req, err := http.NewRequest("GET", apiBase+"/healthz", nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}

	return nil
}

func testSyncRuns() error {
	payload := map[string]interface{}{
		"runs": []map[string]interface{}{
			{
				"date":         testDate,
				"distance_km":  8.4,
				"duration_min": 46.0,
				"elevation_m":  95.0,
				"avg_hr":       151.0,
			},
			{
				"date":         time.Now().AddDate(0, 0, -2).Format("2006-01-02"),
				"distance_km":  12.0,
				"duration_min": 68.0,
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", apiBase+"/v1/runs/sync", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}

	var result struct {
		Synced int `json:"synced"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	if result.Synced != 2 {
		return fmt.Errorf("synced=%d, want 2", result.Synced)
	}

	return nil
}

// snapshotPeriod returns the current week (Monday to next Monday).
func snapshotPeriod() (string, string) {
	now := time.Now()
	offset := (int(now.Weekday()) + 6) % 7
	start := now.AddDate(0, 0, -offset)
	end := start.AddDate(0, 0, 7)
	return start.Format("2006-01-02"), end.Format("2006-01-02")
}

func testGetSnapshot() error {
	start, end := snapshotPeriod()
	url := fmt.Sprintf("%s/v1/stats/snapshot?start=%s&end=%s", apiBase, start, end)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var result struct {
		Totals struct {
			Sessions int `json:"sessions"`
		} `json:"totals"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	if result.Totals.Sessions == 0 {
		return fmt.Errorf("snapshot has no sessions")
	}

	currentSnapshot = raw
	return nil
}

func testChatRequestsSnapshot() error {
	if currentSnapshot == nil {
		return fmt.Errorf("no snapshot from previous step")
	}

	// The held snapshot covers the current week; asking about last week must
	// come back as a snapshot request.
	payload := map[string]interface{}{
		"message":  "Combien de km la semaine dernière ?",
		"snapshot": currentSnapshot,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", apiBase+"/v1/chat", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}

	var result struct {
		Type   string `json:"type"`
		Period struct {
			Start string `json:"start"`
			End   string `json:"end"`
		} `json:"period"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	if result.Type != "REQUEST_SNAPSHOT" {
		return fmt.Errorf("type=%q, want REQUEST_SNAPSHOT", result.Type)
	}
	if result.Period.Start == "" || result.Period.End == "" {
		return fmt.Errorf("requested period is incomplete: %+v", result.Period)
	}

	// The requested snapshot period feeds the second chat turn.
	createdIDs["period_start"] = result.Period.Start
	createdIDs["period_end"] = result.Period.End
	return nil
}

func testChatFactualAnswer() error {
	start := createdIDs["period_start"]
	end := createdIDs["period_end"]
	if start == "" || end == "" {
		return fmt.Errorf("no requested period from previous step")
	}

	// Fetch the snapshot the coach asked for.
	url := fmt.Sprintf("%s/v1/stats/snapshot?start=%s&end=%s", apiBase, start, end)
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("snapshot status=%d body=%s", resp.StatusCode, string(body))
	}

	var snapshot json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return fmt.Errorf("decode snapshot failed: %w", err)
	}

	// Retry the question with the requested snapshot attached.
	payload := map[string]interface{}{
		"message":  "Combien de km la semaine dernière ?",
		"snapshot": snapshot,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", apiBase+"/v1/chat", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	chatResp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer chatResp.Body.Close()

	if chatResp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(chatResp.Body, 4096))
		return fmt.Errorf("chat status=%d body=%s", chatResp.StatusCode, string(body))
	}

	var result struct {
		Reply string `json:"reply"`
	}
	if err := json.NewDecoder(chatResp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	if result.Reply == "" {
		return fmt.Errorf("empty reply")
	}

	return nil
}

func testCreateReportCSV() error {
	fromDate := time.Now().AddDate(0, 0, -7).Format("2006-01-02")
	toDate := testDate

	payload := map[string]interface{}{
		"format": "csv",
		"from":   fromDate,
		"to":     toDate,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", apiBase+"/v1/reports", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}

	var result struct {
		ID        string `json:"id"`
		SizeBytes int64  `json:"size_bytes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}

	if result.SizeBytes < 10 {
		return fmt.Errorf("report size is %d bytes (too small)", result.SizeBytes)
	}

	createdIDs["report"] = result.ID
	return nil
}

func testListReports() error {
	req, err := http.NewRequest("GET", apiBase+"/v1/reports", nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}

	var result struct {
		Reports []struct {
			ID string `json:"id"`
		} `json:"reports"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}

	if len(result.Reports) == 0 {
		return fmt.Errorf("no reports found")
	}

	return nil
}

func testDownloadReport() error {
	reportID := createdIDs["report"]
	if reportID == "" {
		return fmt.Errorf("no report ID to download")
	}

	url := fmt.Sprintf("%s/v1/reports/%s/download", apiBase, reportID)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return err
	}

	// Don't follow redirects automatically so both serve modes can be checked.
	originalCheckRedirect := client.CheckRedirect
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	defer func() { client.CheckRedirect = originalCheckRedirect }()

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// Accept 200 (direct serve) or 302 (redirect)
	if resp.StatusCode == http.StatusOK {
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read body: %w", err)
		}
		if len(data) < 10 {
			return fmt.Errorf("report too small: %d bytes", len(data))
		}
		return nil
	}

	if resp.StatusCode == http.StatusFound {
		// Redirect (S3 mode)
		location := resp.Header.Get("Location")
		if location == "" {
			return fmt.Errorf("redirect without Location header")
		}

		getReq, err := http.NewRequest("GET", location, nil)
		if err != nil {
			return fmt.Errorf("failed to create redirect request: %w", err)
		}

		getResp, err := client.Do(getReq)
		if err != nil {
			return fmt.Errorf("failed to follow redirect: %w", err)
		}
		defer getResp.Body.Close()

		if getResp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(getResp.Body, 4096))
			return fmt.Errorf("redirect failed: status=%d body=%s", getResp.StatusCode, string(body))
		}

		data, err := io.ReadAll(getResp.Body)
		if err != nil {
			return fmt.Errorf("failed to read redirected body: %w", err)
		}
		if len(data) < 10 {
			return fmt.Errorf("report too small: %d bytes", len(data))
		}
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("unexpected status=%d body=%s", resp.StatusCode, string(body))
}

func testDeleteReport() error {
	reportID := createdIDs["report"]
	if reportID == "" {
		return fmt.Errorf("no report ID to delete")
	}

	url := fmt.Sprintf("%s/v1/reports/%s", apiBase, reportID)
	req, err := http.NewRequest("DELETE", url, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}

	return nil
}

// Helper functions

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
