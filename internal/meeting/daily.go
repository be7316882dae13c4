package meeting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultDailyBaseURL = "https://api.daily.co/v1"

// DailyProvisioner creates rooms through the Daily.co REST API.
type DailyProvisioner struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewDailyProvisioner(apiKey string, timeout time.Duration) *DailyProvisioner {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &DailyProvisioner{
		apiKey:  apiKey,
		baseURL: defaultDailyBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type dailyRoomRequest struct {
	Name       string              `json:"name"`
	Properties dailyRoomProperties `json:"properties"`
}

type dailyRoomProperties struct {
	Exp               int64 `json:"exp"`
	EnableChat        bool  `json:"enable_chat"`
	EnableScreenshare bool  `json:"enable_screenshare"`
}

type dailyRoomResponse struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Error string `json:"error"`
}

func (p *DailyProvisioner) CreateRoom(ctx context.Context, key string, scheduledAt time.Time, durationMinutes int) (Room, error) {
	if p.apiKey == "" {
		return Room{}, fmt.Errorf("daily: no api key configured")
	}
	if durationMinutes <= 0 {
		durationMinutes = 30
	}

	payload := dailyRoomRequest{
		Name: fmt.Sprintf("interview-%s-%d", key, time.Now().UnixMilli()),
		Properties: dailyRoomProperties{
			// Room stays joinable for the interview plus an hour of slack.
			Exp:               scheduledAt.Unix() + int64(durationMinutes+60)*60,
			EnableChat:        true,
			EnableScreenshare: true,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Room{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/rooms", bytes.NewReader(body))
	if err != nil {
		return Room{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return Room{}, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Room{}, err
	}

	var room dailyRoomResponse
	if err := json.Unmarshal(b, &room); err != nil {
		return Room{}, fmt.Errorf("daily: bad response: %w", err)
	}
	if resp.StatusCode >= 400 || room.Error != "" {
		return Room{}, fmt.Errorf("daily: create room failed: status=%d error=%s", resp.StatusCode, room.Error)
	}
	if room.URL == "" {
		return Room{}, fmt.Errorf("daily: empty room url")
	}

	return Room{
		JoinURL:   room.URL,
		MeetingID: room.Name,
		Provider:  "daily",
	}, nil
}
