// Package meeting provisions joinable video rooms for virtual interviews.
package meeting

import (
	"context"
	"log"
	"time"
)

type Room struct {
	JoinURL         string `json:"url"`
	MeetingID       string `json:"meetingId"`
	MeetingPassword string `json:"meetingPassword,omitempty"`
	Provider        string `json:"provider"`
}

type Provisioner interface {
	CreateRoom(ctx context.Context, key string, scheduledAt time.Time, durationMinutes int) (Room, error)
}

// FailoverProvisioner tries the primary and falls back on any error. The
// fallback is expected to never fail (it performs no network call), so
// scheduling a virtual interview always yields a join URL.
type FailoverProvisioner struct {
	primary  Provisioner
	fallback Provisioner
	logger   *log.Logger
}

func NewFailoverProvisioner(primary, fallback Provisioner, logger *log.Logger) *FailoverProvisioner {
	if logger == nil {
		logger = log.Default()
	}
	return &FailoverProvisioner{primary: primary, fallback: fallback, logger: logger}
}

func (p *FailoverProvisioner) CreateRoom(ctx context.Context, key string, scheduledAt time.Time, durationMinutes int) (Room, error) {
	if p.primary != nil {
		room, err := p.primary.CreateRoom(ctx, key, scheduledAt, durationMinutes)
		if err == nil {
			return room, nil
		}
		p.logger.Printf("[Meeting] Primary provider failed, using fallback | key=%s error=%v", key, err)
	}
	return p.fallback.CreateRoom(ctx, key, scheduledAt, durationMinutes)
}
