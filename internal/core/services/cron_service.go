package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// CronService reclaims expired session rows on a schedule. Expired sessions
// are already rejected lazily at validation time; this only frees storage.
type CronService struct {
	authService *AuthService
	schedule    string
	cron        *cron.Cron
}

// NewCronService creates a new cron service
func NewCronService(authService *AuthService, schedule string) *CronService {
	return &CronService{
		authService: authService,
		schedule:    schedule,
		cron:        cron.New(),
	}
}

// Start registers the cleanup job and launches the scheduler
func (s *CronService) Start() error {
	_, err := s.cron.AddFunc(s.schedule, s.purgeExpiredSessions)
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("🚀 CronService started [schedule: %s]", s.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(10 * time.Second):
	}
	log.Println("🛑 CronService stopped")
}

func (s *CronService) purgeExpiredSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := s.authService.PurgeExpired(ctx)
	if err != nil {
		log.Printf("⚠️ Session cleanup failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("🧹 Purged %d expired sessions", deleted)
	}
}
