package scheduler

import (
	"context"
	"log"

	"github.com/glowslot/booking-platform/internal/service"
	cron "github.com/robfig/cron/v3"
)

// StartSweeper schedules the recurring cleanup jobs: loyalty point expiry and
// flash deal deactivation. Both jobs are idempotent, so overlapping runs after
// a slow tick cause no harm.
func StartSweeper(schedule string, loyaltySvc service.LoyaltyService, dealSvc service.FlashDealService) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(schedule, func() {
		ctx := context.Background()

		if n, err := loyaltySvc.ExpireOldPoints(ctx); err != nil {
			log.Printf("[sweeper] point expiry failed: %v", err)
		} else if n > 0 {
			log.Printf("[sweeper] expired %d loyalty entries", n)
		}

		if n, err := dealSvc.ExpireOldDeals(ctx); err != nil {
			log.Printf("[sweeper] deal cleanup failed: %v", err)
		} else if n > 0 {
			log.Printf("[sweeper] closed %d flash deal records", n)
		}
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}
