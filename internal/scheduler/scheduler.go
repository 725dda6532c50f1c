package scheduler

import (
	"errors"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/juaquiro/forecastLocalWeather/internal/forecast"
	"github.com/juaquiro/forecastLocalWeather/internal/nowcast"
)

// Scheduler periodically evaluates and logs the session trend and the
// nowcast verdict, a heartbeat for long unattended recording sessions.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *forecast.Service
	engine    *nowcast.Engine
	interval  time.Duration
}

// New creates a new Scheduler. An interval of zero disables it.
func New(interval time.Duration, service *forecast.Service, engine *nowcast.Engine) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		engine:    engine,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Println("scheduler: trend evaluation disabled; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		trend, err := s.service.Trend()
		switch {
		case errors.Is(err, forecast.ErrInsufficientData):
			log.Println("scheduler: trend not available yet; need more readings")
		case err != nil:
			log.Printf("scheduler: trend evaluation failed: %v", err)
		default:
			log.Printf("scheduler: session trend %s", trend)
		}

		res := s.engine.Evaluate()
		log.Printf("scheduler: nowcast %s (ETA %d-%dh, %d samples)",
			res.Verdict, res.ETAMinHours, res.ETAMaxHours, res.Samples)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
