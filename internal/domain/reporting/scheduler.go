package reporting

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler runs the monthly roll-up for all facilities on a cron
// schedule, covering the previous calendar month.
type Scheduler struct {
	svc  *Service
	cron *cron.Cron
	spec string
	log  zerolog.Logger
}

func NewScheduler(svc *Service, spec string, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		svc:  svc,
		cron: cron.New(),
		spec: spec,
		log:  log,
	}
}

func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, s.run)
	if err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info().Str("spec", s.spec).Msg("report scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) run() {
	prev := time.Now().AddDate(0, -1, 0)
	year, month := prev.Year(), int(prev.Month())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	s.log.Info().Int("year", year).Int("month", month).Msg("running monthly report roll-up")
	if err := s.svc.GenerateAll(ctx, year, month); err != nil {
		s.log.Error().Err(err).Msg("monthly report roll-up failed")
	}
}
