package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/gym-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/gym-scheduler/internal/domain/gym"
	"github.com/BruksfildServices01/gym-scheduler/internal/logs"
	"github.com/BruksfildServices01/gym-scheduler/internal/timezone"
)

// sweepTimeout bounds one full pass over every tenant.
const sweepTimeout = 5 * time.Minute

// OverdueSweep records a membership_overdue audit entry for every client
// without a payment for the current month once the grace period is over.
type OverdueSweep struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewOverdueSweep(repo domain.Repository, audit *audit.Dispatcher) *OverdueSweep {
	return &OverdueSweep{
		repo:  repo,
		audit: audit,
		now:   timezone.Now,
	}
}

// Run returns how many clients were flagged. A failing tenant is logged and
// skipped.
func (j *OverdueSweep) Run(ctx context.Context) (int, error) {
	today := j.now()

	admins, err := j.repo.ListAdminAccounts(ctx)
	if err != nil {
		return 0, err
	}

	flagged := 0
	for _, admin := range admins {
		n, err := j.sweepTenant(ctx, admin.ID, today)
		if err != nil {
			logs.Log.WithError(err).WithField("tenant", admin.ID).Warn("overdue sweep skipped tenant")
			continue
		}
		flagged += n
	}

	logs.Log.WithFields(logrus.Fields{
		"tenants": len(admins),
		"overdue": flagged,
		"month":   today.Format("2006-01"),
	}).Info("overdue sweep finished")

	return flagged, nil
}

func (j *OverdueSweep) sweepTenant(ctx context.Context, tenantID string, today time.Time) (int, error) {
	clients, err := j.repo.ListClients(ctx, tenantID)
	if err != nil {
		return 0, err
	}
	payments, err := j.repo.ListPayments(ctx, tenantID)
	if err != nil {
		return 0, err
	}

	n := 0
	statuses := domain.RosterStatus(clients, payments, today)
	for _, c := range clients {
		if statuses[c.ID] != domain.StatusOverdue {
			continue
		}
		n++
		j.audit.Dispatch(audit.Event{
			TenantID: tenantID,
			Action:   "membership_overdue",
			Entity:   "client",
			EntityID: c.ID,
			Metadata: map[string]any{
				"month": int(today.Month()),
				"year":  today.Year(),
			},
		})
	}
	return n, nil
}

// Scheduler runs the sweep on a cron spec with seconds, in the gym timezone.
type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler(spec string, sweep *OverdueSweep) (*Scheduler, error) {
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLocation(timezone.Location(timezone.Default())),
		cron.WithLogger(cron.PrintfLogger(logs.Log)),
		cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(logs.Log))),
	)

	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()
		if _, err := sweep.Run(ctx); err != nil {
			logs.Log.WithError(err).Error("overdue sweep failed")
		}
	})
	if err != nil {
		return nil, err
	}

	return &Scheduler{cron: c}, nil
}

func (s *Scheduler) Start() {
	logs.Log.Info("cron scheduler started")
	s.cron.Start()
}

// Stop waits for a running sweep to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}
