package analytics

import (
	"context"
	"time"

	"vfx-dashboard/internal/common/models"
	"vfx-dashboard/internal/config"
	"vfx-dashboard/internal/userstats"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// OrganizationLister enumerates the organizations to snapshot.
type OrganizationLister interface {
	List(ctx context.Context) ([]models.Organization, error)
}

// SnapshotJob periodically stores each organization's dashboard summary.
type SnapshotJob struct {
	orgs         OrganizationLister
	users        UserLister
	snapshots    SnapshotRepository
	logger       *zap.Logger
	schedule     string
	activeWindow time.Duration
	scheduler    *cron.Cron
	now          func() time.Time
}

func NewSnapshotJob(orgs OrganizationLister, users UserLister, snapshots SnapshotRepository, cfg *config.Config, logger *zap.Logger) *SnapshotJob {
	return &SnapshotJob{
		orgs:         orgs,
		users:        users,
		snapshots:    snapshots,
		logger:       logger,
		schedule:     cfg.SnapshotSchedule,
		activeWindow: cfg.ActiveWindow,
		now:          time.Now,
	}
}

// Start registers the job with a new scheduler. An empty schedule disables it.
func (j *SnapshotJob) Start() error {
	if j.schedule == "" {
		j.logger.Info("stats snapshot job disabled")
		return nil
	}

	j.scheduler = cron.New()
	if _, err := j.scheduler.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := j.Run(ctx); err != nil {
			j.logger.Error("stats snapshot run failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}

	j.scheduler.Start()
	j.logger.Info("stats snapshot job scheduled", zap.String("schedule", j.schedule))
	return nil
}

// Stop waits for a running snapshot to finish.
func (j *SnapshotJob) Stop() {
	if j.scheduler != nil {
		<-j.scheduler.Stop().Done()
	}
}

// Run snapshots every organization once. A failing organization is logged
// and skipped.
func (j *SnapshotJob) Run(ctx context.Context) error {
	orgs, err := j.orgs.List(ctx)
	if err != nil {
		return err
	}

	takenAt := j.now()
	stored := 0
	for _, org := range orgs {
		users, err := j.users.ListByOrganization(ctx, org.Slug)
		if err != nil {
			j.logger.Warn("skipping stats snapshot", zap.String("organization", org.Slug), zap.Error(err))
			continue
		}

		departments := make([]userstats.Count, 0)
		for _, d := range userstats.DepartmentOverview(users).Departments {
			departments = append(departments, userstats.Count{Key: d.Key, Count: d.Count})
		}

		snapshot := &StatsSnapshot{
			Organization: org.Slug,
			Summary:      userstats.Summarize(users, takenAt, j.activeWindow),
			Departments:  departments,
			TakenAt:      takenAt,
		}
		if err := j.snapshots.Create(ctx, snapshot); err != nil {
			j.logger.Warn("failed to store stats snapshot", zap.String("organization", org.Slug), zap.Error(err))
			continue
		}
		stored++
	}

	j.logger.Info("stats snapshots stored", zap.Int("organizations", stored))
	return nil
}
