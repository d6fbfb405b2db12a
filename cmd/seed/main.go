package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"vfx-dashboard/internal/common/models"
	"vfx-dashboard/internal/config"
	"vfx-dashboard/internal/database"
	"vfx-dashboard/internal/features/organization"
	"vfx-dashboard/internal/features/project"
	"vfx-dashboard/internal/features/resource"
	"vfx-dashboard/internal/features/task"
	"vfx-dashboard/internal/features/user"
	"vfx-dashboard/internal/logger"
	"vfx-dashboard/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

type seedUser struct {
	models.User
	LastLoginDaysAgo *int `json:"lastLoginDaysAgo"`
}

type seedTask struct {
	Title          string  `json:"title"`
	Assignee       string  `json:"assignee"`
	Status         string  `json:"status"`
	Priority       string  `json:"priority"`
	EstimatedHours float64 `json:"estimatedHours"`
}

type seedProject struct {
	Name        string     `json:"name"`
	Client      string     `json:"client"`
	Status      string     `json:"status"`
	StartInDays int        `json:"startInDays"`
	DueInDays   int        `json:"dueInDays"`
	Members     []string   `json:"members"`
	Tasks       []seedTask `json:"tasks"`
}

type seedResource struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	URL        string `json:"url"`
	Quantity   int    `json:"quantity"`
	AssignedTo string `json:"assignedTo"`
}

type studioData struct {
	Organization string         `json:"organization"`
	Password     string         `json:"password"`
	Users        []seedUser     `json:"users"`
	Projects     []seedProject  `json:"projects"`
	Resources    []seedResource `json:"resources"`
}

// Seeder writes a demo studio through the repositories.
type Seeder struct {
	orgRepo      organization.OrganizationRepository
	userRepo     user.UserRepository
	projectRepo  project.ProjectRepository
	taskRepo     task.TaskRepository
	resourceRepo resource.ResourceRepository
	logger       *zap.Logger
	now          time.Time
}

func (s *Seeder) Run(ctx context.Context, data *studioData) error {
	slug := utils.Slugify(data.Organization)
	if _, err := s.orgRepo.FindBySlug(ctx, slug); err == nil {
		s.logger.Info("organization exists, skipping", zap.String("organization", slug))
		return nil
	} else if !errors.Is(err, models.ErrNotFound) {
		return err
	}

	hash, err := utils.HashPassword(data.Password)
	if err != nil {
		return err
	}

	byEmail := make(map[string]primitive.ObjectID, len(data.Users))
	var owner primitive.ObjectID
	for _, su := range data.Users {
		u := su.User
		u.ID = primitive.NewObjectID()
		u.Password = hash
		u.Organization = slug
		u.CreatedAt = s.now
		u.UpdatedAt = s.now
		if su.LastLoginDaysAgo != nil {
			at := s.now.AddDate(0, 0, -*su.LastLoginDaysAgo)
			u.LastLogin = &at
		}
		if u.Skills == nil {
			u.Skills = []models.Skill{}
		}
		if u.WorkPreferences == nil {
			u.WorkPreferences = []models.WorkPreference{}
		}
		if u.DislikedWorkAreas == nil {
			u.DislikedWorkAreas = []string{}
		}
		if err := s.userRepo.Create(ctx, &u); err != nil {
			return fmt.Errorf("create user %s: %w", u.Email, err)
		}
		if u.IsAdmin && owner.IsZero() {
			owner = u.ID
		}
		byEmail[su.Email] = u.ID
	}
	s.logger.Info("users created", zap.Int("count", len(byEmail)))

	if err := s.orgRepo.Create(ctx, &models.Organization{
		ID:        primitive.NewObjectID(),
		Name:      data.Organization,
		Slug:      slug,
		OwnerID:   owner,
		CreatedAt: s.now,
		UpdatedAt: s.now,
	}); err != nil {
		return err
	}

	lookup := func(email string) *primitive.ObjectID {
		if id, ok := byEmail[email]; ok {
			return &id
		}
		return nil
	}

	taskCount := 0
	for _, sp := range data.Projects {
		start := s.now.AddDate(0, 0, sp.StartInDays)
		due := s.now.AddDate(0, 0, sp.DueInDays)
		p := &project.Project{
			ID:           primitive.NewObjectID(),
			Name:         sp.Name,
			Client:       sp.Client,
			Status:       sp.Status,
			StartDate:    &start,
			DueDate:      &due,
			Members:      []primitive.ObjectID{},
			Organization: slug,
			CreatedBy:    owner,
			CreatedAt:    s.now,
			UpdatedAt:    s.now,
		}
		for _, email := range sp.Members {
			if id := lookup(email); id != nil {
				p.Members = append(p.Members, *id)
			}
		}
		if err := s.projectRepo.Create(ctx, p); err != nil {
			return err
		}

		for _, st := range sp.Tasks {
			t := &task.Task{
				ID:             primitive.NewObjectID(),
				Title:          st.Title,
				Project:        p.ID,
				Assignee:       lookup(st.Assignee),
				Status:         st.Status,
				Priority:       st.Priority,
				DueDate:        &due,
				EstimatedHours: st.EstimatedHours,
				Organization:   slug,
				CreatedBy:      owner,
				CreatedAt:      s.now,
				UpdatedAt:      s.now,
			}
			if err := s.taskRepo.Create(ctx, t); err != nil {
				return err
			}
			taskCount++
		}
	}
	s.logger.Info("projects created", zap.Int("projects", len(data.Projects)), zap.Int("tasks", taskCount))

	for _, sr := range data.Resources {
		quantity := sr.Quantity
		if quantity == 0 {
			quantity = 1
		}
		r := &resource.Resource{
			ID:           primitive.NewObjectID(),
			Name:         sr.Name,
			Type:         sr.Type,
			URL:          sr.URL,
			Quantity:     quantity,
			AssignedTo:   lookup(sr.AssignedTo),
			Organization: slug,
			CreatedBy:    owner,
			CreatedAt:    s.now,
			UpdatedAt:    s.now,
		}
		if err := s.resourceRepo.Create(ctx, r); err != nil {
			return err
		}
	}
	s.logger.Info("resources created", zap.Int("count", len(data.Resources)))
	return nil
}

func readStudio(path string) (*studioData, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data studioData
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &data, nil
}

// Seed runs the database seeding
func Seed(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	logger *zap.Logger,
	orgRepo organization.OrganizationRepository,
	userRepo user.UserRepository,
	projectRepo project.ProjectRepository,
	taskRepo task.TaskRepository,
	resourceRepo resource.ResourceRepository,
) {
	seeder := &Seeder{
		orgRepo:      orgRepo,
		userRepo:     userRepo,
		projectRepo:  projectRepo,
		taskRepo:     taskRepo,
		resourceRepo: resourceRepo,
		logger:       logger,
		now:          time.Now().UTC(),
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				code := 0
				defer func() {
					if err := shutdowner.Shutdown(fx.ExitCode(code)); err != nil {
						logger.Error("failed to shutdown", zap.Error(err))
					}
				}()

				ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
				defer cancel()

				if err := userRepo.EnsureIndexes(ctx); err != nil {
					logger.Warn("failed to ensure user indexes", zap.Error(err))
				}
				if err := orgRepo.EnsureIndexes(ctx); err != nil {
					logger.Warn("failed to ensure organization indexes", zap.Error(err))
				}

				data, err := readStudio(*dataPath)
				if err != nil {
					logger.Error("failed to read seed data", zap.Error(err))
					code = 1
					return
				}
				if err := seeder.Run(ctx, data); err != nil {
					logger.Error("seeding failed", zap.Error(err))
					code = 1
					return
				}
				logger.Info("seeding complete", zap.String("organization", data.Organization))
			}()
			return nil
		},
	})
}

var dataPath = flag.String("data", "cmd/seed/data/studio.json", "path to the studio seed file")

func main() {
	flag.Parse()

	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			database.NewDatabase,
			organization.NewOrganizationRepository,
			user.NewUserRepository,
			project.NewProjectRepository,
			task.NewTaskRepository,
			resource.NewResourceRepository,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(Seed),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal(err)
	}

	sig := <-app.Wait()
	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Println(err)
	}
	os.Exit(sig.ExitCode)
}
