// Package userstats computes the frequency tables shown on the studio
// analytics dashboard. Every function is a pure pass over an in-memory slice
// of users: nothing is cached and nothing is mutated, so callers may share the
// input across goroutines.
//
// Absent fields (empty strings) exclude a user or an entry from the table
// being built; they are never counted as zero or reported as errors.
package userstats

import (
	"math"
	"sort"
	"time"

	"vfx-dashboard/internal/common/models"
)

// Count is one row of a frequency table.
type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

type SkillKey struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

type SkillCount struct {
	Key   SkillKey `json:"key"`
	Count int      `json:"count"`
}

type WorkPreferenceCount struct {
	Name       string `json:"name"`
	TrueCount  int    `json:"trueCount"`
	FalseCount int    `json:"falseCount"`
}

type DepartmentCount struct {
	Key           string         `json:"key"`
	Count         int            `json:"count"`
	RoleBreakdown map[string]int `json:"roleBreakdown"`
}

// DepartmentReport is the result of DepartmentOverview.
type DepartmentReport struct {
	TotalUsers       int               `json:"totalUsers"`
	RoleDistribution []Count           `json:"roleDistribution"`
	Departments      []DepartmentCount `json:"departments"`
}

type UserSummary struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	ExperienceLevel string `json:"experienceLevel"`
}

// Summary is the header block of the analytics dashboard.
type Summary struct {
	TotalUsers               int     `json:"totalUsers"`
	ActiveUsers              int     `json:"activeUsers"`
	ActiveUsersPercentage    float64 `json:"activeUsersPercentage"`
	OnboardedUsers           int     `json:"onboardedUsers"`
	OnboardingPercentage     float64 `json:"onboardingPercentage"`
	MostCommonRole           string  `json:"mostCommonRole"`
	MostCommonRoleCount      int     `json:"mostCommonRoleCount"`
	MostCommonRolePercentage float64 `json:"mostCommonRolePercentage"`
}

// counter tallies string keys and remembers the order they were first seen in.
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(key string) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// sorted returns rows by descending count; ties keep first-encounter order.
func (c *counter) sorted() []Count {
	out := make([]Count, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, Count{Key: key, Count: c.counts[key]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

func RoleDistribution(users []models.User) []Count {
	c := newCounter()
	for i := range users {
		if role := users[i].Role; role != "" {
			c.add(role)
		}
	}
	return c.sorted()
}

func ExperienceDistribution(users []models.User) []Count {
	c := newCounter()
	for i := range users {
		if level := users[i].ExperienceLevel; level != "" {
			c.add(level)
		}
	}
	return c.sorted()
}

// SkillDistribution counts every skill entry, so a user listing three skills
// contributes to three buckets. Entries without a name are skipped.
func SkillDistribution(users []models.User) []SkillCount {
	var order []SkillKey
	counts := make(map[SkillKey]int)
	for i := range users {
		for _, s := range users[i].Skills {
			if s.Name == "" {
				continue
			}
			key := SkillKey{Name: s.Name, Level: s.Level}
			if _, seen := counts[key]; !seen {
				order = append(order, key)
			}
			counts[key]++
		}
	}

	out := make([]SkillCount, 0, len(order))
	for _, key := range order {
		out = append(out, SkillCount{Key: key, Count: counts[key]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// WorkPreferenceDistribution tallies the literal string values "true" and
// "false" per preference name. Any other value, including a real boolean in
// the stored document, lands in neither bucket.
func WorkPreferenceDistribution(users []models.User) []WorkPreferenceCount {
	var out []WorkPreferenceCount
	index := make(map[string]int)
	for i := range users {
		for _, p := range users[i].WorkPreferences {
			if p.Name == "" {
				continue
			}
			pos, seen := index[p.Name]
			if !seen {
				pos = len(out)
				index[p.Name] = pos
				out = append(out, WorkPreferenceCount{Name: p.Name})
			}
			switch p.Value {
			case models.PreferenceTrue:
				out[pos].TrueCount++
			case models.PreferenceFalse:
				out[pos].FalseCount++
			}
		}
	}
	if out == nil {
		out = []WorkPreferenceCount{}
	}
	return out
}

func DislikedAreaDistribution(users []models.User) []Count {
	c := newCounter()
	for i := range users {
		for _, area := range users[i].DislikedWorkAreas {
			if area != "" {
				c.add(area)
			}
		}
	}
	return c.sorted()
}

var roleDepartments = map[string]string{
	models.Role3DArtist:       "Modeling",
	models.RoleModeler:        "Modeling",
	models.RoleTextureArtist:  "Modeling",
	models.RoleAnimator:       "Animation",
	models.RoleRigger:         "Animation",
	models.RoleCompositor:     "Compositing",
	models.RoleMattePainter:   "Compositing",
	models.RoleFXArtist:       "FX",
	models.RoleLightingArtist: "Lighting",
	models.RolePipelineTD:     "Pipeline",
	models.RoleVFXSupervisor:  "Production",
	models.RoleProducer:       "Production",
}

// DepartmentOf returns the user's explicit department, falling back to the
// department their role belongs to. Empty means unknown.
func DepartmentOf(u *models.User) string {
	if u.Department != "" {
		return u.Department
	}
	return roleDepartments[u.Role]
}

// DepartmentOverview groups users by department. TotalUsers always equals
// len(users); users without a department are only left out of Departments.
func DepartmentOverview(users []models.User) DepartmentReport {
	depts := newCounter()
	breakdown := make(map[string]map[string]int)
	for i := range users {
		dept := DepartmentOf(&users[i])
		if dept == "" {
			continue
		}
		depts.add(dept)
		if users[i].Role == "" {
			continue
		}
		roles, ok := breakdown[dept]
		if !ok {
			roles = make(map[string]int)
			breakdown[dept] = roles
		}
		roles[users[i].Role]++
	}

	rows := depts.sorted()
	departments := make([]DepartmentCount, 0, len(rows))
	for _, row := range rows {
		roles := breakdown[row.Key]
		if roles == nil {
			roles = map[string]int{}
		}
		departments = append(departments, DepartmentCount{
			Key:           row.Key,
			Count:         row.Count,
			RoleBreakdown: roles,
		})
	}

	return DepartmentReport{
		TotalUsers:       len(users),
		RoleDistribution: RoleDistribution(users),
		Departments:      departments,
	}
}

// UsersByRole returns users whose role matches exactly, ordered by first then
// last name using byte-wise comparison.
func UsersByRole(users []models.User, role string) []UserSummary {
	out := make([]UserSummary, 0)
	for i := range users {
		u := &users[i]
		if u.Role != role {
			continue
		}
		out = append(out, UserSummary{
			FirstName:       u.FirstName,
			LastName:        u.LastName,
			Email:           u.Email,
			Role:            u.Role,
			ExperienceLevel: u.ExperienceLevel,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].FirstName != out[j].FirstName {
			return out[i].FirstName < out[j].FirstName
		}
		return out[i].LastName < out[j].LastName
	})
	return out
}

// PercentageOf returns count/total as a percentage rounded to one decimal.
// A zero total yields 0.
func PercentageOf(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}

// Summarize builds the dashboard header. A user is active when their last
// login is no older than activeWindow at now.
func Summarize(users []models.User, now time.Time, activeWindow time.Duration) Summary {
	s := Summary{TotalUsers: len(users)}
	cutoff := now.Add(-activeWindow)
	for i := range users {
		if ll := users[i].LastLogin; ll != nil && !ll.Before(cutoff) {
			s.ActiveUsers++
		}
		if users[i].OnboardingCompleted {
			s.OnboardedUsers++
		}
	}
	s.ActiveUsersPercentage = PercentageOf(s.ActiveUsers, s.TotalUsers)
	s.OnboardingPercentage = PercentageOf(s.OnboardedUsers, s.TotalUsers)

	if roles := RoleDistribution(users); len(roles) > 0 {
		s.MostCommonRole = roles[0].Key
		s.MostCommonRoleCount = roles[0].Count
		s.MostCommonRolePercentage = PercentageOf(roles[0].Count, s.TotalUsers)
	}
	return s
}
