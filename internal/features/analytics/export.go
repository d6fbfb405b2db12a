package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"vfx-dashboard/internal/common/models"
	"vfx-dashboard/internal/userstats"

	"github.com/xuri/excelize/v2"
)

// table is one worksheet of the export.
type table struct {
	name    string
	headers []string
	rows    [][]interface{}
}

// BuildWorkbook renders every dashboard table into an xlsx workbook, one
// sheet per table.
func BuildWorkbook(users []models.User, now time.Time, activeWindow time.Duration) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	for i, t := range tables(users, now, activeWindow) {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", t.name); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(t.name); err != nil {
			return nil, err
		}
		if err := writeTable(f, t, headerStyle); err != nil {
			return nil, fmt.Errorf("write sheet %s: %w", t.name, err)
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeTable(f *excelize.File, t table, headerStyle int) error {
	header := make([]interface{}, len(t.headers))
	for i, h := range t.headers {
		header[i] = h
	}
	if err := f.SetSheetRow(t.name, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(t.headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(t.name, "A1", last, headerStyle); err != nil {
		return err
	}

	for i := range t.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(t.name, cell, &t.rows[i]); err != nil {
			return err
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(t.headers))
	if err != nil {
		return err
	}
	return f.SetColWidth(t.name, "A", lastCol, 20)
}

func tables(users []models.User, now time.Time, activeWindow time.Duration) []table {
	summary := userstats.Summarize(users, now, activeWindow)
	departments := userstats.DepartmentOverview(users)

	out := []table{
		{
			name:    "Summary",
			headers: []string{"Metric", "Value"},
			rows: [][]interface{}{
				{"Total users", summary.TotalUsers},
				{"Active users", summary.ActiveUsers},
				{"Active users %", summary.ActiveUsersPercentage},
				{"Onboarded users", summary.OnboardedUsers},
				{"Onboarding %", summary.OnboardingPercentage},
				{"Most common role", summary.MostCommonRole},
				{"Most common role count", summary.MostCommonRoleCount},
				{"Most common role %", summary.MostCommonRolePercentage},
			},
		},
		countTable("Roles", "Role", userstats.RoleDistribution(users)),
		countTable("Experience", "Experience level", userstats.ExperienceDistribution(users)),
	}

	skills := table{name: "Skills", headers: []string{"Skill", "Level", "Count"}}
	for _, s := range userstats.SkillDistribution(users) {
		skills.rows = append(skills.rows, []interface{}{s.Key.Name, s.Key.Level, s.Count})
	}
	out = append(out, skills)

	prefs := table{name: "Work Preferences", headers: []string{"Preference", "Yes", "No"}}
	for _, p := range userstats.WorkPreferenceDistribution(users) {
		prefs.rows = append(prefs.rows, []interface{}{p.Name, p.TrueCount, p.FalseCount})
	}
	out = append(out, prefs, countTable("Disliked Areas", "Work area", userstats.DislikedAreaDistribution(users)))

	depts := table{name: "Departments", headers: []string{"Department", "Users", "Roles"}}
	for _, d := range departments.Departments {
		depts.rows = append(depts.rows, []interface{}{d.Key, d.Count, formatBreakdown(d.RoleBreakdown)})
	}
	return append(out, depts)
}

func countTable(name, keyHeader string, counts []userstats.Count) table {
	t := table{name: name, headers: []string{keyHeader, "Count"}}
	for _, c := range counts {
		t.rows = append(t.rows, []interface{}{c.Key, c.Count})
	}
	return t
}

// formatBreakdown renders "Animator: 2, Rigger: 1" with roles in name order.
func formatBreakdown(roles map[string]int) string {
	names := make([]string, 0, len(roles))
	for name := range roles {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s: %d", name, roles[name])
	}
	return strings.Join(parts, ", ")
}
