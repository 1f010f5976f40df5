// Package render produces the HTML report documents handed to PIs.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/felixgeelhaar/dailyread/internal/infrastructure/gitrepo"
	"github.com/felixgeelhaar/dailyread/pkg/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

const reportTemplate = "daily_report.html"

// StatusGroup is one section of the report: all of an owner's projects that
// resolved to the same status.
type StatusGroup struct {
	Status      string
	Icon        string
	Description string
	Projects    []domain.ProjectReport
}

// ReportData is the full input to the report template.
type ReportData struct {
	OwnerEmail string
	PullDate   string
	Groups     []StatusGroup
	Legend     []string
	PortalURL  string
	Commits    []gitrepo.Commit
}

// Renderer executes the embedded report template.
type Renderer struct {
	tmpl *template.Template
}

func New() (*Renderer, error) {
	funcMap := template.FuncMap{
		"localPart": localPart,
		"icon":      func(status string) string { return domain.StatusIcons[status] },
		"describe":  func(status string) string { return domain.StatusDescriptions[status] },
		"short":     shortHash,
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	return &Renderer{tmpl: tmpl}, nil
}

// Render fills the report template with one owner's data.
func (r *Renderer) Render(data ReportData) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, reportTemplate, data); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return buf.String(), nil
}

// BuildGroups orders an owner's reconciled projects into report sections,
// most advanced status first, Pending last. Statuses with no projects are
// omitted.
func BuildGroups(group *domain.OwnerGroup, priority []string) []StatusGroup {
	order := make([]string, 0, len(priority)+1)
	order = append(order, priority...)
	order = append(order, domain.StatusPending)

	var groups []StatusGroup
	for _, status := range order {
		projects := group.ByStatus[status]
		if len(projects) == 0 {
			continue
		}
		groups = append(groups, StatusGroup{
			Status:      status,
			Icon:        domain.StatusIcons[status],
			Description: domain.StatusDescriptions[status],
			Projects:    projects,
		})
	}
	return groups
}

func localPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

func shortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}
