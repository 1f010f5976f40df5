package domain

import (
	"strings"
	"time"
)

// ProjectReport is one order joined to its project status record, with the
// status resolved from the record's history.
type ProjectReport struct {
	Order  Order
	Record *ProjectDataRecord
	Status string
}

// OwnerGroup collects one owner's reconciled projects, grouped by resolved
// status. Built fresh per run and discarded after rendering.
type OwnerGroup struct {
	Owner    string
	PullDate time.Time
	ByStatus map[string][]ProjectReport
}

// Add appends a joined project under its resolved status.
func (g *OwnerGroup) Add(p ProjectReport) {
	if g.ByStatus == nil {
		g.ByStatus = make(map[string][]ProjectReport)
	}
	g.ByStatus[p.Status] = append(g.ByStatus[p.Status], p)
}

// Orders flattens the group back into its orders.
func (g *OwnerGroup) Orders() []Order {
	var orders []Order
	for _, projects := range g.ByStatus {
		for _, p := range projects {
			orders = append(orders, p.Order)
		}
	}
	return orders
}

// ReportFileName is "{local part of owner email}_{pull date}.html".
func ReportFileName(owner string, pullDate time.Time) string {
	local, _, _ := strings.Cut(owner, "@")
	return local + "_" + pullDate.Format(DateLayout) + ".html"
}
