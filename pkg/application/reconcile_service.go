package application

import (
	"log/slog"
	"time"

	"github.com/felixgeelhaar/dailyread/pkg/domain"
)

// DefaultClosedBeforeDays keeps recently closed orders in the report for one
// more cycle before they drop out.
const DefaultClosedBeforeDays = 7

// ReconcileOptions narrow a reconciliation pass.
type ReconcileOptions struct {
	// AssignedNode, when set, restricts the pass to orders assigned to that
	// node.
	AssignedNode string
	// ClosedBeforeDays is the closed-order cutoff. Zero or negative means
	// DefaultClosedBeforeDays.
	ClosedBeforeDays int
}

// ReconcileService joins fetched orders against the project data master.
type ReconcileService struct {
	priority []string
	logger   *slog.Logger
}

func NewReconcileService(priority []string, logger *slog.Logger) *ReconcileService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReconcileService{priority: priority, logger: logger}
}

// Reconcile groups the orders by owner and resolved status. It is pure
// beyond logging: the result is built fresh per call and no input is
// mutated.
//
// An order is excluded iff its status is closed and its closing date lies on
// or before now minus the cutoff; orders closed more recently stay in for
// one more reporting cycle. An order whose project identifier has no entry
// in the master is skipped silently: the status data simply is not available
// yet.
func (s *ReconcileService) Reconcile(orders []domain.Order, master *domain.ProjectDataMaster, now time.Time, opts ReconcileOptions) map[string]*domain.OwnerGroup {
	days := opts.ClosedBeforeDays
	if days <= 0 {
		days = DefaultClosedBeforeDays
	}
	cut := now.AddDate(0, 0, -days)
	cutoff := time.Date(cut.Year(), cut.Month(), cut.Day(), 0, 0, 0, 0, time.UTC)

	result := make(map[string]*domain.OwnerGroup)
	for _, order := range orders {
		if opts.AssignedNode != "" && order.Fields.AssignedNode != opts.AssignedNode {
			continue
		}

		if order.Status == domain.OrderStatusClosed {
			if closed, ok := order.ClosedDate(); ok && !closed.After(cutoff) {
				s.logger.Debug("dropping order past closed cutoff",
					"order", order.Identifier, "closed", order.History.Closed)
				continue
			}
		}

		rec, ok := master.Get(order.Fields.ProjectNGIIdentifier)
		if !ok {
			s.logger.Debug("no status data for order",
				"order", order.Identifier, "project", order.Fields.ProjectNGIIdentifier)
			continue
		}

		group := result[order.Owner.Email]
		if group == nil {
			group = &domain.OwnerGroup{Owner: order.Owner.Email, PullDate: now}
			result[order.Owner.Email] = group
		}
		group.Add(domain.ProjectReport{
			Order:  order,
			Record: rec,
			Status: domain.ResolveStatus(rec.ProjectDates, s.priority),
		})
	}
	return result
}
