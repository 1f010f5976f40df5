package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/dailyread/internal/infrastructure/config"
	"github.com/felixgeelhaar/dailyread/internal/infrastructure/portal"
	"github.com/felixgeelhaar/dailyread/pkg/domain"
)

// Styles
var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	PaddingLeft(1).
	PaddingRight(1)

var statusOpen = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
var statusProcessing = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
var statusClosed = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

var (
	ordersNode     string
	ordersStatus   string
	ordersOwner    string
	ordersAllYears bool
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Fetch and list orders from the order portal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return MapError(err)
		}

		client, err := portal.NewClient(cfg.OrderPortalURL, cfg.OrderPortalAPIKey)
		if err != nil {
			return MapError(err)
		}

		opts := portal.FetchOptions{
			AssignedNode: ordersNode,
			Status:       ordersStatus,
			Recent:       !ordersAllYears,
		}
		var orders []domain.Order
		if ordersOwner != "" {
			orders, err = client.FetchByOwner(cmd.Context(), ordersOwner, opts)
		} else {
			orders, err = client.FetchAll(cmd.Context(), opts)
		}
		if err != nil {
			return MapError(err)
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("%-12s %-32s %-12s %-12s %s", "IDENTIFIER", "OWNER", "STATUS", "NODE", "CLOSED")))
		for _, order := range orders {
			// Pad the status before styling: ANSI escapes would
			// otherwise count against the column width.
			status := statusStyle(order.Status).Render(fmt.Sprintf("%-12s", order.Status))
			fmt.Printf("%-12s %-32s %s %-12s %s\n",
				order.Identifier,
				order.Owner.Email,
				status,
				order.Fields.AssignedNode,
				order.History.Closed,
			)
		}
		fmt.Printf("\n%d order(s)\n", len(orders))
		return nil
	},
}

func statusStyle(status string) lipgloss.Style {
	switch status {
	case domain.OrderStatusClosed:
		return statusClosed
	case domain.OrderStatusProcessing:
		return statusProcessing
	default:
		return statusOpen
	}
}

func init() {
	ordersCmd.Flags().StringVar(&ordersNode, "node", "", "only list orders assigned to this node")
	ordersCmd.Flags().StringVar(&ordersStatus, "status", "", "only list orders with this portal status")
	ordersCmd.Flags().StringVar(&ordersOwner, "owner", "", "list a single owner's orders")
	ordersCmd.Flags().BoolVar(&ordersAllYears, "all-years", false, "list orders across all years instead of only recent ones")
	RootCmd.AddCommand(ordersCmd)
}
