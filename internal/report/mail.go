package report

import (
	"fmt"
	"strings"

	"storefront/internal/model"
	"storefront/internal/notify"
)

// Message renders report as a plain-text email to the given admin.
func Message(report *model.DailyReport, admin model.User) notify.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", admin.Name)
	fmt.Fprintf(&b, "Orders on %s: %d\n", report.Date, report.TotalOrders)
	fmt.Fprintf(&b, "Revenue: %s\n", notify.FormatVND(report.TotalRevenue))

	if len(report.Orders) == 0 {
		b.WriteString("\nNo orders were placed.\n")
	} else {
		b.WriteString("\n")
		for _, line := range report.Orders {
			fmt.Fprintf(&b, "%s  %s  %-10s  %s  %s\n",
				line.CreatedAt, line.ID, line.Status, notify.FormatVND(line.TotalPrice), line.CustomerName)
		}
	}

	return notify.Message{
		To:      []string{admin.Email},
		Subject: "Daily order report " + report.Date,
		Body:    b.String(),
	}
}
