package solver

import (
	"fmt"
	"strings"

	"github.com/example/daysched/internal/domain"
	"github.com/example/daysched/internal/timecodec"
)

// FormatSchedule renders a ScheduleResult as a fixed-width text report.
func FormatSchedule(result domain.ScheduleResult) string {
	var b strings.Builder

	b.WriteString("--- SCHEDULE ---\n")
	fmt.Fprintf(&b, "Total penalty: %.1f\n\n", result.TotalPenalty)

	b.WriteString("TIME     | ENTITY               | INSTANCE\n")
	b.WriteString("---------+----------------------+---------\n")
	for _, ev := range result.ScheduledEvents {
		fmt.Fprintf(&b, "%-8s | %-20s | #%d\n", timecodec.FormatHHMM(ev.TimeMinutes), ev.EntityName, ev.Instance)
	}

	if len(result.WindowUsage) > 0 {
		b.WriteString("\n--- WINDOW USAGE ---\n")
		b.WriteString("ENTITY               | WINDOW               | USED BY\n")
		b.WriteString("---------------------+----------------------+--------\n")
		for _, u := range result.WindowUsage {
			instances := make([]string, len(u.Instances))
			for i, n := range u.Instances {
				instances[i] = fmt.Sprintf("#%d", n)
			}
			fmt.Fprintf(&b, "%-20s | %-20s | %s\n", u.EntityName, u.WindowLabel, strings.Join(instances, ", "))
		}
	}

	return b.String()
}
