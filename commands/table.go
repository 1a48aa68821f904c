package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sahilchouksey/task-tracker/services"
	"github.com/sahilchouksey/task-tracker/utils/validation"
)

// printTasks renders tasks as an aligned table headed by title. ID is the
// position the complete, update and delete commands accept.
func printTasks(out io.Writer, tasks []services.IndexedTask, title string) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintf(out, "No %s found.\n", strings.ToLower(strings.TrimPrefix(title, "All ")))
		return err
	}

	now := time.Now()
	fmt.Fprintln(out, title)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTitle\tDescription\tDue Date\tStatus\tDays Left")
	for _, it := range tasks {
		status := "pending"
		if it.Task.Completed {
			status = "done"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			it.Index,
			it.Task.Title,
			it.Task.Description,
			it.Task.DueDate.Local().Format(validation.DueDateLayout),
			status,
			daysLeft(it.Task.DaysUntilDueAt(now)),
		)
	}
	return w.Flush()
}

func daysLeft(days int) string {
	if days > 0 {
		return fmt.Sprintf("%d days", days)
	}
	return "Overdue!"
}
