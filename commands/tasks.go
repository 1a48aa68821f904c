package commands

import (
	"fmt"
	"strconv"

	"github.com/sahilchouksey/task-tracker/services"
	"github.com/sahilchouksey/task-tracker/utils/validation"
	"github.com/spf13/cobra"
)

func parseTaskID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid task ID %q: must be an integer", arg)
	}
	return id, nil
}

// addInput is checked with the same rules as a create request over HTTP.
type addInput struct {
	Title   string `validate:"required"`
	DueDate string `validate:"omitempty,duedate"`
}

func newAddCmd(c *cli) *cobra.Command {
	var dueDate string

	cmd := &cobra.Command{
		Use:   "add TITLE DESCRIPTION",
		Short: "Add a new task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if err := validation.NewValidator().ValidateStruct(addInput{Title: args[0], DueDate: dueDate}); err != nil {
				errs := validation.FormatValidationErrors(err)
				for _, field := range []string{"title", "duedate"} {
					if msg, ok := errs[field]; ok {
						fmt.Fprintln(out, msg)
						return nil
					}
				}
				return err
			}
			due, err := validation.ParseOptionalDueDate(dueDate)
			if err != nil {
				fmt.Fprintln(out, err.Error())
				return nil
			}

			manager, err := c.taskManager()
			if err != nil {
				return err
			}
			task, err := manager.AddTask(args[0], args[1], due)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Added task: %s\n", task.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&dueDate, "due-date", "", "Due date in YYYY-MM-DD format")
	return cmd
}

func newListCmd(c *cli) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks with optional status filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := c.taskManager()
			if err != nil {
				return err
			}
			filter := services.ParseStatusFilter(status)
			tasks, err := manager.ListTasks(filter)
			if err != nil {
				return err
			}
			return printTasks(cmd.OutOrStdout(), tasks, listTitle(filter))
		},
	}
	cmd.Flags().StringVar(&status, "status", string(services.StatusAll), "Filter tasks by status: all/pending/completed/overdue")
	return cmd
}

func listTitle(filter services.StatusFilter) string {
	switch filter {
	case services.StatusPending:
		return "Pending Tasks"
	case services.StatusCompleted:
		return "Completed Tasks"
	case services.StatusOverdue:
		return "Overdue Tasks"
	default:
		return "All Tasks"
	}
}

func newCompleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "complete ID",
		Short: "Mark a task as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			manager, err := c.taskManager()
			if err != nil {
				return err
			}
			ok, err := manager.CompleteTask(id)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Task %d not found\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %d marked as completed\n", id)
			return nil
		},
	}
}

func newDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			manager, err := c.taskManager()
			if err != nil {
				return err
			}
			ok, err := manager.DeleteTask(id)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Task %d not found\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %d deleted\n", id)
			return nil
		},
	}
}

func newUpdateCmd(c *cli) *cobra.Command {
	var title, description, dueDate string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a task",
		Long:  "Update a task. Only the flags given are changed; empty values leave the field as it is.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			due, err := validation.ParseOptionalDueDate(dueDate)
			if err != nil {
				fmt.Fprintln(out, err.Error())
				return nil
			}

			manager, err := c.taskManager()
			if err != nil {
				return err
			}
			ok, err := manager.UpdateTask(id, title, description, due)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(out, "Task %d not found\n", id)
				return nil
			}
			fmt.Fprintf(out, "Task %d updated\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&dueDate, "due-date", "", "New due date in YYYY-MM-DD format")
	return cmd
}
