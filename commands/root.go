package commands

import (
	"fmt"
	"os"

	"github.com/sahilchouksey/task-tracker/app"
	"github.com/sahilchouksey/task-tracker/config"
	"github.com/sahilchouksey/task-tracker/database"
	"github.com/sahilchouksey/task-tracker/services"
	"github.com/sahilchouksey/task-tracker/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// cli carries what every subcommand shares: the resolved configuration and,
// once opened, the storage and manager.
type cli struct {
	tasksFile string
	usersFile string
	driver    string

	env     *config.EnvironmentVariable
	log     *logrus.Logger
	store   database.Storage
	manager *services.TaskManager
}

// NewRootCmd builds the command tree. Each call returns an independent tree.
func NewRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "task-tracker",
		Short:         "A single-user task tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.configure(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.tasksFile, "tasks-file", "", "Tasks file or key (overrides TASKS_FILE)")
	flags.StringVar(&c.usersFile, "users-file", "", "Users file or key (overrides USERS_FILE)")
	flags.StringVar(&c.driver, "storage", "", "Storage driver: file, redis, spaces or postgres (overrides STORAGE_DRIVER)")

	root.AddCommand(
		newAddCmd(c),
		newListCmd(c),
		newCompleteCmd(c),
		newDeleteCmd(c),
		newUpdateCmd(c),
		newRegisterCmd(c),
		newLoginCmd(c),
		newServeCmd(c),
	)
	// PersistentPostRunE is skipped when RunE fails, so close on that path too.
	for _, sub := range root.Commands() {
		if sub.RunE != nil {
			sub.RunE = c.closeOnError(sub.RunE)
		}
	}
	return root
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (c *cli) configure(cmd *cobra.Command) error {
	if err := config.LoadENV(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	env, err := config.Get()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("tasks-file") {
		env.TASKS_FILE = c.tasksFile
	}
	if flags.Changed("users-file") {
		env.USERS_FILE = c.usersFile
	}
	if flags.Changed("storage") {
		env.STORAGE_DRIVER = c.driver
	}

	c.env = env
	c.log = utils.NewLogger(env.LOG_LEVEL, env.LOG_FORMAT)
	return nil
}

// taskManager opens storage on first use.
func (c *cli) taskManager() (*services.TaskManager, error) {
	if c.manager != nil {
		return c.manager, nil
	}
	store, err := app.SetupStorage(c.env, c.log)
	if err != nil {
		return nil, err
	}
	c.store = store
	c.manager = services.NewTaskManager(store, c.log)
	return c.manager, nil
}

// closeOnError wraps run so a failing command still releases storage.
func (c *cli) closeOnError(run func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := run(cmd, args)
		if err != nil {
			if closeErr := c.close(); closeErr != nil {
				c.log.WithError(closeErr).Warn("Failed to close storage")
			}
		}
		return err
	}
}

func (c *cli) close() error {
	if c.store == nil {
		return nil
	}
	err := c.store.Close()
	c.store = nil
	c.manager = nil
	return err
}
