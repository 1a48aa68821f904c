package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRegisterCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "register USERNAME PASSWORD",
		Short: "Create a user account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := c.taskManager()
			if err != nil {
				return err
			}
			ok, err := manager.Register(args[0], args[1])
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Username %s is already taken\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered user %s\n", args[0])
			return nil
		},
	}
}

// The session only lives for this process, so login just checks the credentials.
func newLoginCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "login USERNAME PASSWORD",
		Short: "Check a username and password",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := c.taskManager()
			if err != nil {
				return err
			}
			ok, err := manager.Login(args[0], args[1])
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Invalid username or password")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", manager.CurrentSession().User.Username)
			return nil
		},
	}
}
