package cli

import (
	"errors"
	"fmt"
	"newel_classroom/internal/repository"
	"newel_classroom/internal/service"

	"github.com/spf13/cobra"
)

// NewDeleteUserCmd deletes a user and everything they own.
func NewDeleteUserCmd(configDir *string) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "delete-user",
		Short: "Delete a user with their prompts, responses and grades",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return errors.New("--name is required")
			}
			db, cleanup, err := openDB(*configDir)
			if err != nil {
				return err
			}
			defer cleanup()

			users := service.NewUserService(repository.NewUserRepository(db))
			user, err := users.DeleteUser(cmd.Context(), name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s %q (id %d)\n", user.Role, user.Name, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "name of the user to delete")
	return cmd
}

// NewDeletePromptCmd deletes a prompt together with its responses and grades.
func NewDeletePromptCmd(configDir *string) *cobra.Command {
	var id uint
	cmd := &cobra.Command{
		Use:   "delete-prompt",
		Short: "Delete a prompt with its responses and grades",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == 0 {
				return errors.New("--id is required")
			}
			db, cleanup, err := openDB(*configDir)
			if err != nil {
				return err
			}
			defer cleanup()

			prompts := service.NewPromptService(db, repository.NewPromptRepository(db))
			if err := prompts.DeletePrompt(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted prompt %d\n", id)
			return nil
		},
	}
	cmd.Flags().UintVar(&id, "id", 0, "id of the prompt to delete")
	return cmd
}
