package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/dalemusser/npoconnect/internal/app/store/kv"
	"github.com/dalemusser/npoconnect/internal/app/store/tasks"
	"github.com/dalemusser/npoconnect/internal/app/system/timeouts"
	"github.com/dalemusser/npoconnect/internal/domain/models"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Manage calendar tasks and grant deadlines",
	Long: `Tasks manages the calendar list kept in a local SQLite file (--tasks-db).
Tasks are listed by due date, earliest first.`,
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks by due date",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTasks(cmd.Context(), func(s *tasks.Store) error {
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(cmd.OutOrStdout(), s.List())
			}
			return printTasks(cmd.OutOrStdout(), s.List())
		})
	},
}

var tasksAddCmd = &cobra.Command{
	Use:   "add <title> <due YYYY-MM-DD>",
	Short: "Add a task or grant deadline",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("type")
		return withTasks(cmd.Context(), func(s *tasks.Store) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeouts.Short())
			defer cancel()

			t, err := s.Add(ctx, tasks.NewTask{Title: args[0], DueDate: args[1], Kind: models.TaskKind(kind)})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added %s %d: %s (due %s)\n", t.Kind, t.ID, t.Title, t.DueDate)
			return err
		})
	},
}

var tasksRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid task id %q", args[0])
		}
		return withTasks(cmd.Context(), func(s *tasks.Store) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeouts.Short())
			defer cancel()

			if err := s.Delete(ctx, id); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %d\n", id)
			return err
		})
	},
}

func init() {
	tasksListCmd.Flags().Bool("json", false, "print the list as JSON")
	tasksAddCmd.Flags().String("type", string(models.TaskKindTask), "task or grant")

	tasksCmd.AddCommand(tasksListCmd, tasksAddCmd, tasksRmCmd)
	rootCmd.AddCommand(tasksCmd)
}

// withTasks opens the task store over the configured SQLite file for the
// duration of fn.
func withTasks(ctx context.Context, fn func(*tasks.Store) error) error {
	logger := newLogger()
	defer logger.Sync()

	db, err := kv.OpenSQLite(viper.GetString("tasks_db"))
	if err != nil {
		return err
	}
	defer db.Close()

	openCtx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()
	s := tasks.Open(openCtx, db, logger)
	logger.Debug("task store opened", zap.String("path", viper.GetString("tasks_db")), zap.Int("tasks", len(s.List())))

	return fn(s)
}

func printTasks(w io.Writer, list []models.Task) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No tasks yet.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDUE\tTYPE\tTITLE")
	for _, t := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", t.ID, t.DueDate, t.Kind, t.Title)
	}
	return tw.Flush()
}
