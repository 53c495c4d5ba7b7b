package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"nexus/internal/domain"
)

func notificationsCmd() *cobra.Command {
	var unread bool
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"inbox"},
		Short:   "Show budget, goal and account alerts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := appCtx.API.ListNotifications(ctxOf(cmd), unread)
			if err != nil {
				return err
			}
			return printNotifications(list)
		},
	}
	cmd.Flags().BoolVar(&unread, "unread", false, "only unread notifications")
	cmd.AddCommand(notificationsReadCmd(), notificationsReadAllCmd())
	return protected(cmd)
}

func printNotifications(list domain.NotificationList) error {
	return out.print(list, func(tw table.Writer) {
		tw.AppendHeader(table.Row{"ID", "", "Type", "Priority", "Title", "Message", "Created"})
		for _, n := range list.Notifications {
			mark := "*"
			if n.IsRead {
				mark = ""
			}
			tw.AppendRow(table.Row{n.ID, mark, n.NotificationType, n.Priority, n.Title, n.Message, n.CreatedAt.Date()})
		}
		tw.AppendFooter(table.Row{"", "", "", "", "", "unread", list.UnreadCount})
	})
}

func notificationsReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <id>",
		Short: "Mark one notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := appCtx.API.MarkNotificationRead(ctxOf(cmd), id); err != nil {
				return err
			}
			out.line("Notification %d marked as read.", id)
			return nil
		},
	}
}

func notificationsReadAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification as read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.API.MarkAllNotificationsRead(ctxOf(cmd)); err != nil {
				return err
			}
			out.line("All notifications marked as read.")
			return nil
		},
	}
}
