// ABOUTME: Chat commands: list rooms, show messages, send a message
// ABOUTME: Thin wrappers over the API client's chat endpoints

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var chatsCmd = &cobra.Command{
	Use:   "chats",
	Short: "List conversations",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		return runChats(ctx, os.Stdout)
	},
}

var chatMessagesCmd = &cobra.Command{
	Use:   "messages <room-id>",
	Short: "Show messages in a conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		return runChatMessages(ctx, os.Stdout, args[0])
	},
}

var chatSendCmd = &cobra.Command{
	Use:   "send <room-id> <message>",
	Short: "Send a message",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		_, client, _, err := newSession()
		if err != nil {
			return err
		}
		if _, err := client.SendMessage(ctx, args[0], args[1]); err != nil {
			return err
		}
		fmt.Println(successStyle.Render("Sent"))
		return nil
	},
}

var chatOpenCmd = &cobra.Command{
	Use:   "open <tutor-id>",
	Short: "Open a conversation with a tutor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		_, client, _, err := newSession()
		if err != nil {
			return err
		}
		room, err := client.CreateChatRoom(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Println(successStyle.Render("Conversation ready"))
		fmt.Println(renderField("Room", room.ID))
		return nil
	},
}

func init() {
	chatsCmd.AddCommand(chatOpenCmd)
	chatsCmd.AddCommand(chatMessagesCmd)
	chatsCmd.AddCommand(chatSendCmd)
	rootCmd.AddCommand(chatsCmd)
}

func runChats(ctx context.Context, w io.Writer) error {
	_, client, _, err := newSession()
	if err != nil {
		return err
	}

	rooms, err := client.GetChatRooms(ctx)
	if err != nil {
		return err
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(rooms, "", "  ")
		fmt.Fprintln(w, string(data))
		return nil
	}

	if len(rooms) == 0 {
		fmt.Fprintln(w, "No conversations")
		return nil
	}

	for _, room := range rooms {
		name := "(unknown)"
		if room.OtherUser != nil {
			name = room.OtherUser.Name
		}
		line := titleStyle.Render(name) + labelStyle.Render("  id="+room.ID)
		if room.UnreadCount > 0 {
			line += errorStyle.Render(fmt.Sprintf("  %d unread", room.UnreadCount))
		}
		if room.LastMessage != nil {
			line += "\n  " + room.LastMessage.Content
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

func runChatMessages(ctx context.Context, w io.Writer, roomID string) error {
	_, client, _, err := newSession()
	if err != nil {
		return err
	}

	messages, err := client.GetChatMessages(ctx, roomID)
	if err != nil {
		return err
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(messages, "", "  ")
		fmt.Fprintln(w, string(data))
		return nil
	}

	for _, msg := range messages {
		sender := "?"
		if msg.Sender != nil {
			sender = msg.Sender.Name
		}
		fmt.Fprintln(w, labelStyle.Render(sender+": ")+msg.Content)
	}
	return nil
}
