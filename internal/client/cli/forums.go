package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ezeqja22/sciencepioneers-cli/internal/storage"
	"github.com/spf13/cobra"
)

var forumsCmd = &cobra.Command{
	Use:   "forums",
	Short: "Browse forums and manage local pins",
}

var onlyPinned bool

var forumsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List forums, pinned ones first",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fail(err)
		}
		defer store.Close()

		if onlyPinned {
			pins, err := store.PinnedForums()
			if err != nil {
				fail(err)
			}
			if len(pins) == 0 {
				fmt.Println("No pinned forums.")
				return
			}
			for _, p := range pins {
				fmt.Printf("* %-6d %s\n", p.ForumID, p.Title)
			}
			return
		}

		client, _, err := newClient(true)
		if err != nil {
			fail(err)
		}
		forums, err := client.ListForums(context.Background())
		if err != nil {
			fail(err)
		}

		for _, f := range forums {
			marker := " "
			if pinned, err := store.IsPinned(f.ID); err == nil && pinned {
				marker = "*"
			}
			fmt.Printf("%s %-6d %-30s %d members\n", marker, f.ID, f.Title, f.MemberCount)
		}
	},
}

var forumsPinCmd = &cobra.Command{
	Use:   "pin <forum-id>",
	Short: "Pin a forum locally",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.Atoi(args[0])
		if err != nil || id <= 0 {
			fail(fmt.Errorf("invalid forum id %q", args[0]))
		}
		store, err := openStore()
		if err != nil {
			fail(err)
		}
		defer store.Close()

		// Resolve the title so the pinned list is readable offline.
		title := ""
		if client, _, err := newClient(true); err == nil {
			if forums, err := client.ListForums(context.Background()); err == nil {
				for _, f := range forums {
					if f.ID == id {
						title = f.Title
						break
					}
				}
			}
		}

		if err := store.PinForum(id, title); err != nil {
			fail(err)
		}
		fmt.Printf("Forum %d pinned.\n", id)
	},
}

var forumsUnpinCmd = &cobra.Command{
	Use:   "unpin <forum-id>",
	Short: "Remove a local forum pin",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.Atoi(args[0])
		if err != nil || id <= 0 {
			fail(fmt.Errorf("invalid forum id %q", args[0]))
		}
		store, err := openStore()
		if err != nil {
			fail(err)
		}
		defer store.Close()

		if err := store.UnpinForum(id); err != nil {
			if err == storage.ErrNotFound {
				fail(fmt.Errorf("forum %d is not pinned", id))
			}
			fail(err)
		}
		fmt.Printf("Forum %d unpinned.\n", id)
	},
}

func init() {
	forumsListCmd.Flags().BoolVar(&onlyPinned, "pinned", false, "show only locally pinned forums")
	forumsCmd.AddCommand(forumsListCmd)
	forumsCmd.AddCommand(forumsPinCmd)
	forumsCmd.AddCommand(forumsUnpinCmd)
}
