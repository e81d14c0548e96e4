package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/mbm/internal/browser"
	"github.com/nikbrunner/mbm/internal/checker"
	"github.com/nikbrunner/mbm/internal/exporter"
	"github.com/nikbrunner/mbm/internal/fixture"
	"github.com/nikbrunner/mbm/internal/importer"
	"github.com/nikbrunner/mbm/internal/model"
	"github.com/nikbrunner/mbm/internal/picker"
	"github.com/nikbrunner/mbm/internal/search"
)

func secondsToDuration(s int) time.Duration {
	return time.Duration(s) * time.Second
}

var importCmd = &cobra.Command{
	Use:   "import <file.html>",
	Short: "Import bookmarks from a Netscape HTML export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, store, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer file.Close()

		folders, bookmarks, err := importer.ParseHTMLBookmarks(file)
		if err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}

		res := store.ImportMerge(folders, bookmarks)
		if err := db.Save(store); err != nil {
			return fmt.Errorf("save bookmarks: %w", err)
		}

		log.Info().
			Int("folders", res.Folders).
			Int("bookmarks", res.Bookmarks).
			Int("duplicates", res.Duplicates).
			Int("invalid", res.Invalid).
			Str("file", args[0]).
			Msg("import done")
		fmt.Printf("Imported %d bookmarks, %d folders", res.Bookmarks, res.Folders)
		if res.Duplicates > 0 {
			fmt.Printf(", %d duplicates skipped", res.Duplicates)
		}
		if res.Invalid > 0 {
			fmt.Printf(", %d invalid entries skipped", res.Invalid)
		}
		fmt.Println()
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export bookmarks to a Netscape HTML file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputPath := ""
		if len(args) == 1 {
			outputPath = args[0]
		} else {
			var err error
			if outputPath, err = exporter.DefaultExportPath(); err != nil {
				return fmt.Errorf("default export path: %w", err)
			}
		}

		db, store, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := os.WriteFile(outputPath, []byte(exporter.ExportHTML(store)), 0644); err != nil {
			return fmt.Errorf("write %s: %w", outputPath, err)
		}

		fmt.Printf("Exported %d bookmarks, %d folders to %s\n",
			len(store.Bookmarks), len(store.Folders), outputPath)
		return nil
	},
}

var findCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "Fuzzy find a bookmark and open it in the system browser",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		db, store, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		results := search.FuzzySearchBookmarks(store, query)
		if len(results) == 0 {
			fmt.Printf("No bookmarks found for '%s'\n", query)
			return nil
		}

		var selected *model.Bookmark
		if len(results) == 1 {
			b := results[0].Bookmark
			selected = &b
			fmt.Printf("Opening: %s (%s)\n", selected.Title, store.FolderPath(selected.ParentGUID))
		} else {
			finalModel, err := tea.NewProgram(picker.New(results, query)).Run()
			if err != nil {
				return fmt.Errorf("run picker: %w", err)
			}
			finalPicker := finalModel.(picker.Picker)
			if finalPicker.Cancelled() {
				return nil
			}
			selected = finalPicker.SelectedBookmark()
		}
		if selected == nil {
			return nil
		}

		if err := store.MarkVisited(selected.GUID, time.Now()); err == nil {
			if err := db.Save(store); err != nil {
				log.Error().Err(err).Msg("save visited time")
			}
		}
		return browser.OpenExternal(selected.URL)
	},
}

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the bookmark hierarchy",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, store, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		root, err := store.GetTree(model.MobileRoot)
		if err != nil {
			return err
		}
		printTree(cmd, *root, 0)
		return nil
	},
}

func printTree(cmd *cobra.Command, n model.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	if n.IsFolder() {
		cmd.Printf("%s▤ %s/\n", indent, n.Title)
		for _, child := range n.Children {
			printTree(cmd, child, depth+1)
		}
		return
	}
	title := n.Title
	if title == "" {
		title = n.URL
	}
	cmd.Printf("%s%s %s  %s\n", indent, "["+browser.LetterIcon(n.Title, n.URL)+"]", title, n.URL)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report dead and unreachable bookmark links",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, store, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		results := checker.CheckURLs(ctx, store.Bookmarks, checker.Options{
			Concurrency:    cfg.Check.Concurrency,
			Timeout:        cfg.CheckTimeout(),
			ExcludeDomains: cfg.Check.ExcludeDomains,
			OnProgress: func(completed, total int) {
				fmt.Fprintf(os.Stderr, "\rChecked %d/%d", completed, total)
			},
			Log: log,
		})
		fmt.Fprintln(os.Stderr)

		problems := 0
		for _, r := range results {
			if r.Status == checker.Healthy {
				continue
			}
			problems++
			detail := r.Error
			if detail == "" {
				detail = fmt.Sprintf("HTTP %d", r.StatusCode)
			}
			fmt.Printf("%-11s %-24s %s\n", r.Status, detail, r.Bookmark.URL)
		}
		fmt.Printf("%d of %d links need attention\n", problems, len(results))
		return nil
	},
}

var fixturesCmd = &cobra.Command{
	Use:   "fixtures",
	Short: "Serve the generic test pages until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.Fixture.Addr
		}

		srv, err := fixture.Start(addr, log)
		if err != nil {
			return err
		}
		fmt.Printf("Serving fixtures on %s\n", srv.URL())
		fmt.Printf("  %s\n", srv.GenericAsset(1).URL)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	fixturesCmd.Flags().String("addr", "", "listen address (default from config)")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixturesCmd)
}
