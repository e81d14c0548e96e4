// Package exporter writes the mobile bookmark tree as Netscape bookmark HTML.
package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/mbm/internal/model"
)

// DefaultExportPath returns ~/Downloads/mobile-bookmarks-YYYY-MM-DD.html.
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("mobile-bookmarks-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML renders the store in Netscape bookmark format. Children keep
// their stored order.
func ExportHTML(store *model.Store) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")
	writeChildren(&b, store, model.MobileRoot, 1)
	b.WriteString("</DL><p>\n")

	return b.String()
}

func writeChildren(b *strings.Builder, store *model.Store, parent string, indent int) {
	prefix := strings.Repeat("    ", indent)

	for _, child := range store.Children(parent) {
		if child.IsFolder() {
			fmt.Fprintf(b, "%s<DT><H3>%s</H3>\n", prefix, html.EscapeString(child.Title))
			fmt.Fprintf(b, "%s<DL><p>\n", prefix)
			writeChildren(b, store, child.GUID, indent+1)
			fmt.Fprintf(b, "%s</DL><p>\n", prefix)
			continue
		}

		bm := store.GetBookmarkByGUID(child.GUID)
		visit := ""
		if bm.VisitedAt != nil {
			visit = fmt.Sprintf(" LAST_VISIT=\"%d\"", bm.VisitedAt.Unix())
		}
		fmt.Fprintf(b, "%s<DT><A HREF=\"%s\" ADD_DATE=\"%d\"%s>%s</A>\n",
			prefix,
			html.EscapeString(bm.URL),
			bm.CreatedAt.Unix(),
			visit,
			html.EscapeString(bm.Title),
		)
	}
}
