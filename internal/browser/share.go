package browser

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

// Link is a titled URL to share.
type Link struct {
	Title string
	URL   string
}

// Sharer hands links to another application.
type Sharer interface {
	Share(links []Link) error
}

// ClipboardSharer shares links by copying them to the system clipboard.
type ClipboardSharer struct{}

// Share copies one "title\nurl" block per link to the clipboard.
func (ClipboardSharer) Share(links []Link) error {
	if len(links) == 0 {
		return nil
	}
	if err := clipboard.WriteAll(FormatLinks(links)); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

// FormatLinks renders links as "title\nurl" blocks separated by blank lines.
func FormatLinks(links []Link) string {
	blocks := make([]string, 0, len(links))
	for _, l := range links {
		if l.Title == "" || l.Title == l.URL {
			blocks = append(blocks, l.URL)
			continue
		}
		blocks = append(blocks, l.Title+"\n"+l.URL)
	}
	return strings.Join(blocks, "\n\n")
}

// OpenExternal opens a URL in the system's default browser.
func OpenExternal(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("open %s: unsupported platform %s", url, runtime.GOOS)
	}
	return cmd.Start()
}
