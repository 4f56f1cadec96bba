// Package sitelist reads site lists and writes feed lists, one URL per line.
package sitelist

import (
	"bufio"
	"fmt"
	"os"

	"github.com/julienpequegnot/rssgen/internal/failure"
)

const maxLineBytes = 1024 * 1024

// ReadSites returns every line of the file as-is. Filtering blank lines and
// comments is left to the caller.
func ReadSites(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, failure.IO(err)
	}
	defer f.Close()

	var sites []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		sites = append(sites, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, failure.IO(err)
	}
	return sites, nil
}

// WriteFeeds creates (or truncates) path and writes one feed per line.
func WriteFeeds(path string, feeds []string) error {
	f, err := os.Create(path)
	if err != nil {
		return failure.IO(err)
	}

	w := bufio.NewWriter(f)
	for _, feed := range feeds {
		if _, err := fmt.Fprintln(w, feed); err != nil {
			f.Close()
			return failure.IO(err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return failure.IO(err)
	}
	return failure.IO(f.Close())
}
