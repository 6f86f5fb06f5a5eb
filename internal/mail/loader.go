package mail

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"ordersift/internal"
)

// LoadError reports a missing or unreadable email directory. Fatal to
// the batch load call only; individual file failures are skipped.
type LoadError struct {
	Dir string
	Err error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load emails %s: %v", e.Dir, e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

// LoadDir loads every .txt file as raw order text and every .eml file
// through MIME extraction, keyed by filename. Unreadable files are
// logged and skipped.
func LoadDir(dir string) ([]internal.RawEmail, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{Dir: dir, Err: err}
	}

	out := make([]internal.RawEmail, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		path := filepath.Join(dir, name)

		var content string
		switch strings.ToLower(filepath.Ext(name)) {
		case ".txt":
			blob, err := os.ReadFile(path)
			if err != nil {
				log.Printf("skip %s: %v", name, err)
				continue
			}
			content = string(blob)
		case ".eml":
			blob, err := os.ReadFile(path)
			if err != nil {
				log.Printf("skip %s: %v", name, err)
				continue
			}
			content, err = ExtractText(blob)
			if err != nil {
				log.Printf("skip %s: %v", name, err)
				continue
			}
		default:
			continue
		}

		out = append(out, internal.RawEmail{Filename: name, Content: content})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Filename < out[j].Filename })
	return out, nil
}
