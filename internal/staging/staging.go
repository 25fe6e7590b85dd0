package staging

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"sellsight/internal/fileutil"
	"sellsight/internal/logging"
)

// Item is one report staged into the content store.
type Item struct {
	// ID is the join key across all pipeline phases: the last '-'-delimited
	// token of the original filename, extension stripped.
	ID string
	// Path is the item's location inside the content store.
	Path string
}

// ItemID derives the stable report identifier from a raw filename.
// Example: "2026-08-24-BigBank-Autos-abc123.pdf" -> "abc123".
func ItemID(name string) string {
	base := filepath.Base(name)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	parts := strings.Split(base, "-")
	if len(parts) == 0 {
		return base
	}
	return parts[len(parts)-1]
}

// Stager moves raw inbox files into the content store. It runs strictly
// before any parallel work: it mutates the shared inbox directory and must
// not race with anything reading it.
type Stager struct {
	storeDir string
	logger   *slog.Logger
}

// NewStager constructs a stager writing into storeDir.
func NewStager(storeDir string, logger *slog.Logger) *Stager {
	return &Stager{
		storeDir: storeDir,
		logger:   logging.NewComponentLogger(logger, "stager"),
	}
}

// ListInbox returns the stageable regular files in inboxDir, newest date
// prefix first. Hidden files are left for CleanInbox. A missing inbox is an
// empty result, not an error.
func ListInbox(inboxDir string) ([]string, error) {
	entries, err := os.ReadDir(inboxDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		names = append(names, entry.Name())
	}

	sort.Slice(names, func(i, j int) bool {
		return datePrefix(names[i]) > datePrefix(names[j])
	})

	paths := make([]string, 0, len(names))
	for _, name := range names {
		paths = append(paths, filepath.Join(inboxDir, name))
	}
	return paths, nil
}

func datePrefix(name string) string {
	parts := strings.Split(name, "-")
	if len(parts) >= 3 {
		return strings.Join(parts[:3], "-")
	}
	return name
}

// Stage copies every raw file into the content store under {item_id}{ext}
// and deletes the original only after a verified copy. One item's failure is
// logged and skipped; it never aborts staging of the rest. Same-ID collisions
// overwrite.
func (s *Stager) Stage(ctx context.Context, rawPaths []string) []Item {
	logger := logging.WithContext(ctx, s.logger)

	staged := make([]Item, 0, len(rawPaths))
	for _, raw := range rawPaths {
		id := ItemID(raw)
		dst := filepath.Join(s.storeDir, id+filepath.Ext(raw))

		if err := fileutil.CopyFileVerified(raw, dst); err != nil {
			logger.Warn("failed to stage raw file",
				logging.String("path", raw),
				logging.String(logging.FieldItemID, id),
				logging.Error(err),
			)
			continue
		}
		if err := os.Remove(raw); err != nil {
			// The copy succeeded; the item is usable even if the original
			// could not be removed.
			logger.Warn("failed to remove raw file after staging",
				logging.String("path", raw),
				logging.Error(err),
			)
		}
		logger.Info("staged report",
			logging.String(logging.FieldItemID, id),
			logging.String("path", dst),
		)
		staged = append(staged, Item{ID: id, Path: dst})
	}
	return staged
}

// CleanInbox removes the drained inbox directory. If only regular files
// remain (leftover junk like .DS_Store) they are deleted individually and
// the directory removed once empty; any non-trivial content (subfolders,
// stubborn files) leaves the inbox untouched with a log line rather than an
// error.
func (s *Stager) CleanInbox(inboxDir string) {
	entries, err := os.ReadDir(inboxDir)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("inbox cleanup issue", logging.String("path", inboxDir), logging.Error(err))
		}
		return
	}

	if len(entries) > 0 {
		onlyFiles := true
		for _, entry := range entries {
			if entry.IsDir() {
				onlyFiles = false
				break
			}
		}
		if onlyFiles {
			for _, entry := range entries {
				leftover := filepath.Join(inboxDir, entry.Name())
				if err := os.Remove(leftover); err != nil {
					s.logger.Warn("failed to remove leftover file",
						logging.String("path", leftover),
						logging.Error(err),
					)
				}
			}
			entries, err = os.ReadDir(inboxDir)
			if err != nil {
				s.logger.Warn("inbox cleanup issue", logging.String("path", inboxDir), logging.Error(err))
				return
			}
		}
	}

	if len(entries) == 0 {
		if err := os.Remove(inboxDir); err != nil {
			s.logger.Warn("failed to remove empty inbox", logging.String("path", inboxDir), logging.Error(err))
			return
		}
		s.logger.Info("removed empty inbox", logging.String("path", inboxDir))
		return
	}
	s.logger.Info("skipping inbox removal, directory not empty", logging.String("path", inboxDir))
}

// ListStore re-derives staged items directly from the content store. Used by
// recovery mode when nothing new was staged and no summaries exist yet.
func ListStore(storeDir string) ([]Item, error) {
	entries, err := os.ReadDir(storeDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var items []Item
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		items = append(items, Item{
			ID:   ItemID(entry.Name()),
			Path: filepath.Join(storeDir, entry.Name()),
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}
