package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/wallabag/internal/client/models"
	"github.com/dmitrijs2005/wallabag/internal/client/repositories/entries"
	"github.com/dmitrijs2005/wallabag/internal/filex"
	"github.com/dmitrijs2005/wallabag/internal/htmlx"
)

// List prints cached entries that are not archived, optionally only those
// carrying the tag given as the first argument.
func (a *App) List(ctx context.Context, args []string) error {
	no := false
	return a.list(ctx, entries.EntryQuery{Archived: &no, Tag: firstArg(args)})
}

func (a *App) Archived(ctx context.Context, args []string) error {
	yes := true
	return a.list(ctx, entries.EntryQuery{Archived: &yes, Tag: firstArg(args)})
}

func (a *App) Starred(ctx context.Context, args []string) error {
	yes := true
	return a.list(ctx, entries.EntryQuery{Starred: &yes, Tag: firstArg(args)})
}

func (a *App) list(ctx context.Context, q entries.EntryQuery) error {
	items, err := a.entryService.List(ctx, q)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No entries")
		return nil
	}
	for _, e := range items {
		fmt.Fprintln(a.out, overview(e))
	}
	return nil
}

// Show prints one entry with its content rendered as text.
func (a *App) Show(ctx context.Context, args []string) error {
	id, err := a.entryID(args)
	if err != nil {
		return err
	}
	e, err := a.entryService.Get(ctx, id)
	if err != nil {
		return a.noteErr(ctx, err)
	}

	fmt.Fprintln(a.out, e.DisplayTitle())
	if e.URL != nil {
		fmt.Fprintf(a.out, "URL: %s\n", *e.URL)
	}
	if labels := e.Tags.Labels(); len(labels) > 0 {
		fmt.Fprintf(a.out, "Tags: %s\n", strings.Join(labels, ", "))
	}
	fmt.Fprintf(a.out, "Added: %s, reading time %d min\n", e.CreatedAt.Local().Format(time.DateTime), e.ReadingTime)
	if e.Content != nil {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, htmlx.ToText(*e.Content))
	}
	return nil
}

// Export writes an entry as a sanitized standalone HTML file.
func (a *App) Export(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: export <id> <file>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	e, err := a.entryService.Get(ctx, id)
	if err != nil {
		return a.noteErr(ctx, err)
	}

	content := ""
	if e.Content != nil {
		content = *e.Content
	}
	path, err := filex.EnsureParentDir(args[1])
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(htmlx.Document(e.DisplayTitle(), content)), 0o600); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved to %s\n", path)
	return nil
}

// Add saves a url on the server. The url and a comma separated tag list
// may be given as arguments; a missing url is prompted for.
func (a *App) Add(ctx context.Context, args []string) error {
	url := firstArg(args)
	if url == "" {
		var err error
		if url, err = getSimpleText(a.reader, "Enter URL", a.out); err != nil {
			return err
		}
	}
	var tags []string
	if len(args) > 1 {
		tags = splitTags(strings.Join(args[1:], ","))
	}

	e, err := a.entryService.Add(ctx, url, tags)
	if err != nil {
		return a.noteErr(ctx, err)
	}
	fmt.Fprintf(a.out, "Added %d: %s\n", e.ID, e.DisplayTitle())
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := a.entryID(args)
	if err != nil {
		return err
	}
	e, err := a.entryService.Delete(ctx, id)
	if err != nil {
		return a.noteErr(ctx, err)
	}
	fmt.Fprintf(a.out, "Deleted %d: %s\n", e.ID, e.DisplayTitle())
	return nil
}

func (a *App) Archive(ctx context.Context, args []string, archived bool) error {
	id, err := a.entryID(args)
	if err != nil {
		return err
	}
	e, err := a.entryService.SetArchived(ctx, id, archived)
	if err != nil {
		return a.noteErr(ctx, err)
	}
	fmt.Fprintln(a.out, overview(*e))
	return nil
}

func (a *App) Star(ctx context.Context, args []string, starred bool) error {
	id, err := a.entryID(args)
	if err != nil {
		return err
	}
	e, err := a.entryService.SetStarred(ctx, id, starred)
	if err != nil {
		return a.noteErr(ctx, err)
	}
	fmt.Fprintln(a.out, overview(*e))
	return nil
}

func (a *App) Tags(ctx context.Context) error {
	tags, err := a.entryService.Tags(ctx)
	if err != nil {
		return a.noteErr(ctx, err)
	}
	for _, t := range tags {
		fmt.Fprintf(a.out, "%s (%s)\n", t.Label, t.Slug)
	}
	return nil
}

// Sync replaces the local cache with the server's collection.
func (a *App) Sync(ctx context.Context) error {
	n, err := a.entryService.Sync(ctx)
	if err != nil {
		return a.noteErr(ctx, err)
	}
	fmt.Fprintf(a.out, "Synced %d entries\n", n)
	return nil
}

func (a *App) Status(ctx context.Context) error {
	st, err := a.entryService.Status(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Mode: %s\n", a.currentMode())
	fmt.Fprintf(a.out, "Cached entries: %d\n", st.Cached)
	if !st.Synced {
		fmt.Fprintln(a.out, "Never synced")
		return nil
	}
	fmt.Fprintf(a.out, "Last sync: %s (%d entries)\n", st.LastSyncAt.Local().Format(time.DateTime), st.LastTotal)
	return nil
}

// entryID takes the id from the first argument or asks for it.
func (a *App) entryID(args []string) (models.ID, error) {
	raw := firstArg(args)
	if raw == "" {
		var err error
		if raw, err = getSimpleText(a.reader, "Enter entry id", a.out); err != nil {
			return 0, err
		}
	}
	return parseID(raw)
}

func parseID(s string) (models.ID, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid entry id %q", s)
	}
	return models.ID(n), nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// overview renders an entry as one list line: id, flags, title.
func overview(e models.Entry) string {
	flags := []byte("--")
	if e.IsArchived {
		flags[0] = 'A'
	}
	if e.IsStarred {
		flags[1] = '*'
	}
	return fmt.Sprintf("%6d %s %s", e.ID, flags, e.DisplayTitle())
}
