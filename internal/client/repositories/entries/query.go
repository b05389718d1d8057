package entries

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/wallabag/internal/client/models"
)

// placeholder renders the n-th (1-based) bind parameter of a dialect.
type placeholder func(n int) string

func questionMark(int) string { return "?" }
func dollar(n int) string     { return fmt.Sprintf("$%d", n) }

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// listQuery builds the GetAll statement. Tag filtering happens after
// decoding, so the SQL limit is only applied when no tag is requested.
func listQuery(q EntryQuery, ph placeholder) (string, []any) {
	var (
		where []string
		args  []any
	)
	if q.Archived != nil {
		args = append(args, *q.Archived)
		where = append(where, "is_archived = "+ph(len(args)))
	}
	if q.Starred != nil {
		args = append(args, *q.Starred)
		where = append(where, "is_starred = "+ph(len(args)))
	}

	var b strings.Builder
	b.WriteString("SELECT payload FROM entries")
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY created_at DESC, id DESC")
	if q.Limit > 0 && q.Tag == "" {
		args = append(args, q.Limit)
		b.WriteString(" LIMIT " + ph(len(args)))
	}
	return b.String(), args
}

func scanPayloads(rows *sql.Rows, q EntryQuery) (models.Entries, error) {
	result := models.Entries{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		e, err := unmarshalPayload(payload)
		if err != nil {
			return nil, err
		}
		if q.Tag != "" && !e.Tags.HasLabel(q.Tag) {
			continue
		}
		result = append(result, *e)
		if q.Limit > 0 && len(result) == q.Limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entry rows: %w", err)
	}
	return result, nil
}

func marshalPayload(e *models.Entry) ([]byte, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to encode entry %d: %w", e.ID, err)
	}
	return b, nil
}

func unmarshalPayload(b []byte) (*models.Entry, error) {
	var e models.Entry
	if err := json.Unmarshal(b, &e); err != nil {
		return nil, fmt.Errorf("corrupt cached entry: %w", err)
	}
	return &e, nil
}
