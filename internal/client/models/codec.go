package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// timestampLayouts are tried in order. wallabag writes numeric offsets
// without a colon, which RFC 3339 parsing rejects.
var timestampLayouts = []string{
	"2006-01-02T15:04:05-0700",
	time.RFC3339Nano,
}

// wireEntry mirrors the service's entry object. Required scalars are
// pointers so that absence can be detected; integer booleans are kept raw
// and parsed per field.
type wireEntry struct {
	ID             *ID             `json:"id"`
	Annotations    *Annotations    `json:"annotations"`
	Content        *string         `json:"content"`
	CreatedAt      *string         `json:"created_at"`
	DomainName     *string         `json:"domain_name"`
	Headers        *string         `json:"headers"`
	HTTPStatus     *string         `json:"http_status"`
	IsArchived     json.RawMessage `json:"is_archived"`
	IsPublic       json.RawMessage `json:"is_public"`
	IsStarred      json.RawMessage `json:"is_starred"`
	Language       *string         `json:"language"`
	Mimetype       *string         `json:"mimetype"`
	OriginURL      *string         `json:"origin_url"`
	PreviewPicture *string         `json:"preview_picture"`
	PublishedAt    *string         `json:"published_at"`
	PublishedBy    *string         `json:"published_by"`
	ReadingTime    *uint32         `json:"reading_time"`
	StarredAt      *string         `json:"starred_at"`
	Tags           *Tags           `json:"tags"`
	Title          *string         `json:"title"`
	UID            *string         `json:"uid"`
	UpdatedAt      *string         `json:"updated_at"`
	URL            *string         `json:"url"`
	UserEmail      *string         `json:"user_email"`
	UserID         *ID             `json:"user_id"`
	UserName       *string         `json:"user_name"`
}

// DecodeEntry decodes one entry object as sent by the service.
func DecodeEntry(data []byte) (*Entry, error) {
	w, err := unmarshalWire(data)
	if err != nil {
		return nil, err
	}
	if w.ID == nil {
		return nil, missingOrInvalid("id", nil)
	}
	body, err := w.body()
	if err != nil {
		return nil, err
	}
	e := reconcile(body, *w.ID)
	return &e, nil
}

// DecodeDeletedEntry decodes the body of a delete response, which carries
// no id, and returns the full entry under the id the caller deleted. An id
// present in the body is ignored.
func DecodeDeletedEntry(data []byte, id Identifier) (*Entry, error) {
	w, err := unmarshalWire(data)
	if err != nil {
		return nil, err
	}
	body, err := w.body()
	if err != nil {
		return nil, err
	}
	e := reconcile(body, id.EntryID())
	return &e, nil
}

func unmarshalWire(data []byte) (*wireEntry, error) {
	var w wireEntry
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, jsonError(err, "entry")
	}
	return &w, nil
}

// body validates every field except id.
func (w *wireEntry) body() (deletedEntry, error) {
	var (
		d   deletedEntry
		err error
	)

	if d.CreatedAt, err = requiredTime("created_at", w.CreatedAt); err != nil {
		return d, err
	}
	if d.UpdatedAt, err = requiredTime("updated_at", w.UpdatedAt); err != nil {
		return d, err
	}
	if d.IsArchived, err = parseIntBool("is_archived", w.IsArchived); err != nil {
		return d, err
	}
	if d.IsPublic, err = parseIntBool("is_public", w.IsPublic); err != nil {
		return d, err
	}
	if d.IsStarred, err = parseIntBool("is_starred", w.IsStarred); err != nil {
		return d, err
	}
	if w.ReadingTime == nil {
		return d, missingOrInvalid("reading_time", nil)
	}
	if w.Tags == nil {
		return d, missingOrInvalid("tags", nil)
	}
	if w.UserEmail == nil {
		return d, missingOrInvalid("user_email", nil)
	}
	if w.UserID == nil {
		return d, missingOrInvalid("user_id", nil)
	}
	if w.UserName == nil {
		return d, missingOrInvalid("user_name", nil)
	}
	if d.PublishedAt, err = optionalTime("published_at", w.PublishedAt); err != nil {
		return d, err
	}
	if d.StarredAt, err = optionalTime("starred_at", w.StarredAt); err != nil {
		return d, err
	}

	d.ReadingTime = *w.ReadingTime
	d.Tags = uniqueTags(*w.Tags)
	d.UserEmail = *w.UserEmail
	d.UserID = *w.UserID
	d.UserName = *w.UserName

	d.Annotations = w.Annotations
	d.Content = w.Content
	d.DomainName = w.DomainName
	d.Headers = w.Headers
	d.HTTPStatus = w.HTTPStatus
	d.Language = w.Language
	d.Mimetype = w.Mimetype
	d.OriginURL = w.OriginURL
	d.PreviewPicture = w.PreviewPicture
	d.PublishedBy = w.PublishedBy
	d.Title = w.Title
	d.UID = w.UID
	d.URL = w.URL

	return d, nil
}

// parseIntBool accepts exactly the JSON integers 0 and 1.
func parseIntBool(field string, raw json.RawMessage) (bool, error) {
	v := bytes.TrimSpace(raw)
	switch string(v) {
	case "0":
		return false, nil
	case "1":
		return true, nil
	case "", "null":
		return false, missingOrInvalid(field, nil)
	default:
		return false, invalidBoolean(field, string(v))
	}
}

func requiredTime(field string, s *string) (time.Time, error) {
	if s == nil {
		return time.Time{}, missingOrInvalid(field, nil)
	}
	return parseTimestamp(field, *s)
}

func optionalTime(field string, s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := parseTimestamp(field, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseTimestamp(field, s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, missingOrInvalid(field, lastErr)
}

// jsonError converts encoding/json failures into a DecodeError naming the
// top-level field at fault, or doc when the document itself has the wrong
// shape.
func jsonError(err error, doc string) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field, _, _ := strings.Cut(typeErr.Field, ".")
		if field == "" {
			field = doc
		}
		return missingOrInvalid(field, err)
	}
	return &DecodeError{Kind: Malformed, Field: doc, Err: err}
}
