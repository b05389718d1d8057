// Package models defines the client-side entity model of the wallabag API:
// entries, tags, annotations, and the decoders that build them from the
// service's JSON payloads.
package models

import (
	"encoding/json"
	"strings"
	"time"
)

// ID is the server-assigned numeric handle of an entry, tag or user.
type ID int64

// Identifier is anything that can name an entry. Both ID and Entry satisfy
// it, so client calls that only need identity accept either.
type Identifier interface {
	EntryID() ID
}

// EntryID returns id itself.
func (id ID) EntryID() ID { return id }

// Entries is an ordered list of entries as returned by listing endpoints.
type Entries []Entry

// Annotation is an opaque annotation document, kept byte-for-byte as the
// server sent it.
type Annotation = json.RawMessage

// Annotations is the ordered annotation list of an entry.
type Annotations []Annotation

// Tag is a label attached to entries.
type Tag struct {
	ID    ID     `json:"id"`
	Label string `json:"label"`
	Slug  string `json:"slug"`
}

// Tags is a set of tags, unique by Tag.ID.
type Tags []Tag

// Has reports whether a tag with the given id is present.
func (t Tags) Has(id ID) bool {
	for _, tag := range t {
		if tag.ID == id {
			return true
		}
	}
	return false
}

// HasLabel reports whether any tag has the given label or slug, ignoring
// case.
func (t Tags) HasLabel(label string) bool {
	for _, tag := range t {
		if strings.EqualFold(tag.Label, label) || strings.EqualFold(tag.Slug, label) {
			return true
		}
	}
	return false
}

// Labels returns the tag labels in stored order.
func (t Tags) Labels() []string {
	labels := make([]string, 0, len(t))
	for _, tag := range t {
		labels = append(labels, tag.Label)
	}
	return labels
}

// uniqueTags drops tags whose id was already seen, keeping first occurrences.
func uniqueTags(in Tags) Tags {
	out := make(Tags, 0, len(in))
	for _, tag := range in {
		if out.Has(tag.ID) {
			continue
		}
		out = append(out, tag)
	}
	return out
}

// Entry is a saved article with all its tags and annotations.
//
// Pointer fields are optional: nil means the server did not send the field
// (or sent null), which is distinct from a present empty value.
//
// The JSON tags describe the canonical form used by the local cache. The
// service's wire form (integer booleans, lenient timestamps) is only ever
// read through DecodeEntry.
type Entry struct {
	ID             ID           `json:"id"`
	Annotations    *Annotations `json:"annotations,omitempty"`
	Content        *string      `json:"content,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	DomainName     *string      `json:"domain_name,omitempty"`
	Headers        *string      `json:"headers,omitempty"`
	HTTPStatus     *string      `json:"http_status,omitempty"`
	IsArchived     bool         `json:"is_archived"`
	IsPublic       bool         `json:"is_public"`
	IsStarred      bool         `json:"is_starred"`
	Language       *string      `json:"language,omitempty"`
	Mimetype       *string      `json:"mimetype,omitempty"`
	OriginURL      *string      `json:"origin_url,omitempty"`
	PreviewPicture *string      `json:"preview_picture,omitempty"`
	PublishedAt    *time.Time   `json:"published_at,omitempty"`
	PublishedBy    *string      `json:"published_by,omitempty"`

	// ReadingTime is the server's estimate in minutes.
	ReadingTime uint32 `json:"reading_time"`

	StarredAt *time.Time `json:"starred_at,omitempty"`
	Tags      Tags       `json:"tags"`
	Title     *string    `json:"title,omitempty"`
	UID       *string    `json:"uid,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
	URL       *string    `json:"url,omitempty"`
	UserEmail string     `json:"user_email"`
	UserID    ID         `json:"user_id"`
	UserName  string     `json:"user_name"`
}

// EntryID returns the entry's own identifier.
func (e Entry) EntryID() ID { return e.ID }

// DisplayTitle returns the title, falling back to the URL and then to a
// placeholder.
func (e Entry) DisplayTitle() string {
	if e.Title != nil && *e.Title != "" {
		return *e.Title
	}
	if e.URL != nil && *e.URL != "" {
		return *e.URL
	}
	return "(untitled)"
}

// deletedEntry is the body of a delete response: an entry without its id.
// It only lives between decoding and reconcile.
type deletedEntry struct {
	Annotations    *Annotations
	Content        *string
	CreatedAt      time.Time
	DomainName     *string
	Headers        *string
	HTTPStatus     *string
	IsArchived     bool
	IsPublic       bool
	IsStarred      bool
	Language       *string
	Mimetype       *string
	OriginURL      *string
	PreviewPicture *string
	PublishedAt    *time.Time
	PublishedBy    *string
	ReadingTime    uint32
	StarredAt      *time.Time
	Tags           Tags
	Title          *string
	UID            *string
	UpdatedAt      time.Time
	URL            *string
	UserEmail      string
	UserID         ID
	UserName       string
}

// reconcile rebuilds a full Entry from a deleted-entry body and the id the
// caller deleted.
func reconcile(d deletedEntry, id ID) Entry {
	return Entry{
		ID:             id,
		Annotations:    d.Annotations,
		Content:        d.Content,
		CreatedAt:      d.CreatedAt,
		DomainName:     d.DomainName,
		Headers:        d.Headers,
		HTTPStatus:     d.HTTPStatus,
		IsArchived:     d.IsArchived,
		IsPublic:       d.IsPublic,
		IsStarred:      d.IsStarred,
		Language:       d.Language,
		Mimetype:       d.Mimetype,
		OriginURL:      d.OriginURL,
		PreviewPicture: d.PreviewPicture,
		PublishedAt:    d.PublishedAt,
		PublishedBy:    d.PublishedBy,
		ReadingTime:    d.ReadingTime,
		StarredAt:      d.StarredAt,
		Tags:           d.Tags,
		Title:          d.Title,
		UID:            d.UID,
		UpdatedAt:      d.UpdatedAt,
		URL:            d.URL,
		UserEmail:      d.UserEmail,
		UserID:         d.UserID,
		UserName:       d.UserName,
	}
}
