package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func sampleEntry() Entry {
	published := time.Date(2019, 1, 2, 3, 4, 5, 0, time.UTC)
	return Entry{
		ID:          42,
		Annotations: &Annotations{Annotation(`{"id":1,"text":"hi"}`)},
		Content:     strp("<p>body</p>"),
		CreatedAt:   time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC),
		IsArchived:  true,
		IsStarred:   true,
		PublishedAt: &published,
		ReadingTime: 7,
		Tags:        Tags{{ID: 1, Label: "go", Slug: "go"}},
		Title:       strp("A title"),
		UpdatedAt:   time.Date(2019, 1, 3, 0, 0, 0, 0, time.UTC),
		URL:         strp("https://example.org/a"),
		UserEmail:   "me@example.org",
		UserID:      3,
		UserName:    "me",
	}
}

func TestIdentifier_EntryYieldsOwnID(t *testing.T) {
	e := sampleEntry()
	e.ID = 42

	var id Identifier = e
	require.Equal(t, ID(42), id.EntryID())

	var ptr Identifier = &e
	require.Equal(t, ID(42), ptr.EntryID())

	other := Entry{ID: 42, UserName: "someone else", IsPublic: true}
	require.Equal(t, ID(42), Identifier(other).EntryID())
}

func TestIdentifier_IDIsItself(t *testing.T) {
	var id Identifier = ID(7)
	require.Equal(t, ID(7), id.EntryID())
}

func TestReconcile_CopiesEveryFieldAndInjectsID(t *testing.T) {
	src := sampleEntry()
	d := deletedEntry{
		Annotations:    src.Annotations,
		Content:        src.Content,
		CreatedAt:      src.CreatedAt,
		DomainName:     strp("example.org"),
		Headers:        strp("h"),
		HTTPStatus:     strp("200"),
		IsArchived:     src.IsArchived,
		IsPublic:       true,
		IsStarred:      src.IsStarred,
		Language:       strp("en"),
		Mimetype:       strp("text/html"),
		OriginURL:      strp("https://origin"),
		PreviewPicture: strp("https://img"),
		PublishedAt:    src.PublishedAt,
		PublishedBy:    strp("someone"),
		ReadingTime:    src.ReadingTime,
		StarredAt:      src.PublishedAt,
		Tags:           src.Tags,
		Title:          src.Title,
		UID:            strp("uid"),
		UpdatedAt:      src.UpdatedAt,
		URL:            src.URL,
		UserEmail:      src.UserEmail,
		UserID:         src.UserID,
		UserName:       src.UserName,
	}

	got := reconcile(d, 99)

	want := Entry{
		ID:             99,
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
	require.Equal(t, want, got)
}

func TestReconcile_KeepsAbsentFieldsAbsent(t *testing.T) {
	got := reconcile(deletedEntry{UserName: "u"}, 1)
	require.Nil(t, got.Content)
	require.Nil(t, got.Annotations)
	require.Nil(t, got.PublishedAt)
	require.Equal(t, ID(1), got.ID)
}

func TestUniqueTags_KeepsFirstOccurrence(t *testing.T) {
	in := Tags{
		{ID: 1, Label: "a"},
		{ID: 2, Label: "b"},
		{ID: 1, Label: "a-dup"},
	}
	got := uniqueTags(in)
	require.Equal(t, Tags{{ID: 1, Label: "a"}, {ID: 2, Label: "b"}}, got)
	require.Equal(t, []string{"a", "b"}, got.Labels())
}

func TestDisplayTitle_Fallbacks(t *testing.T) {
	require.Equal(t, "A title", sampleEntry().DisplayTitle())
	require.Equal(t, "https://x", Entry{Title: strp(""), URL: strp("https://x")}.DisplayTitle())
	require.Equal(t, "(untitled)", Entry{}.DisplayTitle())
}

func TestTags_HasLabel(t *testing.T) {
	tags := Tags{{ID: 1, Label: "Go Lang", Slug: "go-lang"}}
	require.True(t, tags.HasLabel("go lang"))
	require.True(t, tags.HasLabel("GO-LANG"))
	require.False(t, tags.HasLabel("rust"))
	require.False(t, Tags(nil).HasLabel("go"))
}
