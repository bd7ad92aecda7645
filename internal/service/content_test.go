// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/orchardlite-go/internal/model"
	"github.com/olegiv/orchardlite-go/internal/store"
	"github.com/olegiv/orchardlite-go/internal/testutil"
)

func TestContentService_ListPublished_OnlyPublished(t *testing.T) {
	db := testutil.TestDB(t)
	svc := NewContentService(db, testutil.TestLogger())
	ctx := context.Background()
	clock := testutil.NewClock()
	author := testutil.CreateUser(t, db, "writer")

	testutil.CreateContent(t, db, author.ID, testutil.ContentFixture{Title: "Live", Slug: "live", At: clock.Next()})
	testutil.CreateContent(t, db, author.ID, testutil.ContentFixture{Title: "Draft", Slug: "draft", Status: model.StatusDraft, At: clock.Next()})

	page, err := svc.ListPublished(ctx, ListPublishedParams{ContentType: model.ContentTypeBlogPost, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, "live", page.Items[0].Slug)
	assert.Equal(t, "writer", page.Items[0].Author.UserName)
}

func TestContentService_ListPublished_HidesArchivedAndDeleted(t *testing.T) {
	db := testutil.TestDB(t)
	svc := NewContentService(db, testutil.TestLogger())
	ctx := context.Background()
	clock := testutil.NewClock()
	author := testutil.CreateUser(t, db, "writer")

	testutil.CreateContent(t, db, author.ID, testutil.ContentFixture{Title: "Old", Slug: "old", Status: model.StatusArchived, At: clock.Next()})
	gone := testutil.CreateContent(t, db, author.ID, testutil.ContentFixture{Title: "Gone", Slug: "gone", At: clock.Next()})
	testutil.SoftDeleteContent(t, db, gone.ID)

	page, err := svc.ListPublished(ctx, ListPublishedParams{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Zero(t, page.Total)

	_, err = svc.GetBySlug(ctx, "gone")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.GetBySlug(ctx, "old")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContentService_ListPublished_Ordering(t *testing.T) {
	db := testutil.TestDB(t)
	svc := NewContentService(db, testutil.TestLogger())
	ctx := context.Background()
	clock := testutil.NewClock()
	author := testutil.CreateUser(t, db, "writer")

	testutil.CreateContent(t, db, author.ID, testutil.ContentFixture{ContentType: model.ContentTypePage, Title: "Beta", Slug: "beta", At: clock.Next()})
	testutil.CreateContent(t, db, author.ID, testutil.ContentFixture{ContentType: model.ContentTypePage, Title: "Alpha", Slug: "alpha", At: clock.Next()})

	newest, err := svc.ListPublished(ctx, ListPublishedParams{ContentType: model.ContentTypePage, Limit: 10})
	require.NoError(t, err)
	require.Len(t, newest.Items, 2)
	assert.Equal(t, "alpha", newest.Items[0].Slug)

	byTitle, err := svc.ListPublished(ctx, ListPublishedParams{ContentType: model.ContentTypePage, Order: store.OrderTitleAsc, Limit: 10})
	require.NoError(t, err)
	require.Len(t, byTitle.Items, 2)
	assert.Equal(t, "Alpha", byTitle.Items[0].Title)
	assert.Equal(t, "Beta", byTitle.Items[1].Title)
}

func TestContentService_TwoBlogPostsOnePublished(t *testing.T) {
	db := testutil.TestDB(t)
	svc := NewContentService(db, testutil.TestLogger())
	ctx := context.Background()
	author := testutil.CreateUser(t, db, "writer")

	_, err := svc.Create(ctx, CreateContentInput{ContentType: model.ContentTypeBlogPost, Title: "First", AuthorID: author.ID, Status: model.StatusPublished})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateContentInput{ContentType: model.ContentTypeBlogPost, Title: "Second", AuthorID: author.ID})
	require.NoError(t, err)

	page, err := svc.ListPublished(ctx, ListPublishedParams{ContentType: model.ContentTypeBlogPost, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "first", page.Items[0].Slug)
}

func TestContentService_HelloWorldLifecycle(t *testing.T) {
	db := testutil.TestDB(t)
	svc := NewContentService(db, testutil.TestLogger())
	ctx := context.Background()
	author := testutil.CreateUser(t, db, "writer")

	draft, err := svc.Create(ctx, CreateContentInput{
		ContentType: model.ContentTypeBlogPost,
		Title:       "Hello World",
		Body:        "<p>hi</p>",
		AuthorID:    author.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "hello-world", draft.Slug)
	assert.Equal(t, model.StatusDraft, draft.Status)
	assert.False(t, draft.PublishedDate.Valid)

	_, err = svc.GetBySlug(ctx, "hello-world")
	require.ErrorIs(t, err, ErrNotFound)

	published, err := svc.SetStatus(ctx, draft.ID, model.StatusPublished)
	require.NoError(t, err)
	assert.True(t, published.PublishedDate.Valid)

	item, err := svc.GetBySlug(ctx, "hello-world")
	require.NoError(t, err)
	assert.Equal(t, draft.ID, item.ID)
	assert.Zero(t, item.ViewCount)

	require.NoError(t, svc.IncrementViewCount(ctx, item.ID))
	assert.Equal(t, int64(1), testutil.ViewCount(t, db, item.ID))
	assert.True(t, svc.RecordView(ctx, item.ID))
	assert.Equal(t, int64(2), testutil.ViewCount(t, db, item.ID))
	assert.False(t, svc.RecordView(ctx, item.ID+1000))
}

func TestContentService_SetStatus_KeepsPublishedDate(t *testing.T) {
	db := testutil.TestDB(t)
	svc := NewContentService(db, testutil.TestLogger())
	ctx := context.Background()
	author := testutil.CreateUser(t, db, "writer")
	at := testutil.NewClock().Next()

	item := testutil.CreateContent(t, db, author.ID, testutil.ContentFixture{Title: "Kept", Slug: "kept", At: at})

	archived, err := svc.SetStatus(ctx, item.ID, model.StatusArchived)
	require.NoError(t, err)
	assert.Equal(t, model.StatusArchived, archived.Status)

	again, err := svc.SetStatus(ctx, item.ID, model.StatusPublished)
	require.NoError(t, err)
	require.True(t, again.PublishedDate.Valid)
	assert.True(t, again.PublishedDate.Time.Equal(at))

	_, err = svc.SetStatus(ctx, item.ID, model.ContentStatus("Pending"))
	assert.True(t, IsValidation(err))

	_, err = svc.SetStatus(ctx, 9999, model.StatusPublished)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContentService_IncrementViewCount_Concurrent(t *testing.T) {
	db := testutil.TestDB(t)
	svc := NewContentService(db, testutil.TestLogger())
	ctx := context.Background()
	author := testutil.CreateUser(t, db, "writer")
	item := testutil.CreateContent(t, db, author.ID, testutil.ContentFixture{Title: "Busy", Slug: "busy"})

	const n = 40
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- svc.IncrementViewCount(ctx, item.ID)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int64(n), testutil.ViewCount(t, db, item.ID))
}

func TestContentService_IncrementViewCount_Missing(t *testing.T) {
	db := testutil.TestDB(t)
	svc := NewContentService(db, testutil.TestLogger())

	err := svc.IncrementViewCount(context.Background(), 12345)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContentService_GetBySlug_InvalidSlug(t *testing.T) {
	db := testutil.TestDB(t)
	svc := NewContentService(db, testutil.TestLogger())

	for _, slug := range []string{"", "has space", "semi;colon", "under_score"} {
		_, err := svc.GetBySlug(context.Background(), slug)
		assert.ErrorIs(t, err, ErrNotFound, slug)
	}
}

func TestContentService_Search(t *testing.T) {
	db := testutil.TestDB(t)
	svc := NewContentService(db, testutil.TestLogger())
	ctx := context.Background()
	clock := testutil.NewClock()
	author := testutil.CreateUser(t, db, "writer")

	testutil.CreateContent(t, db, author.ID, testutil.ContentFixture{Title: "Cloud Migration", Slug: "cloud", At: clock.Next()})
	testutil.CreateContent(t, db, author.ID, testutil.ContentFixture{Title: "Gardening", Slug: "garden", Summary: "no clouds here", At: clock.Next()})
	testutil.CreateContent(t, db, author.ID, testutil.ContentFixture{Title: "Cloud Draft", Slug: "cloud-draft", Status: model.StatusDraft, At: clock.Next()})
	testutil.CreateContent(t, db, author.ID, testutil.ContentFixture{Title: "100% uptime", Slug: "uptime", At: clock.Next()})

	page, err := svc.Search(ctx, "  CLOUD ", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "garden", page.Items[0].Slug)

	page, err = svc.Search(ctx, "%", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "uptime", page.Items[0].Slug)
}

func TestContentService_Search_BlankQuery(t *testing.T) {
	db := testutil.TestDB(t)
	svc := NewContentService(db, testutil.TestLogger())
	author := testutil.CreateUser(t, db, "writer")
	testutil.CreateContent(t, db, author.ID, testutil.ContentFixture{Title: "Anything", Slug: "anything"})

	// A closed database proves the blank query never reaches it.
	require.NoError(t, db.Close())

	for _, q := range []string{"", "   ", "\t\n"} {
		page, err := svc.Search(context.Background(), q, 10, 0)
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.Zero(t, page.Total)
	}
}

func TestContentService_ListAdmin_SecondPage(t *testing.T) {
	db := testutil.TestDB(t)
	svc := NewContentService(db, testutil.TestLogger())
	ctx := context.Background()
	clock := testutil.NewClock()
	author := testutil.CreateUser(t, db, "writer")

	// Items are modified in creation order, so the newest (index 44) is first.
	for i := range 45 {
		status := model.StatusPublished
		if i%3 == 0 {
			status = model.StatusDraft
		}
		testutil.CreateContent(t, db, author.ID, testutil.ContentFixture{
			Title:  fmt.Sprintf("Item %02d", i),
			Slug:   fmt.Sprintf("item-%02d", i),
			Status: status,
			At:     clock.Next(),
		})
	}

	page, err := svc.ListAdmin(ctx, AdminContentFilter{Paging: NewPaging(2, 20, 20)})
	require.NoError(t, err)
	assert.Equal(t, int64(45), page.Total)
	require.Len(t, page.Items, 20)
	assert.Equal(t, "item-24", page.Items[0].Slug)
	assert.Equal(t, "item-05", page.Items[19].Slug)

	drafts, err := svc.ListAdmin(ctx, AdminContentFilter{Status: "draft", Paging: NewPaging(1, 100, 20)})
	require.NoError(t, err)
	assert.Equal(t, int64(15), drafts.Total)
	for _, it := range drafts.Items {
		assert.Equal(t, model.StatusDraft, it.Status)
	}

	unknown, err := svc.ListAdmin(ctx, AdminContentFilter{Status: "bogus", Paging: NewPaging(1, 20, 20)})
	require.NoError(t, err)
	assert.Equal(t, int64(45), unknown.Total)

	pages, err := svc.ListAdmin(ctx, AdminContentFilter{ContentType: model.ContentTypePage, Paging: NewPaging(1, 20, 20)})
	require.NoError(t, err)
	assert.Zero(t, pages.Total)
}

func TestContentService_Related(t *testing.T) {
	db := testutil.TestDB(t)
	svc := NewContentService(db, testutil.TestLogger())
	ctx := context.Background()
	clock := testutil.NewClock()
	author := testutil.CreateUser(t, db, "writer")

	current := testutil.CreateContent(t, db, author.ID, testutil.ContentFixture{Title: "Current", Slug: "current", At: clock.Next()})
	for i := range 4 {
		testutil.CreateContent(t, db, author.ID, testutil.ContentFixture{Title: fmt.Sprintf("Other %d", i), Slug: fmt.Sprintf("other-%d", i), At: clock.Next()})
	}
	testutil.CreateContent(t, db, author.ID, testutil.ContentFixture{ContentType: model.ContentTypePage, Title: "Page", Slug: "page", At: clock.Next()})

	related, err := svc.Related(ctx, current, 3)
	require.NoError(t, err)
	require.Len(t, related, 3)
	assert.Equal(t, "other-3", related[0].Slug)
	for _, r := range related {
		assert.NotEqual(t, current.ID, r.ID)
		assert.Equal(t, model.ContentTypeBlogPost, r.ContentType)
	}
}

func TestContentService_CreateValidation(t *testing.T) {
	db := testutil.TestDB(t)
	svc := NewContentService(db, testutil.TestLogger())
	author := testutil.CreateUser(t, db, "writer")

	tests := []struct {
		name  string
		input CreateContentInput
	}{
		{"missing type", CreateContentInput{Title: "T", AuthorID: author.ID}},
		{"missing title", CreateContentInput{ContentType: model.ContentTypePage, Title: "  ", AuthorID: author.ID}},
		{"missing author", CreateContentInput{ContentType: model.ContentTypePage, Title: "T"}},
		{"bad slug", CreateContentInput{ContentType: model.ContentTypePage, Title: "T", Slug: "a b", AuthorID: author.ID}},
		{"bad status", CreateContentInput{ContentType: model.ContentTypePage, Title: "T", AuthorID: author.ID, Status: "Live"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.input)
			var ve *ValidationError
			assert.True(t, errors.As(err, &ve), "got %v", err)
		})
	}
}

func TestContentService_SoftDeleteAndParts(t *testing.T) {
	db := testutil.TestDB(t)
	svc := NewContentService(db, testutil.TestLogger())
	ctx := context.Background()
	author := testutil.CreateUser(t, db, "writer")
	item := testutil.CreateContent(t, db, author.ID, testutil.ContentFixture{Title: "Doc", Slug: "doc"})

	_, err := svc.AddPart(ctx, item.ID, model.PartTypeBody, model.PartNameFormat, model.FormatMarkdown)
	require.NoError(t, err)

	parts, err := svc.Parts(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, model.FormatMarkdown, model.BodyFormat(parts))

	types, err := svc.ContentTypes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{model.ContentTypeBlogPost}, types)

	require.NoError(t, svc.SoftDelete(ctx, item.ID))
	assert.ErrorIs(t, svc.SoftDelete(ctx, item.ID), ErrNotFound)

	_, err = svc.AddPart(ctx, item.ID, model.PartTypeBody, model.PartNameFormat, "html")
	assert.ErrorIs(t, err, ErrNotFound)

	types, err = svc.ContentTypes(ctx)
	require.NoError(t, err)
	assert.Empty(t, types)
}

func TestContentService_WritesAreAudited(t *testing.T) {
	db := testutil.TestDB(t)
	svc := NewContentService(db, testutil.TestLogger())
	author := testutil.CreateUser(t, db, "writer")
	ctx := WithActor(context.Background(), Actor{UserID: author.ID, IPAddress: "192.0.2.7", UserAgent: "test"})

	item, err := svc.Create(ctx, CreateContentInput{ContentType: model.ContentTypePage, Title: "Audited", AuthorID: author.ID})
	require.NoError(t, err)
	_, err = svc.SetStatus(ctx, item.ID, model.StatusPublished)
	require.NoError(t, err)

	log, err := NewAuditService(db, testutil.TestLogger()).List(ctx, NewPaging(1, 10, 10))
	require.NoError(t, err)
	require.Equal(t, int64(2), log.Total)
	assert.Equal(t, model.ActionStatusChange, log.Items[0].Action)
	assert.Equal(t, "Draft -> Published", log.Items[0].Details)
	assert.Equal(t, model.ActionCreate, log.Items[1].Action)
	assert.Equal(t, "192.0.2.7", log.Items[1].IPAddress)
	require.NotNil(t, log.Items[1].User)
	assert.Equal(t, "writer", log.Items[1].User.UserName)
}
