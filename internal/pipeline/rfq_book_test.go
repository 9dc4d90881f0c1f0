package pipeline

import (
	"context"
	"testing"

	"procureflow-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkDeletedPersistsOnlyConfirmedRFQs(t *testing.T) {
	rfqStore := newFakeRFQStore(confirmedRFQ("RFQ-1"))
	book := NewRFQBook(rfqStore)
	book.Load(context.Background())

	failed := confirmedRFQ("RFQ-2")
	failed.SyncState = models.SyncFailed
	book.insert(failed)

	book.MarkDeleted(context.Background(), "RFQ-1")
	book.MarkDeleted(context.Background(), "RFQ-2")

	one, _ := book.Get("RFQ-1")
	two, _ := book.Get("RFQ-2")
	assert.True(t, one.IsDeleted)
	assert.True(t, two.IsDeleted)

	// The failed placeholder never made it to the store, so only the
	// confirmed record's delete is persisted.
	require.Len(t, rfqStore.updates["RFQ-1"], 1)
	assert.Empty(t, rfqStore.updates["RFQ-2"])
}

func TestSetQuoteDocURLIsNoOpOnDeleted(t *testing.T) {
	rfq := confirmedRFQ("RFQ-1")
	rfq.IsDeleted = true
	rfqStore := newFakeRFQStore(rfq)
	book := NewRFQBook(rfqStore)
	book.Load(context.Background())

	book.SetQuoteDocURL(context.Background(), "RFQ-1", "https://cdn.example.com/quote.pdf")

	got, _ := book.Get("RFQ-1")
	assert.Empty(t, got.QuoteDocURL)
	assert.Empty(t, rfqStore.updates["RFQ-1"])
}

func TestSetQuoteDocURL(t *testing.T) {
	rfqStore := newFakeRFQStore(confirmedRFQ("RFQ-1"))
	book := NewRFQBook(rfqStore)
	book.Load(context.Background())

	book.SetQuoteDocURL(context.Background(), "RFQ-1", "https://cdn.example.com/quote.pdf")

	got, _ := book.Get("RFQ-1")
	assert.Equal(t, "https://cdn.example.com/quote.pdf", got.QuoteDocURL)
	require.Len(t, rfqStore.updates["RFQ-1"], 1)
}
