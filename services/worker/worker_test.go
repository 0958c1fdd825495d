package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayscan/hotelworker/internal/scraper"
)

type fakeSource struct {
	doc *scraper.Document
	err error
}

func (s *fakeSource) Run(ctx context.Context) (*scraper.Document, error) {
	return s.doc, s.err
}

type fakeSaver struct {
	saved *scraper.Document
	name  string
	err   error
}

func (s *fakeSaver) Save(doc *scraper.Document, filename string) (string, error) {
	s.saved = doc
	s.name = filename
	if s.err != nil {
		return "", s.err
	}
	return "data/" + filename, nil
}

type fakePublisher struct {
	messages [][]byte
	keys     []string
	trimmed  bool
	pubErr   error
}

func (p *fakePublisher) Publish(ctx context.Context, key string, message []byte) error {
	if p.pubErr != nil {
		return p.pubErr
	}
	p.keys = append(p.keys, key)
	p.messages = append(p.messages, message)
	return nil
}

func (p *fakePublisher) TrimStreams(ctx context.Context) error {
	p.trimmed = true
	return nil
}

func (p *fakePublisher) Close() error { return nil }

type fakeDB struct {
	saved *scraper.Document
	err   error
}

func (d *fakeDB) SaveDocument(doc *scraper.Document) error {
	d.saved = doc
	return d.err
}

func testDocument() *scraper.Document {
	return &scraper.Document{
		City: "Athens",
		Hotels: []scraper.HotelRecord{
			{Name: "Hotel Grande", DetailURL: "https://example.com/a"},
			{Name: "Seaside Inn", DetailURL: "https://example.com/b"},
		},
	}
}

func TestWorkerRunsAllSinks(t *testing.T) {
	source := &fakeSource{doc: testDocument()}
	saver := &fakeSaver{}
	pub := &fakePublisher{}
	db := &fakeDB{}

	w := NewWorker(source, saver, "hotel_data.json", pub, db)
	require.NoError(t, w.Run(context.Background()))

	require.NotNil(t, saver.saved)
	assert.Equal(t, "hotel_data.json", saver.name)
	assert.Len(t, pub.messages, 2)
	assert.Equal(t, []string{"hotel", "hotel"}, pub.keys)
	assert.True(t, pub.trimmed)
	require.NotNil(t, db.saved)
	assert.Equal(t, "Athens", db.saved.City)
}

func TestWorkerOptionalSinksSkipped(t *testing.T) {
	source := &fakeSource{doc: testDocument()}
	saver := &fakeSaver{}

	w := NewWorker(source, saver, "out.json", nil, nil)
	assert.NoError(t, w.Run(context.Background()))
	assert.NotNil(t, saver.saved)
}

func TestWorkerSinkFailureDoesNotAbort(t *testing.T) {
	source := &fakeSource{doc: testDocument()}
	saver := &fakeSaver{err: errors.New("disk full")}
	pub := &fakePublisher{}
	db := &fakeDB{}

	w := NewWorker(source, saver, "out.json", pub, db)
	require.NoError(t, w.Run(context.Background()))

	// Save failed but the later sinks still ran
	assert.Len(t, pub.messages, 2)
	assert.NotNil(t, db.saved)
}

func TestWorkerPublishFailurePerHotel(t *testing.T) {
	source := &fakeSource{doc: testDocument()}
	pub := &fakePublisher{pubErr: errors.New("redis down")}

	w := NewWorker(source, &fakeSaver{}, "out.json", pub, nil)
	require.NoError(t, w.Run(context.Background()))
	assert.Empty(t, pub.messages)
	assert.True(t, pub.trimmed)
}

func TestWorkerNoDocumentIsFatal(t *testing.T) {
	source := &fakeSource{doc: nil, err: errors.New("session lost")}

	w := NewWorker(source, &fakeSaver{}, "out.json", nil, nil)
	assert.Error(t, w.Run(context.Background()))
}

func TestWorkerPartialDocumentStillFlushed(t *testing.T) {
	source := &fakeSource{doc: testDocument(), err: context.Canceled}
	saver := &fakeSaver{}

	w := NewWorker(source, saver, "out.json", nil, nil)
	assert.ErrorIs(t, w.Run(context.Background()), context.Canceled)
	assert.NotNil(t, saver.saved)
}
