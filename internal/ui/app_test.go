package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillhq/quill/internal/api"
)

// fakeBackend serves just enough of the remote contract for the app's load
// and save paths.
type fakeBackend struct {
	mu       sync.Mutex
	docs     []map[string]any
	nextID   int64
	creates  int
	patches  int
	lastBody map[string]any
}

func (b *fakeBackend) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()

		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)

		switch {
		case strings.Contains(r.URL.Path, "get-all-for-user"):
			out, _ := json.Marshal(b.docs)
			w.Write(out)
		case strings.Contains(r.URL.Path, "get-by-id"):
			out, _ := json.Marshal(b.docs[0])
			w.Write(out)
		case strings.Contains(r.URL.Path, "apis/create"):
			b.creates++
			doc := map[string]any{
				"id":                   11,
				"title":                body["title"],
				"user_id":              body["user_id"],
				"serialized_endpoints": body["serialized_endpoints"],
			}
			b.docs = append(b.docs, doc)
			out, _ := json.Marshal(doc)
			w.Write(out)
		case strings.Contains(r.URL.Path, "apis/update"):
			b.patches++
			b.lastBody = body
			w.Write([]byte(`{}`))
		case strings.Contains(r.URL.Path, "endpoints/create"):
			b.nextID++
			out, _ := json.Marshal(map[string]any{
				"id": 100 + b.nextID, "title": body["title"],
				"method": body["method"], "location": body["location"],
			})
			w.Write(out)
		case strings.Contains(r.URL.Path, "fields/create"):
			b.nextID++
			out, _ := json.Marshal(map[string]any{
				"id": 100 + b.nextID, "value": body["value"],
				"location": body["location"],
			})
			w.Write(out)
		default:
			w.Write([]byte(`{}`))
		}
	}
}

func (b *fakeBackend) patchCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.patches
}

// storedBackend seeds the backend with one fully confirmed document, the
// way the store returns it after a previous session synced everything.
func storedBackend(t *testing.T) *fakeBackend {
	t.Helper()
	doc := editorDoc()
	doc.Endpoints[0].RealID = 21
	doc.Endpoints[0].Fields[0].RealID = 22
	serialized, err := api.MarshalEndpoints(doc.Endpoints)
	require.NoError(t, err)
	return &fakeBackend{docs: []map[string]any{{
		"id": 7, "title": "Pets API", "user_id": 1, "serialized_endpoints": serialized,
	}}}
}

func newTestApp(t *testing.T, backend *fakeBackend) App {
	t.Helper()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)
	return NewApp(api.NewClient(srv.URL, "test-token"), 1)
}

// loadReady runs the app's load path and feeds the result back through
// Update, leaving the app in its editing state.
func loadReady(t *testing.T, a App) App {
	t.Helper()
	msg := a.loadDocument()
	loaded, ok := msg.(documentLoadedMsg)
	require.True(t, ok, "load did not succeed: %#v", msg)
	model, _ := a.Update(loaded)
	return model.(App)
}

func TestAppBootstrapsEmptyAccount(t *testing.T) {
	backend := &fakeBackend{}
	a := newTestApp(t, backend)

	a = loadReady(t, a)

	assert.Equal(t, 1, backend.creates)
	assert.Equal(t, stateReady, a.state)
	doc := a.editor.Document()
	assert.Equal(t, DefaultDocumentTitle, doc.Title)
	require.NotEmpty(t, doc.Endpoints, "a fresh document opens with an editable row")
}

func TestAppLoadsExistingDocument(t *testing.T) {
	backend := storedBackend(t)
	a := newTestApp(t, backend)

	a = loadReady(t, a)

	assert.Equal(t, 0, backend.creates)
	doc := a.editor.Document()
	assert.Equal(t, "Pets API", doc.Title)
	require.Len(t, doc.Endpoints, 1)
	assert.Equal(t, "/pets", doc.Endpoints[0].Title)
}

func TestAppLoadFailureShowsErrorScreen(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	a := NewApp(api.NewClient(url, "test-token"), 1)

	msg := a.loadDocument()
	failed, ok := msg.(loadFailedMsg)
	require.True(t, ok)

	model, _ := a.Update(failed)
	a = model.(App)
	assert.Equal(t, stateFailed, a.state)
	assert.Contains(t, a.View(), "could not load")
}

func TestRapidEditsProduceOneWrite(t *testing.T) {
	backend := storedBackend(t)
	a := newTestApp(t, backend)
	a.engine.SetWindow(30 * time.Millisecond)

	a = loadReady(t, a)

	for _, r := range "!!!" {
		model, _ := a.Update(runeMsg(r))
		a = model.(App)
	}
	assert.Equal(t, "saving…", a.status)

	require.Eventually(t, func() bool {
		return backend.patchCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	// quiet after the coalesced write
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, backend.patchCount())

	ev := <-a.engine.Events()
	model, _ := a.Update(syncEventMsg{ev: ev, ok: true})
	a = model.(App)
	assert.Equal(t, "saved", a.status)
}

func TestEditsThatCancelOutWriteNothing(t *testing.T) {
	backend := storedBackend(t)
	a := newTestApp(t, backend)
	a.engine.SetWindow(20 * time.Millisecond)

	a = loadReady(t, a)

	model, _ := a.Update(runeMsg('!'))
	a = model.(App)
	model, _ = a.Update(keyMsg(tea.KeyBackspace))
	a = model.(App)

	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, 0, backend.patchCount())
}
