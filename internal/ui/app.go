package ui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/quillhq/quill/internal/api"
	"github.com/quillhq/quill/internal/document"
	"github.com/quillhq/quill/internal/identity"
	"github.com/quillhq/quill/internal/outline"
	"github.com/quillhq/quill/internal/syncer"
	"github.com/quillhq/quill/internal/ui/components"
)

// DefaultDocumentTitle names the document minted on an empty account.
const DefaultDocumentTitle = "My API"

type appState int

const (
	stateLoading appState = iota
	stateReady
	stateFailed
)

// --- Messages ---

type documentLoadedMsg struct {
	doc document.Document
}

type loadFailedMsg struct {
	err error
}

type syncEventMsg struct {
	ev syncer.Event
	ok bool
}

// --- App Model ---

// App is the root bubbletea model: it loads (or bootstraps) the user's
// document, hands it to the editor, and keeps the status line in step
// with the sync engine.
type App struct {
	client *api.Client
	userID int64
	ids    *identity.Registry
	engine *syncer.Engine
	log    zerolog.Logger

	state   appState
	editor  EditorModel
	status  string
	loadErr error
	width   int
	height  int
}

// NewApp wires the app over an authenticated client.
func NewApp(client *api.Client, userID int64) App {
	ids := identity.NewRegistry()
	return App{
		client: client,
		userID: userID,
		ids:    ids,
		engine: syncer.New(client, ids),
		log:    zerolog.Nop(),
		state:  stateLoading,
		status: "loading…",
	}
}

// WithLogger routes app and engine logs through l.
func (a App) WithLogger(l zerolog.Logger) App {
	a.log = l
	a.engine.SetLogger(l)
	return a
}

// Engine exposes the sync engine, mainly so a shutdown path can flush it.
func (a App) Engine() *syncer.Engine { return a.engine }

func (a App) Init() tea.Cmd {
	return a.loadDocument
}

// loadDocument fetches the user's first document, creating an empty one on
// a fresh account.
func (a App) loadDocument() tea.Msg {
	ids, err := a.client.ListDocumentIDsForUser(a.userID)
	if err != nil {
		return loadFailedMsg{err}
	}

	var wire *api.Document
	if len(ids) == 0 {
		wire, err = a.client.CreateDocument(a.userID, DefaultDocumentTitle, "[]")
	} else {
		wire, err = a.client.ReadDocument(document.RealID(ids[0]))
	}
	if err != nil {
		return loadFailedMsg{err}
	}

	doc, err := documentFromWire(wire)
	if err != nil {
		return loadFailedMsg{err}
	}
	return documentLoadedMsg{doc: doc}
}

// documentFromWire turns a remote record into local state, running it
// through the normalizer so even an empty payload opens editable.
func documentFromWire(wire *api.Document) (document.Document, error) {
	endpoints, err := api.UnmarshalEndpoints(wire.SerializedEndpoints)
	if err != nil {
		return document.Document{}, fmt.Errorf("decoding endpoints: %w", err)
	}
	doc := document.Document{
		LocalID:   document.NewLocalID(),
		RealID:    document.RealID(wire.ID),
		Title:     wire.Title,
		Endpoints: endpoints,
		Created:   wire.Created,
		Updated:   wire.Updated,
	}
	return outline.ToDocument(outline.FromDocument(doc), doc), nil
}

// waitForSync blocks on the engine's event stream and feeds the next
// outcome into Update.
func waitForSync(ch <-chan syncer.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		return syncEventMsg{ev: ev, ok: ok}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.editor.width = msg.Width
		a.editor.height = msg.Height
		return a, nil

	case loadFailedMsg:
		a.state = stateFailed
		a.loadErr = msg.err
		a.log.Error().Err(msg.err).Msg("document load failed")
		return a, nil

	case documentLoadedMsg:
		a.state = stateReady
		a.status = "ready"
		a.engine.Start(msg.doc)
		engine := a.engine
		a.editor = NewEditorModel(msg.doc, func(d document.Document) {
			engine.Changed(d)
		})
		a.editor.width = a.width
		a.editor.height = a.height
		return a, waitForSync(a.engine.Events())

	case syncEventMsg:
		if !msg.ok {
			return a, nil
		}
		switch msg.ev.Kind {
		case syncer.EventSaved:
			a.status = "saved"
			a.editor.RefreshIDs(a.ids)
		case syncer.EventError:
			if errors.Is(msg.ev.Err, identity.ErrConflict) {
				a.status = "out of step with the server, please restart"
			} else {
				a.status = "save failed, changes kept locally"
			}
			a.log.Warn().Err(msg.ev.Err).Msg("sync failed")
		}
		return a, waitForSync(a.engine.Events())

	case tea.KeyMsg:
		if isQuit(msg) {
			a.engine.Flush()
			return a, tea.Quit
		}
		if a.state != stateReady {
			return a, nil
		}
		before := a.editor.Document()
		editor, cmd := a.editor.Update(msg)
		a.editor = editor
		if !document.DocumentsEqual(before, a.editor.Document()) {
			a.status = "saving…"
		}
		return a, cmd
	}
	return a, nil
}

func (a App) View() string {
	switch a.state {
	case stateLoading:
		return "\n" + components.Indent(MutedStyle.Render("loading your document…"), 2) + "\n"
	case stateFailed:
		msg := "The server could not be reached. Check that it is running and try again."
		if a.loadErr != nil {
			msg += "\n\n" + a.loadErr.Error()
		}
		box := components.ErrorBox("could not load your document", msg, a.width)
		return "\n" + components.Indent(box, 2) + "\n"
	}

	hints := []string{
		components.Hint("tab", "next"),
		components.Hint("enter", "new line"),
		components.Hint("ctrl+n", "new endpoint"),
		components.Hint("alt+←→", "indent"),
		components.Hint("ctrl+c", "quit"),
	}
	return "\n" + components.Indent(a.editor.View(), 2) + "\n" +
		components.StatusBar(MutedStyle.Render(a.status), hints, a.width)
}
