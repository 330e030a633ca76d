package document

import (
	"time"

	"github.com/google/uuid"
)

// --- Identifiers ---

// RealID is the identifier assigned by the remote store once a record is
// confirmed. The zero value means the record has not been confirmed yet.
type RealID int64

// Unknown is the RealID of a record the store has not confirmed.
const Unknown RealID = 0

// Known reports whether the store has assigned this id.
func (id RealID) Known() bool { return id != Unknown }

// NewLocalID mints a client-side identifier, unique for the session and
// stable for the record's whole local lifetime.
func NewLocalID() string {
	return uuid.NewString()
}

// --- Method ---

// Method is the HTTP verb attached to an endpoint.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPatch  Method = "PATCH"
	MethodDelete Method = "DELETE"
)

// Methods lists every verb in cycling order.
var Methods = []Method{MethodGet, MethodPost, MethodPatch, MethodDelete}

// NextMethod returns the verb after m in cycling order.
func NextMethod(m Method) Method {
	for i, v := range Methods {
		if v == m {
			return Methods[(i+1)%len(Methods)]
		}
	}
	return MethodGet
}

// --- Records ---

// Field is one free-text line under an endpoint.
type Field struct {
	LocalID  string
	RealID   RealID
	Value    string
	Indent   int
	Location int
	Created  time.Time
	Updated  time.Time
}

// NewField creates an unconfirmed field record.
func NewField(value string, indent int) Field {
	now := time.Now()
	return Field{
		LocalID: NewLocalID(),
		RealID:  Unknown,
		Value:   value,
		Indent:  indent,
		Created: now,
		Updated: now,
	}
}

// At returns a copy of the field placed at the given sibling location.
func (f Field) At(location int) Field {
	f.Location = location
	return f
}

// Endpoint is one API operation: a verb, a title line, and its fields.
type Endpoint struct {
	LocalID  string
	RealID   RealID
	Title    string
	Method   Method
	Fields   []Field
	Location int
	Created  time.Time
	Updated  time.Time
}

// NewEndpoint creates an unconfirmed endpoint record.
func NewEndpoint(title string, method Method) Endpoint {
	now := time.Now()
	return Endpoint{
		LocalID: NewLocalID(),
		RealID:  Unknown,
		Title:   title,
		Method:  method,
		Created: now,
		Updated: now,
	}
}

// At returns a copy of the endpoint placed at the given sibling location.
func (e Endpoint) At(location int) Endpoint {
	e.Location = location
	return e
}

// Document is the root record: a title and its ordered endpoints.
type Document struct {
	LocalID   string
	RealID    RealID
	Title     string
	Endpoints []Endpoint
	Created   time.Time
	Updated   time.Time
}

// NewDocument creates an unconfirmed document record.
func NewDocument(title string) Document {
	now := time.Now()
	return Document{
		LocalID: NewLocalID(),
		RealID:  Unknown,
		Title:   title,
		Created: now,
		Updated: now,
	}
}

// --- Content equality ---

// FieldsEqual reports whether two fields carry the same content. Location,
// timestamps, and identity are deliberately excluded: this is the equality
// the sync engine uses to decide whether anything needs persisting.
func FieldsEqual(a, b Field) bool {
	return a.Value == b.Value && a.Indent == b.Indent
}

// EndpointsEqual reports whether two endpoints carry the same content,
// comparing their field lists pairwise by position.
func EndpointsEqual(a, b Endpoint) bool {
	if a.Title != b.Title || a.Method != b.Method {
		return false
	}
	if len(a.Fields) != len(b.Fields) {
		return false
	}
	for i := range a.Fields {
		if !FieldsEqual(a.Fields[i], b.Fields[i]) {
			return false
		}
	}
	return true
}

// EndpointListsEqual compares two endpoint lists pairwise by position.
func EndpointListsEqual(a, b []Endpoint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !EndpointsEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// DocumentsEqual reports whether two documents carry the same content.
func DocumentsEqual(a, b Document) bool {
	return a.Title == b.Title && EndpointListsEqual(a.Endpoints, b.Endpoints)
}
