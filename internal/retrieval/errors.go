package retrieval

import (
	"encoding/json"
	"fmt"

	"wiki-quiz/internal/client"
	"wiki-quiz/internal/payload"
)

// Category classifies why a request class failed.
type Category string

const (
	CategoryInvalidInput      Category = "invalid_input"
	CategoryServerOffline     Category = "server_offline"
	CategoryGeneric           Category = "generic"
	CategoryBackend           Category = "backend"
	CategoryMalformedResponse Category = "malformed_response"
)

// User-facing messages.
const (
	MsgServerOffline = "Server is offline. Please try again later."

	MsgHistoryGeneric = "Failed to load history. Server might be offline."

	MsgDetailOffline   = "Failed to fetch quiz. Server may be offline."
	MsgDetailMalformed = "Failed to load quiz details."

	MsgGenerateGeneric   = "Failed to generate quiz. Please try again."
	MsgGenerateMalformed = "Failed to process quiz. Please try again."
)

// Failure is the recovered form of every error the orchestrator sees.
type Failure struct {
	Category Category
	Message  string
}

func (f *Failure) Error() string {
	return f.Message
}

func newFailure(c Category, msg string) *Failure {
	return &Failure{Category: c, Message: msg}
}

// detailOf returns the backend error marker of a successful response.
func detailOf(v any) (string, bool) {
	d, ok := payload.Lookup(v, "detail")
	if !ok || !payload.Truthy(d) {
		return "", false
	}
	if s, ok := d.(string); ok {
		return s, true
	}
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Sprint(d), true
	}
	return string(data), true
}

// transportMessages holds the per-flow wording for transport failures.
type transportMessages struct {
	offline string
	generic string
}

var (
	historyMessages  = transportMessages{offline: MsgHistoryGeneric, generic: MsgHistoryGeneric}
	detailMessages   = transportMessages{offline: MsgDetailOffline, generic: MsgDetailOffline}
	generateMessages = transportMessages{offline: MsgServerOffline, generic: MsgGenerateGeneric}
)

// classify turns a client error into a Failure. Any non-2xx answer is a
// transport failure, whatever its body says; only a successful response can
// carry a backend detail.
func classify(err error, msgs transportMessages) *Failure {
	if client.IsOffline(err) {
		return newFailure(CategoryServerOffline, msgs.offline)
	}
	return newFailure(CategoryGeneric, msgs.generic)
}
