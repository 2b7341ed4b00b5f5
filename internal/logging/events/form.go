package events

import "github.com/atomicstack/search-popup/internal/logging"

type FormTracer struct{}

type CommandTracer struct{}

type CatalogTracer struct{}

type alertReason string

const (
	AlertReasonKey  alertReason = "key"
	AlertReasonQuit alertReason = "quit"
)

var (
	Form    = FormTracer{}
	Command = CommandTracer{}
	Catalog = CatalogTracer{}
)

func (FormTracer) Edit(length int) {
	logging.Trace("form.edit", map[string]interface{}{"length": length})
}

func (FormTracer) Focus(target string) {
	logging.Trace("form.focus", map[string]interface{}{"target": target})
}

func (FormTracer) Submit(id string, length int) {
	logging.Trace("form.submit", map[string]interface{}{"id": id, "length": length})
}

func (FormTracer) Reject(rejections int) {
	logging.Trace("form.reject", map[string]interface{}{"rejections": rejections})
}

func (FormTracer) DismissAlert(reason alertReason) {
	logging.Trace("form.alert.dismiss", map[string]interface{}{"reason": string(reason)})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}

func (CatalogTracer) Search(term string, matches []string) {
	logging.Trace("catalog.search", map[string]interface{}{"term": term, "matches": matches})
}

func (CatalogTracer) Reset(completed int) {
	logging.Trace("catalog.reset", map[string]interface{}{"completed": completed})
}
