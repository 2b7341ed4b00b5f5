package events

import (
	"time"

	"github.com/atomicstack/search-popup/internal/logging"
)

type CapabilityTracer struct{}

type HostTracer struct{}

var (
	Capability = CapabilityTracer{}
	Host       = HostTracer{}
)

func (CapabilityTracer) Acquire(name string, present bool) {
	logging.Trace("capability.acquire", map[string]interface{}{"name": name, "present": present})
}

func (CapabilityTracer) Query(name, result string, elapsed time.Duration) {
	logging.Trace("capability.query", map[string]interface{}{
		"name":    name,
		"result":  result,
		"elapsed": elapsed.String(),
	})
}

func (CapabilityTracer) QueryFailed(name string, err error) {
	logging.Trace("capability.query.error", map[string]interface{}{"name": name, "error": errString(err)})
}

func (CapabilityTracer) Command(name string, length int, elapsed time.Duration) {
	logging.Trace("capability.command", map[string]interface{}{
		"name":    name,
		"length":  length,
		"elapsed": elapsed.String(),
	})
}

func (CapabilityTracer) CommandFailed(name string, err error) {
	logging.Trace("capability.command.error", map[string]interface{}{"name": name, "error": errString(err)})
}

func (HostTracer) Register(name, source string) {
	logging.Trace("host.register", map[string]interface{}{"name": name, "source": source})
}

func (HostTracer) Skip(name, source string, err error) {
	logging.Trace("host.skip", map[string]interface{}{"name": name, "source": source, "error": errString(err)})
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
