package testutil

import "testing"

func TestStartTmuxServerLifecycle(t *testing.T) {
	socket := StartTmuxServer(t, "lifecycle")
	if err := TmuxCommand(socket, "has-session", "-t", "lifecycle").Run(); err != nil {
		t.Skipf("skipping: has-session failed: %v", err)
	}
}
