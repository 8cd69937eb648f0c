// Package journald adapts capnslog to log into the systemd journal via
// github.com/coreos/go-systemd/v22/journal, for services that run under
// systemd and want their logs unified with everything else journalctl
// collects.
package journald

import (
	"fmt"

	"github.com/coreos/go-systemd/v22/journal"

	"github.com/coreos/gzdyn/capnslog"
)

// JournalFormatter implements capnslog.Formatter by sending each entry to
// the systemd journal with the matching priority, falling back to the
// formatter given to NewJournalFormatter if the journal socket isn't
// reachable (e.g. not running under systemd) or journal.Send fails. With a
// nil fallback, such entries are dropped.
type JournalFormatter struct {
	fallback capnslog.Formatter
}

// NewJournalFormatter returns a JournalFormatter that writes through fb
// whenever the journal is unavailable.
func NewJournalFormatter(fb capnslog.Formatter) *JournalFormatter {
	return &JournalFormatter{fallback: fb}
}

func (j *JournalFormatter) Format(pkg string, level capnslog.LogLevel, depth int, entries ...capnslog.LogEntry) {
	ok, err := journal.Enabled()
	if err != nil || !ok {
		if j.fallback != nil {
			j.fallback.Format(pkg, level, depth+1, entries...)
		}
		return
	}

	msg := pkg
	for _, e := range entries {
		msg += " " + e.LogString()
	}
	vars := map[string]string{"SYSLOG_IDENTIFIER": pkg}
	if err := journal.Send(msg, toPriority(level), vars); err != nil && j.fallback != nil {
		j.fallback.Format(pkg, level, depth+1, append(entries, capnslog.BaseLogEntry(fmt.Sprintf("(journal.Send failed: %v)", err)))...)
	}
}

func toPriority(l capnslog.LogLevel) journal.Priority {
	switch l {
	case capnslog.CRITICAL:
		return journal.PriCrit
	case capnslog.ERROR:
		return journal.PriErr
	case capnslog.WARNING:
		return journal.PriWarning
	case capnslog.NOTICE:
		return journal.PriNotice
	case capnslog.INFO:
		return journal.PriInfo
	default: // DEBUG, TRACE
		return journal.PriDebug
	}
}
