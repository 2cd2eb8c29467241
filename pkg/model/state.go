package model

import (
	"strings"

	"github.com/pika-pm/pika/internal/logger"
)

// StateWant is the administrator's intent for a package.
type StateWant int

// Administrator intents.
const (
	WantUnknown StateWant = iota
	WantInstall
	WantDeinstall
	WantPurge
)

// StateFlag is a bitset of operational flags. FlagFilelistChanged is
// volatile and excluded from persisted serialization.
type StateFlag uint

// Operational flags.
const (
	FlagOK         StateFlag = 0
	FlagReinstReq  StateFlag = 1 << iota
	FlagHold
	FlagReplace
	FlagNoPrune
	FlagPrefer
	FlagObsolete
	FlagUser
	FlagFilelistChanged
)

// NonvolatileFlags masks out the transient flags before serialization.
const NonvolatileFlags = FlagReinstReq | FlagHold | FlagReplace | FlagNoPrune |
	FlagPrefer | FlagObsolete | FlagUser

// StateStatus is the installation progress of a package: a forward-only
// state machine driven by the install/remove orchestrator.
type StateStatus int

// Installation states. StatusPostInstFailed and StatusRemovalFailed are
// error-absorbing states entered only on script failure.
const (
	StatusNotInstalled StateStatus = iota
	StatusUnpacked
	StatusHalfConfigured
	StatusInstalled
	StatusHalfInstalled
	StatusConfigFiles
	StatusPostInstFailed
	StatusRemovalFailed
)

// The literal strings below are a persisted, externally-read format and
// must not change.

var wantNames = []struct {
	value StateWant
	str   string
}{
	{WantUnknown, "unknown"},
	{WantInstall, "install"},
	{WantDeinstall, "deinstall"},
	{WantPurge, "purge"},
}

var flagNames = []struct {
	value StateFlag
	str   string
}{
	{FlagOK, "ok"},
	{FlagReinstReq, "reinstreq"},
	{FlagHold, "hold"},
	{FlagReplace, "replace"},
	{FlagNoPrune, "noprune"},
	{FlagPrefer, "prefer"},
	{FlagObsolete, "obsolete"},
	{FlagUser, "user"},
}

var statusNames = []struct {
	value StateStatus
	str   string
}{
	{StatusNotInstalled, "not-installed"},
	{StatusUnpacked, "unpacked"},
	{StatusHalfConfigured, "half-configured"},
	{StatusInstalled, "installed"},
	{StatusHalfInstalled, "half-installed"},
	{StatusConfigFiles, "config-files"},
	{StatusPostInstFailed, "post-inst-failed"},
	{StatusRemovalFailed, "removal-failed"},
}

// String returns the persisted literal for an intent.
func (w StateWant) String() string {
	for _, m := range wantNames {
		if m.value == w {
			return m.str
		}
	}
	logger.Errorf("Internal error: state_want=%d", int(w))
	return "<STATE_WANT_UNKNOWN>"
}

// ParseWant maps a persisted literal back to an intent. Unknown input is
// logged and degrades to WantUnknown.
func ParseWant(s string) StateWant {
	for _, m := range wantNames {
		if m.str == s {
			return m.value
		}
	}
	logger.Errorf("Internal error: state_want=%s", s)
	return WantUnknown
}

// String renders the non-volatile flags as a comma-joined list, or the
// literal "ok" when none are set.
func (f StateFlag) String() string {
	f &= NonvolatileFlags

	if f == 0 {
		return "ok"
	}

	var names []string
	for _, m := range flagNames {
		if m.value != 0 && f&m.value != 0 {
			names = append(names, m.str)
		}
	}
	return strings.Join(names, ",")
}

// ParseFlag maps a comma-joined flag list back to the bitset. Unknown
// names are logged and skipped.
func ParseFlag(s string) StateFlag {
	if s == "ok" {
		return FlagOK
	}

	f := FlagOK
	for _, name := range strings.Split(s, ",") {
		found := false
		for _, m := range flagNames {
			if m.str == name {
				f |= m.value
				found = true
				break
			}
		}
		if !found {
			logger.Errorf("Internal error: state_flag=%s", name)
		}
	}
	return f
}

// String returns the persisted literal for an installation state.
func (st StateStatus) String() string {
	for _, m := range statusNames {
		if m.value == st {
			return m.str
		}
	}
	logger.Errorf("Internal error: state_status=%d", int(st))
	return "<STATE_STATUS_UNKNOWN>"
}

// ParseStatus maps a persisted literal back to an installation state.
// Unknown input is logged and degrades to StatusNotInstalled.
func ParseStatus(s string) StateStatus {
	for _, m := range statusNames {
		if m.str == s {
			return m.value
		}
	}
	logger.Errorf("Internal error: state_status=%s", s)
	return StatusNotInstalled
}
