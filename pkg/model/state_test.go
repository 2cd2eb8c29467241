package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWantRoundTrip(t *testing.T) {
	wants := []StateWant{WantUnknown, WantInstall, WantDeinstall, WantPurge}
	for _, w := range wants {
		assert.Equal(t, w, ParseWant(w.String()))
	}
}

func TestWantLiterals(t *testing.T) {
	assert.Equal(t, "unknown", WantUnknown.String())
	assert.Equal(t, "install", WantInstall.String())
	assert.Equal(t, "deinstall", WantDeinstall.String())
	assert.Equal(t, "purge", WantPurge.String())
}

func TestParseWantUnknownDegrades(t *testing.T) {
	assert.Equal(t, WantUnknown, ParseWant("bogus"))
}

func TestStatusRoundTrip(t *testing.T) {
	statuses := []StateStatus{
		StatusNotInstalled, StatusUnpacked, StatusHalfConfigured, StatusInstalled,
		StatusHalfInstalled, StatusConfigFiles, StatusPostInstFailed, StatusRemovalFailed,
	}
	for _, st := range statuses {
		assert.Equal(t, st, ParseStatus(st.String()))
	}
}

func TestStatusLiterals(t *testing.T) {
	assert.Equal(t, "not-installed", StatusNotInstalled.String())
	assert.Equal(t, "half-configured", StatusHalfConfigured.String())
	assert.Equal(t, "installed", StatusInstalled.String())
	assert.Equal(t, "config-files", StatusConfigFiles.String())
	assert.Equal(t, "post-inst-failed", StatusPostInstFailed.String())
	assert.Equal(t, "removal-failed", StatusRemovalFailed.String())
}

func TestParseStatusUnknownDegrades(t *testing.T) {
	assert.Equal(t, StatusNotInstalled, ParseStatus("bogus"))
}

func TestFlagString(t *testing.T) {
	assert.Equal(t, "ok", FlagOK.String())
	assert.Equal(t, "hold", FlagHold.String())
	assert.Equal(t, "reinstreq,hold", (FlagReinstReq | FlagHold).String())
	assert.Equal(t, "hold,user", (FlagHold | FlagUser).String())
}

func TestFlagStringExcludesVolatile(t *testing.T) {
	assert.Equal(t, "ok", FlagFilelistChanged.String())
	assert.Equal(t, "hold", (FlagHold | FlagFilelistChanged).String())
}

func TestFlagRoundTrip(t *testing.T) {
	single := []StateFlag{
		FlagReinstReq, FlagHold, FlagReplace, FlagNoPrune, FlagPrefer, FlagObsolete, FlagUser,
	}

	assert.Equal(t, FlagOK, ParseFlag(FlagOK.String()))
	for _, f := range single {
		assert.Equal(t, f, ParseFlag(f.String()))
	}

	// Every combination of the non-volatile flags survives a round trip.
	for bits := StateFlag(0); bits < 1<<7; bits++ {
		f := FlagOK
		for i, single := range single {
			if bits&(1<<StateFlag(i)) != 0 {
				f |= single
			}
		}
		assert.Equal(t, f, ParseFlag(f.String()), "flags %b", uint(f))
	}
}

func TestParseFlagSkipsUnknown(t *testing.T) {
	assert.Equal(t, FlagHold, ParseFlag("hold,bogus"))
}
