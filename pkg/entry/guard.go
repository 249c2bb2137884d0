// Package entry implements the amount-entry rules of the transfer form: the
// per-keystroke input guard, the max-amount derivation, and the balance
// label resolution. Everything here is a pure function; hosts own all state
// and event wiring.
package entry

import (
	"strings"

	"github.com/Klingon-tech/klingsend/pkg/amount"
)

// EditKind distinguishes edits that add text from edits that remove it.
type EditKind string

const (
	EditInsert EditKind = "insert"
	EditDelete EditKind = "delete"
)

// EditProposal describes a single edit of the amount field before it is
// committed. For inserts, Current is the field text before the edit and
// Inserted is the fragment being added (one keystroke or a whole paste).
// For deletes, the host editing surface has already reduced the text and
// Current carries the post-delete value; Inserted is empty.
type EditProposal struct {
	Current  string
	Inserted string
	Kind     EditKind
}

// Proposed returns the candidate field text the proposal would commit.
func (p EditProposal) Proposed() string {
	if p.Kind == EditDelete {
		return p.Current
	}
	return p.Current + p.Inserted
}

// Allow decides whether the proposed edit may commit. Deletions are always
// allowed, whatever text they leave behind: the user must be able to shorten
// or clear the field even through states that look malformed mid-edit.
// Insertions must keep the field a well-formed partial decimal: digits, at
// most one fractional separator of either class, at most maxDecimals digits
// after it, and no duplicate leading zero.
//
// Allow is a pure decision. The caller suppresses the edit when it returns
// false; nothing is reported to the user (silent veto).
func Allow(p EditProposal, maxDecimals uint8) bool {
	if p.Kind == EditDelete {
		return true
	}

	s := p.Proposed()
	if !wellFormed(s) {
		return false
	}
	if amount.FractionLength(s) > int(maxDecimals) {
		return false
	}
	if strings.HasPrefix(s, "00") {
		return false
	}
	return true
}

// wellFormed reports whether s is in the language digits, at most one
// separator, digits. Empty is well-formed. One pass over the separator
// class; there are no per-separator branches, and since a second class
// member fails the count a mixed "." and "," string can never pass.
func wellFormed(s string) bool {
	seps := 0
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
		case amount.IsSeparator(s[i]):
			seps++
			if seps > 1 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
