// Package decision normalizes free-text human decisions, as relayed by chat
// bots and webhook callbacks, into a canonical yes/no/needs-confirmation
// verdict. Normalization is a pure function so that every caller classifies
// the same text the same way.
package decision
