// Package opportunity defines the lighter review-queue workflow: a trading
// opportunity awaits a single human yes/no relayed through a chat channel.
// There is no execution stage; the decision itself is the terminal event.
package opportunity
