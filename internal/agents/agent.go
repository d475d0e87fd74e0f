// Package agents holds the per-agent behavioural state machines: firms,
// households, banks, the central bank and the government. Agents are mutated
// only by their own Step, by the markets' narrow interfaces, and by the
// scheduler's tax and transfer debits.
package agents

import "github.com/google/uuid"

// orID returns id, or a fresh UUID when id is empty. Population builders
// assign stable sequential ids; the UUID path covers hand-constructed agents.
func orID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}
