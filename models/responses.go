package models

import (
	"errors"
	"sort"
)

const (
	// ResponsesFile is the default location of the persisted trigger map
	ResponsesFile = "responses.json"
)

var (
	// ErrInvalidTrigger is returned when a trigger is the empty string
	ErrInvalidTrigger = errors.New("trigger must not be empty")
)

// ResponseMap maps the exact text of a message to the text the bot replies with.
// Keys are case-sensitive and never empty.
type ResponseMap map[string]string

// DefaultResponses returns the set the responses file is seeded with on first use
func DefaultResponses() ResponseMap {
	return ResponseMap{
		"السلام عليكم": "وعليكم السلام",
		"مرحبا":        "مرحبا بك",
		"أهلا":         "أهلاً بك!",
		"كيف حالك؟":    "أنا بخير، شكراً لك!",
		"وداعاً":       "إلى اللقاء!",
		"Hello":        "Hello",
		"Welcome":      "Welcome",
		"How are you":  "Fine, thank you",
		"Goodbye":      "Goodbye",
	}
}

// Get looks up the response for $trigger, byte for byte
func (m ResponseMap) Get(trigger string) (response string, ok bool) {
	response, ok = m[trigger]
	return response, ok
}

// Put inserts or overwrites the response for $trigger
func (m ResponseMap) Put(trigger, response string) error {
	if trigger == "" {
		return ErrInvalidTrigger
	}

	m[trigger] = response
	return nil
}

// Delete removes $trigger, reports false if it was not there
func (m ResponseMap) Delete(trigger string) (removed bool) {
	if _, ok := m[trigger]; !ok {
		return false
	}

	delete(m, trigger)
	return true
}

// Triggers returns all triggers in sorted order
func (m ResponseMap) Triggers() []string {
	triggers := make([]string, 0, len(m))
	for trigger := range m {
		triggers = append(triggers, trigger)
	}
	sort.Strings(triggers)

	return triggers
}
