// Package chat answers free-text questions from a fixed, ordered rule table.
//
// Matching is a case-insensitive substring test. Rules are tried in order and
// the first match wins; when nothing matches the fallback answer is used.
// There is no memory beyond the transcript kept by a Conversation.
package chat

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var rulesYAML []byte

// Rule pairs a keyword set with a canned response.
type Rule struct {
	Keywords []string `yaml:"keywords"`
	Response string   `yaml:"response"`
}

// Matches reports whether any keyword occurs in the lowercased question.
func (r Rule) Matches(question string) bool {
	for _, k := range r.Keywords {
		if k != "" && strings.Contains(question, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

type ruleFile struct {
	Fallback string `yaml:"fallback"`
	Rules    []Rule `yaml:"rules"`
}

// Responder holds the rule table.
type Responder struct {
	rules    []Rule
	fallback string
}

// NewResponder builds a responder from explicit rules.
func NewResponder(rules []Rule, fallback string) *Responder {
	return &Responder{rules: rules, fallback: fallback}
}

// Default returns the responder backed by the embedded rule table.
func Default() (*Responder, error) {
	return Parse(rulesYAML)
}

// Parse decodes a YAML rule table.
func Parse(data []byte) (*Responder, error) {
	var f ruleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing chat rules: %w", err)
	}
	if strings.TrimSpace(f.Fallback) == "" {
		return nil, errors.New("chat rules: fallback response is required")
	}
	for i, r := range f.Rules {
		if len(r.Keywords) == 0 || strings.TrimSpace(r.Response) == "" {
			return nil, fmt.Errorf("chat rule %d: needs keywords and a response", i+1)
		}
	}
	return NewResponder(f.Rules, f.Fallback), nil
}

// Respond returns the first matching rule's response, or the fallback.
func (r *Responder) Respond(question string) string {
	q := strings.ToLower(strings.TrimSpace(question))
	if q == "" {
		return r.fallback
	}
	for _, rule := range r.rules {
		if rule.Matches(q) {
			return rule.Response
		}
	}
	return r.fallback
}

// Role marks who produced a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one line of the transcript.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Conversation keeps the visible transcript for one chat widget.
type Conversation struct {
	responder  *Responder
	transcript []Turn
}

// NewConversation starts an empty transcript.
func NewConversation(r *Responder) *Conversation {
	return &Conversation{responder: r}
}

// Ask records the question and its answer, and returns the answer.
func (c *Conversation) Ask(question string) string {
	answer := c.responder.Respond(question)
	c.transcript = append(c.transcript,
		Turn{Role: RoleUser, Text: question},
		Turn{Role: RoleAssistant, Text: answer},
	)
	return answer
}

// Transcript returns a copy of every turn so far.
func (c *Conversation) Transcript() []Turn {
	out := make([]Turn, len(c.transcript))
	copy(out, c.transcript)
	return out
}
