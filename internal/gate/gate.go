// Package gate implements the password prompt guarding access to the tasks.
package gate

import (
	"crypto/subtle"
	"fmt"
	"io"
)

// DefaultAttempts is the number of tries before access is denied.
const DefaultAttempts = 3

// State is the gate state.
type State int

const (
	// Prompting means the gate is waiting for another attempt.
	Prompting State = iota

	// Granted is terminal: the secret was accepted.
	Granted

	// Denied is terminal: all attempts were used.
	Denied
)

func (s State) String() string {
	switch s {
	case Prompting:
		return "prompting"
	case Granted:
		return "granted"
	case Denied:
		return "denied"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Verifier checks a submitted secret.
type Verifier interface {
	Verify(secret string) bool
}

// VerifierFunc adapts a function to Verifier.
type VerifierFunc func(secret string) bool

// Verify implements Verifier.
func (f VerifierFunc) Verify(secret string) bool { return f(secret) }

// Password returns a Verifier that accepts exactly want.
// The comparison is plain text, in constant time.
func Password(want string) Verifier {
	return VerifierFunc(func(secret string) bool {
		return subtle.ConstantTimeCompare([]byte(secret), []byte(want)) == 1
	})
}

// Gate tracks attempts against a Verifier.
type Gate struct {
	verifier     Verifier
	attemptsLeft int
	state        State
}

// New creates a gate in Prompting state with the given number of attempts.
// attempts below 1 are treated as 1.
func New(v Verifier, attempts int) *Gate {
	if attempts < 1 {
		attempts = 1
	}
	return &Gate{verifier: v, attemptsLeft: attempts, state: Prompting}
}

// State returns the current state.
func (g *Gate) State() State { return g.state }

// AttemptsLeft returns the remaining attempts while Prompting, 0 otherwise.
func (g *Gate) AttemptsLeft() int {
	if g.state != Prompting {
		return 0
	}
	return g.attemptsLeft
}

// Submit checks secret and returns the new state.
// Terminal states ignore further input.
func (g *Gate) Submit(secret string) State {
	if g.state != Prompting {
		return g.state
	}
	if g.verifier.Verify(secret) {
		g.state = Granted
		return g.state
	}
	g.attemptsLeft--
	if g.attemptsLeft <= 0 {
		g.state = Denied
	}
	return g.state
}

// Deny ends the gate without granting access.
func (g *Gate) Deny() {
	if g.state == Prompting {
		g.state = Denied
	}
}

// SecretReader reads a secret after printing question.
type SecretReader interface {
	Secret(question string) (string, error)
}

// Run prompts until the gate reaches a terminal state and reports
// whether access was granted. A read error counts as denial.
func Run(g *Gate, in SecretReader, out io.Writer) bool {
	for g.State() == Prompting {
		secret, err := in.Secret(fmt.Sprintf("Enter password (%d attempts left): ", g.AttemptsLeft()))
		if err != nil {
			g.Deny()
			fmt.Fprintln(out)
			break
		}

		switch g.Submit(secret) {
		case Granted:
			fmt.Fprintln(out, "Access granted! Welcome to your todo list.")
		case Denied:
			fmt.Fprintln(out, "Too many wrong attempts. Goodbye!")
		default:
			fmt.Fprintln(out, "Wrong password! Try again.")
		}
	}
	return g.State() == Granted
}
