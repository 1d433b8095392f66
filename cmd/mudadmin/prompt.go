package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

type promptValidator func(string) (bool, string)

type promptConfig struct {
	tries     int
	validator promptValidator
}

type promptOption func(*promptConfig)

func withValidator(v promptValidator) promptOption {
	return func(cfg *promptConfig) {
		cfg.validator = v
	}
}

func withMaxTries(i int) promptOption {
	return func(cfg *promptConfig) {
		cfg.tries = i
	}
}

// prompter asks questions on a terminal. The reader is shared between
// prompts so buffered input is not lost.
type prompter struct {
	br  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{br: bufio.NewReader(in), out: out}
}

func (p *prompter) prompt(prompt string, opts ...promptOption) (string, error) {
	config := &promptConfig{}
	for _, opt := range opts {
		opt(config)
	}

	tries := 0
	for {
		if _, err := io.WriteString(p.out, prompt); err != nil {
			return "", err
		}

		line, err := p.br.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", fmt.Errorf("reading answer: %w", err)
		}
		input := strings.TrimRight(line, "\r\n")

		if config.validator != nil {
			ok, msg := config.validator(input)
			if !ok {
				_, _ = io.WriteString(p.out, msg)

				tries++
				if config.tries > 0 && config.tries == tries {
					return "", fmt.Errorf("too many tries")
				}

				continue
			}
		}

		return input, nil
	}
}

// validPassword accepts a single non-empty word.
func validPassword(s string) (bool, string) {
	if s == "" || strings.ContainsAny(s, " \t") {
		return false, "Password must be a single word.\n"
	}
	return true, ""
}

// newPassword asks for a password twice and returns it once both match.
func (p *prompter) newPassword() (string, error) {
	pw, err := p.prompt("New password: ", withValidator(validPassword), withMaxTries(3))
	if err != nil {
		return "", err
	}
	confirm, err := p.prompt("Confirm password: ")
	if err != nil {
		return "", err
	}
	if confirm != pw {
		return "", fmt.Errorf("passwords do not match")
	}
	return pw, nil
}
