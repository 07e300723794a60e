package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hyperengineering/valyu"
)

// outputAsJSON writes v as indented JSON.
func outputAsJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitCode reports err on the right stream and maps it to an exit status.
//
//	nil                → 0
//	ErrSetupRequired   → setup-required envelope on stdout, 0
//	*valyu.UsageError  → usage text on stderr, 1
//	anything else      → error envelope on stderr, 1
func (a *app) exitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, valyu.ErrSetupRequired) {
		_ = outputAsJSON(a.stdout, valyu.NewSetupRequiredResult())
		return 0
	}

	var usage *valyu.UsageError
	if errors.As(err, &usage) {
		if usage.Usage != "" {
			fmt.Fprintln(a.stderr, a.scrubSensitiveData(usage.Usage))
		}
		if usage.Help {
			printUsage(a.stderr)
		}
		return 1
	}

	_ = outputAsJSON(a.stderr, valyu.ErrorResult{
		Success: false,
		Error:   a.scrubSensitiveData(err.Error()),
	})
	return 1
}

// scrubSensitiveData removes known API keys from msg.
// The library never puts the key in errors, but API bodies are echoed verbatim.
func (a *app) scrubSensitiveData(msg string) string {
	for _, secret := range a.secrets {
		if secret != "" {
			msg = strings.ReplaceAll(msg, secret, "[REDACTED]")
		}
	}
	return msg
}
