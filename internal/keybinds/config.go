package keybinds

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/tidwall/jsonc"
)

// Config is the user's keybinding overrides: context -> action -> keys.
// Keys are comma separated. An action listed here loses its default keys
// in that context.
type Config struct {
	Version  string                       `json:"version"`
	Contexts map[string]map[string]string `json:"contexts"`
}

// ParseConfig reads a keybinds.jsonc document. Comments and trailing commas
// are allowed.
func ParseConfig(data []byte) (*Config, error) {
	var config Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &config); err != nil {
		return nil, fmt.Errorf("invalid keybinds.jsonc format: %w", err)
	}
	return &config, nil
}

// LoadConfig loads keybinding configuration from a file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// ApplyConfig applies user configuration to a registry.
// User bindings override default bindings.
func ApplyConfig(registry *Registry, config *Config) error {
	var errs []error

	for contextName, actions := range config.Contexts {
		context := Context(contextName)
		if !isKnownContext(context) {
			errs = append(errs, fmt.Errorf("unknown context %q", contextName))
			continue
		}

		for actionName, keyList := range actions {
			action := Action(actionName)
			if err := ValidateAction(actionName); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", contextName, err))
				continue
			}

			var keys []string
			for _, key := range splitKeys(keyList) {
				if err := ValidateKey(key); err != nil {
					errs = append(errs, fmt.Errorf("%s.%s: %w", contextName, actionName, err))
					continue
				}
				keys = append(keys, key)
			}

			registry.Unbind(context, action)
			registry.RegisterMultiple(context, keys, action)
		}
	}

	return errors.Join(errs...)
}

// LoadOrDefault loads user config if it exists, otherwise returns default registry
func LoadOrDefault(configPath string) (*Registry, error) {
	registry := NewDefaultRegistry()

	config, err := LoadConfig(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return registry, nil
	}
	if err != nil {
		return registry, fmt.Errorf("failed to load keybinds.jsonc: %w", err)
	}

	if err := ApplyConfig(registry, config); err != nil {
		return registry, fmt.Errorf("failed to apply keybinds config: %w", err)
	}

	return registry, nil
}

// ExportDefaults renders the default bindings in the config format
func ExportDefaults() *Config {
	r := NewDefaultRegistry()
	config := &Config{Version: "1.0", Contexts: make(map[string]map[string]string)}

	for _, context := range AllContexts {
		grouped := make(map[string][]string)
		for key, action := range r.bindings[context] {
			grouped[string(action)] = append(grouped[string(action)], key)
		}
		section := make(map[string]string, len(grouped))
		for action := range grouped {
			keys := r.keysFor(context, Action(action))
			for i, k := range keys {
				if k == " " {
					keys[i] = "space"
				}
			}
			section[action] = strings.Join(keys, ",")
		}
		config.Contexts[string(context)] = section
	}

	return config
}

// splitKeys splits "a, b,c" into keys. "space" names the space bar.
func splitKeys(list string) []string {
	var keys []string
	for _, k := range strings.Split(list, ",") {
		switch k = strings.TrimSpace(k); k {
		case "":
		case "space":
			keys = append(keys, " ")
		default:
			keys = append(keys, k)
		}
	}
	return keys
}

func isKnownContext(c Context) bool {
	for _, known := range AllContexts {
		if c == known {
			return true
		}
	}
	return false
}
