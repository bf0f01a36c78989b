package skyblockextractor

import (
	"fmt"
	"os"
	"strings"
)

// LoadAPIKey reads the one-line API key file. A missing file is not an
// error; it means no key has been stored yet.
func LoadAPIKey(path string) (string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read API key file %q: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// SaveAPIKey persists the key for later runs. The file is the local secret
// store and must stay out of version control and distribution artifacts.
func SaveAPIKey(path, key string) error {
	if err := os.WriteFile(path, []byte(key+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to save API key file %q: %w", path, err)
	}
	return nil
}
