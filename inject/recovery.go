package inject

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	RecoveryFileDir  = "/opt/zeppelin/recovery"
	RecoveryFileName = "flink.recovery"
)

// RecoveryEntry formats one recovery line: interpreter group id and host:port, tab separated.
func RecoveryEntry(interpreterGroupID string, hostAndPort string) string {
	return interpreterGroupID + "\t" + hostAndPort
}

// ParseRecoveryData returns the non-empty lines of data.
func ParseRecoveryData(data string) []string {
	var result []string
	for _, line := range strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n") {
		if line != "" {
			result = append(result, line)
		}
	}
	return result
}

// ReadRecoveryData reads the recovery lines stored in dir/name.
func ReadRecoveryData(dir string, name string) ([]string, error) {
	b, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to read recovery data %w", err)
	}
	return ParseRecoveryData(string(b)), nil
}

// MergeRecoveryData appends entry to existing and drops duplicate lines, keeping the
// first occurrence of each.
func MergeRecoveryData(existing []string, entry string) []string {
	seen := make(map[string]bool, len(existing)+1)
	result := make([]string, 0, len(existing)+1)
	add := func(line string) {
		if !seen[line] {
			seen[line] = true
			result = append(result, line)
		}
	}
	for _, line := range existing {
		add(line)
	}
	add(entry)
	return result
}
