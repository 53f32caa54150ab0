package content

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadPhrases reads one typewriter phrase per line. Blank lines and lines
// starting with # are skipped.
func LoadPhrases(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only phrase list.
			_ = cerr
		}
	}()

	var phrases []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		phrases = append(phrases, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(phrases) == 0 {
		return nil, fmt.Errorf("phrase list is empty")
	}
	return phrases, nil
}
