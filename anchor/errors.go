package anchor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Patterns the RPC layer uses to report custom program errors. The exact
// shape depends on which node and which call path produced the failure.
var codePatterns = []*regexp.Regexp{
	regexp.MustCompile(`"Custom":\s*(\d+)`),
	regexp.MustCompile(`"Custom":\s*"(\d+)"`),
	regexp.MustCompile(`Custom:\s*(\d+)`),
	regexp.MustCompile(`error code:\s*(\d+)`),
	regexp.MustCompile(`Error Number:\s*(\d+)`),
}

var hexCodePattern = regexp.MustCompile(`custom program error: 0x([0-9a-fA-F]+)`)

// CodeFromError extracts a custom program error code from an RPC failure, or
// returns -1 when none is present.
func CodeFromError(err error) int {
	if err == nil {
		return -1
	}
	errStr := err.Error()

	for _, p := range codePatterns {
		if m := p.FindStringSubmatch(errStr); len(m) > 1 {
			if code, err := strconv.Atoi(m[1]); err == nil {
				return code
			}
		}
	}
	if m := hexCodePattern.FindStringSubmatch(errStr); len(m) > 1 {
		if code, err := strconv.ParseInt(m[1], 16, 64); err == nil {
			return int(code)
		}
	}
	return -1
}

// Describe flattens an RPC failure to a single user-facing message, mapping
// recognized custom codes through the given table. There is no deeper
// taxonomy: anything unrecognized is the truncated error string.
func Describe(err error, programErrors map[int]string) string {
	if err == nil {
		return ""
	}
	errStr := err.Error()

	if strings.Contains(errStr, "BlockhashNotFound") ||
		strings.Contains(errStr, "Blockhash not found") {
		return "Transaction expired: blockhash is no longer valid, rebuild and retry"
	}
	if code := CodeFromError(err); code >= 0 {
		if msg, ok := programErrors[code]; ok {
			return msg
		}
		return fmt.Sprintf("custom program error code %d", code)
	}
	if strings.Contains(errStr, "insufficient funds") {
		return "Insufficient SOL balance to pay for the transaction"
	}
	if len(errStr) > 300 {
		return errStr[:300] + "..."
	}
	return errStr
}

var programLogPattern = regexp.MustCompile(`Program log: ([^\n"\\]+)`)

// ProgramLogs pulls "Program log:" lines out of an RPC failure, deduplicated
// in order of appearance.
func ProgramLogs(err error) []string {
	if err == nil {
		return nil
	}
	var logs []string
	seen := make(map[string]bool)
	for _, m := range programLogPattern.FindAllStringSubmatch(err.Error(), -1) {
		line := strings.TrimSpace(m[1])
		if line == "" || seen[line] {
			continue
		}
		seen[line] = true
		logs = append(logs, line)
	}
	return logs
}
