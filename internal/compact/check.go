package compact

import "github.com/llmctx/gitctx/internal/record"

// EncodeCheckRun renders one CI check status as a compact line.
func EncodeCheckRun(c record.CheckRun) string {
	return joinFields(
		"name:"+escapeValue(c.Name),
		"status:"+c.Status,
		"conclusion:"+c.Conclusion,
	)
}

// ParseCheckRun decodes one compact check-status line.
func ParseCheckRun(line string) record.CheckRun {
	fields := fieldMap(line)
	return record.CheckRun{
		Name:       unescapeValue(fields["name"]),
		Status:     fields["status"],
		Conclusion: fields["conclusion"],
	}
}

// EncodeCheckRuns encodes check statuses in order, one line each.
func EncodeCheckRuns(checks []record.CheckRun) string {
	lines := make([]string, 0, len(checks))
	for _, c := range checks {
		lines = append(lines, EncodeCheckRun(c))
	}
	return joinLines(lines)
}
