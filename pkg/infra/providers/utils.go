package providers

import "strings"

// FormatInstructions joins extra instructions into a single prompt block.
func FormatInstructions(instructions []string) string {
	if len(instructions) == 0 {
		return ""
	}
	var b strings.Builder
	for i, instruction := range instructions {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- ")
		b.WriteString(instruction)
	}
	return b.String()
}
