package sqltext

import (
	"strings"
)

// SplitOnce splits text at every whole-word occurrence of keyword. candidate
// is the last segment; prefix is the preceding segments concatenated with
// the keyword occurrences discarded.
func SplitOnce(keyword, text string) (prefix, candidate string) {
	segments := wordPattern(keyword).Split(text, -1)
	last := len(segments) - 1
	return strings.Join(segments[:last], ""), segments[last]
}

// SplitBalanced peels the clause introduced by the last real occurrence of
// keyword off the end of text. Occurrences whose trailing text is unbalanced
// are false splits (the keyword sits inside a literal or sub-expression), so
// the split point moves back one occurrence at a time until the clause text
// balances. prefix is the text before the chosen occurrence, unmodified.
func SplitBalanced(keyword, text string) (prefix, clause string, err error) {
	prefix, clause, _, err = splitBalanced(keyword, text)
	return prefix, clause, err
}

// splitBalanced is SplitBalanced that also reports how many false splits
// were re-absorbed into the clause.
func splitBalanced(keyword, text string) (prefix, clause string, retries int, err error) {
	locs := wordPattern(keyword).FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		if !IsBalanced(text) {
			return "", "", 0, errParse("split "+keyword, "could not parse SQL string")
		}
		return "", text, 0, nil
	}

	i := len(locs) - 1
	clause = text[locs[i][1]:]
	for !IsBalanced(clause) {
		i--
		if i < 0 {
			return "", "", retries, errParse("split "+keyword, "could not parse SQL string")
		}
		retries++
		clause = text[locs[i][1]:]
	}
	return text[:locs[i][0]], clause, retries, nil
}
