package inbox

import "strings"

// ClassList accumulates class-name tokens into one class attribute value.
type ClassList struct {
	tokens []string
}

func Classes(tokens ...string) ClassList {
	var list ClassList
	return list.Add(tokens...)
}

func (l ClassList) Add(tokens ...string) ClassList {
	next := append([]string{}, l.tokens...)
	for _, token := range tokens {
		next = append(next, strings.Fields(token)...)
	}
	return ClassList{tokens: next}
}

func (l ClassList) If(cond bool, whenTrue, whenFalse string) ClassList {
	if cond {
		return l.Add(whenTrue)
	}
	return l.Add(whenFalse)
}

func (l ClassList) String() string {
	return strings.Join(l.tokens, " ")
}
