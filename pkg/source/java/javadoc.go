package java

import (
	"strings"

	"github.com/matzehuels/classgraph/pkg/model"
)

// ParseDoc splits a doc comment into its body and block tags. The comment
// delimiters and the leading asterisks of each line are removed. A block
// tag starts at a line whose first character is '@' and runs until the
// next tag; its continuation lines are trimmed and joined with "\n".
func ParseDoc(comment string) model.Doc {
	s := strings.TrimSpace(comment)
	s = strings.TrimPrefix(s, "/**")
	s = strings.TrimSuffix(s, "*/")

	var (
		doc  model.Doc
		body []string
		tag  *model.Tag
		text []string
	)
	flush := func() {
		if tag != nil {
			tag.Text = strings.TrimSpace(strings.Join(text, "\n"))
			doc.Tags = append(doc.Tags, *tag)
			tag, text = nil, nil
		}
	}
	for _, line := range strings.Split(s, "\n") {
		line = cleanLine(line)
		if strings.HasPrefix(line, "@") {
			flush()
			name, rest, _ := strings.Cut(line[1:], " ")
			if i := strings.IndexByte(name, '\t'); i >= 0 {
				name, rest = name[:i], name[i+1:]+" "+rest
			}
			tag = &model.Tag{Name: name}
			text = []string{strings.TrimSpace(rest)}
			continue
		}
		if tag != nil {
			text = append(text, strings.TrimSpace(line))
		} else {
			body = append(body, line)
		}
	}
	flush()
	doc.Body = strings.TrimSpace(strings.Join(body, "\n"))
	return doc
}

// cleanLine drops the indentation, the leading asterisks and one space.
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t\r")
	line = strings.TrimLeft(line, " \t")
	if strings.HasPrefix(line, "*") {
		line = strings.TrimLeft(line, "*")
		line = strings.TrimPrefix(line, " ")
	}
	return line
}
