// Package docs embeds the pf documentation read with `pf topic`.
//
// readme.md is the entry point: it lists every topic as a "* name: summary"
// line, and each topic is the markdown file of that name.
package docs

import (
	"embed"
	"fmt"
	"regexp"
	"strings"
)

//go:embed *.md
var files embed.FS

// readme is the topic listing the others.
const readme = "readme"

// Topic is an entry of the readme index.
type Topic struct {
	Name    string
	Summary string
}

var indexLine = regexp.MustCompile(`(?m)^\*\s+([^:\s]+):\s*(.*)$`)

// Index returns the topics listed in the readme, in their order.
func Index() ([]Topic, error) {
	content, err := files.ReadFile(readme + ".md")
	if err != nil {
		return nil, fmt.Errorf("cannot read the topic index: %w", err)
	}
	var topics []Topic
	for _, m := range indexLine.FindAllStringSubmatch(string(content), -1) {
		topics = append(topics, Topic{Name: m[1], Summary: strings.TrimSpace(m[2])})
	}
	return topics, nil
}

// GetTopic returns the markdown of topic. "*" is every indexed topic.
func GetTopic(topic string) (string, error) {
	if topic == "*" {
		return GetTopics(topic)
	}
	content, err := files.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found, see 'pf topic' for the list", topic)
	}
	return string(content), nil
}

// GetTopics returns the markdown of topics, one after the other. "*" expands
// to every indexed topic.
func GetTopics(topics ...string) (string, error) {
	var b strings.Builder
	for _, topic := range topics {
		names := []string{topic}
		if topic == "*" {
			all, err := GetAllTopics()
			if err != nil {
				return "", err
			}
			names = all
		}
		for _, name := range names {
			content, err := GetTopic(name)
			if err != nil {
				return "", err
			}
			b.WriteString(content)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// GetAllTopics returns the names of the indexed topics.
func GetAllTopics() ([]string, error) {
	index, err := Index()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(index))
	for i, t := range index {
		names[i] = t.Name
	}
	return names, nil
}
