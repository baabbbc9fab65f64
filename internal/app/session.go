package app

import (
	"fmt"
	"path/filepath"
	"time"
	"unicode"
)

const (
	maxTopicInPath = 30
	maxBatchInPath = 50
)

// A session pins down where the deck under construction is written. Decks
// land as flat files under the output directory; the timestamp id keeps
// repeated runs on the same topic from clobbering each other.
type session struct {
	id      string
	baseDir string
}

func newSession(baseDir string) *session {
	return &session{
		id:      time.Now().Format("20060102_150405"),
		baseDir: baseDir,
	}
}

func (s *session) deckPath(topic string) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("%s_%s.pptx", safeTopic(topic, maxTopicInPath), s.id))
}

func batchFileName(topic, ext string) string {
	return fmt.Sprintf("%s_presentation%s", safeTopic(topic, maxBatchInPath), ext)
}

// safeTopic rewrites a topic into a filename fragment: the topic is cut to
// max runes and every rune that is not a letter or digit becomes an
// underscore.
func safeTopic(topic string, max int) string {
	runes := []rune(topic)
	if len(runes) > max {
		runes = runes[:max]
	}
	out := make([]rune, len(runes))
	for i, r := range runes {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			out[i] = r
		} else {
			out[i] = '_'
		}
	}
	return string(out)
}
