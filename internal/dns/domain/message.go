package domain

// Message is a full DNS message: a header plus its four ordered sections.
// The header's section counts are not treated as a source of truth once a
// Message exists in memory; the wire codec synchronizes them from the
// slice lengths on encode (see wire.EncodeMessage).
type Message struct {
	Header     Header
	Questions  []Question
	Answers    []ResourceRecord
	Authority  []ResourceRecord
	Additional []ResourceRecord
}

// Question0 returns the message's first question and true, or a zero
// Question and false if the message carries none. The handler's decision
// pipeline only ever has one question to act on (spec: qdcount == 1 for a
// valid query), but iterates generally per spec §4.6.
func (m Message) Question0() (Question, bool) {
	if len(m.Questions) == 0 {
		return Question{}, false
	}
	return m.Questions[0], true
}
