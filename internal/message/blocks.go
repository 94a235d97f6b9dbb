// Package message assembles structured Slack webhook payloads for each
// notification kind. Builders are pure: domain data in, payload out.
package message

// Payload is the JSON body posted to an incoming webhook. Text is the plain
// fallback shown by clients that cannot render blocks; the rich content lives
// in a single color-carrying attachment.
type Payload struct {
	Text        string       `json:"text"`
	Channel     string       `json:"channel,omitempty"`
	Username    string       `json:"username,omitempty"`
	IconEmoji   string       `json:"icon_emoji,omitempty"`
	Blocks      []Block      `json:"blocks,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Attachment wraps a block sequence with the status color rendered as the
// message's side marker.
type Attachment struct {
	Color  string  `json:"color"`
	Blocks []Block `json:"blocks"`
}

// Block is one typed visual segment: header, section, context, divider or
// actions. Elements is heterogeneous because Slack context blocks hold text
// objects while actions blocks hold buttons.
type Block struct {
	Type     string       `json:"type"`
	Text     *TextObject  `json:"text,omitempty"`
	Fields   []TextObject `json:"fields,omitempty"`
	Elements []any        `json:"elements,omitempty"`
}

// TextObject is Slack's text composition object. The same shape serves section
// text, section fields and context elements.
type TextObject struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

// Button is a navigational link element inside an actions block.
type Button struct {
	Type     string      `json:"type"`
	Text     *TextObject `json:"text"`
	URL      string      `json:"url"`
	Style    string      `json:"style,omitempty"`
	ActionID string      `json:"action_id,omitempty"`
}

func plainText(s string) *TextObject {
	return &TextObject{Type: "plain_text", Text: s, Emoji: true}
}

func mrkdwn(s string) TextObject {
	return TextObject{Type: "mrkdwn", Text: s}
}

func headerBlock(s string) Block {
	return Block{Type: "header", Text: plainText(s)}
}

func sectionText(s string) Block {
	t := mrkdwn(s)
	return Block{Type: "section", Text: &t}
}

func sectionFields(fields ...TextObject) Block {
	return Block{Type: "section", Fields: fields}
}

func contextBlock(lines ...string) Block {
	elements := make([]any, 0, len(lines))
	for _, line := range lines {
		elements = append(elements, mrkdwn(line))
	}
	return Block{Type: "context", Elements: elements}
}

func actionsBlock(buttons ...Button) Block {
	elements := make([]any, 0, len(buttons))
	for _, b := range buttons {
		elements = append(elements, b)
	}
	return Block{Type: "actions", Elements: elements}
}

func linkButton(label, url, style string) Button {
	return Button{Type: "button", Text: plainText(label), URL: url, Style: style}
}
