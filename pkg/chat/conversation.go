package chat

// Conversation is the ordered in-memory message list for one chat page.
// Messages are held by pointer so the streaming accumulator and the renderer
// see the same record; nothing is persisted client-side beyond it.
type Conversation struct {
	Messages []*Message
}

func NewConversation() Conversation {
	return Conversation{Messages: make([]*Message, 0)}
}

func AddMessage(conv Conversation, msg *Message) Conversation {
	messages := make([]*Message, len(conv.Messages)+1)
	copy(messages, conv.Messages)
	messages[len(conv.Messages)] = msg
	return Conversation{Messages: messages}
}

func GetMessages(conv Conversation) []*Message {
	result := make([]*Message, len(conv.Messages))
	copy(result, conv.Messages)
	return result
}

func GetMessageCount(conv Conversation) int {
	return len(conv.Messages)
}

func GetLastMessage(conv Conversation) (*Message, bool) {
	if len(conv.Messages) == 0 {
		return nil, false
	}
	return conv.Messages[len(conv.Messages)-1], true
}

func GetLastAssistantMessage(conv Conversation) (*Message, bool) {
	for i := len(conv.Messages) - 1; i >= 0; i-- {
		if conv.Messages[i].IsAssistant() {
			return conv.Messages[i], true
		}
	}
	return nil, false
}

func GetMessagesByRole(conv Conversation, role string) []*Message {
	var result []*Message
	for _, msg := range conv.Messages {
		if msg.Role == role {
			result = append(result, msg)
		}
	}
	return result
}

func IsEmpty(conv Conversation) bool {
	return len(conv.Messages) == 0
}
