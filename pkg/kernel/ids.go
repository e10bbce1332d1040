package kernel

import "strconv"

// ChatID is the conversation partition key. Every event, note and timezone
// preference belongs to exactly one chat.
type ChatID int64

func NewChatID(id int64) ChatID {
	return ChatID(id)
}

func (c ChatID) Int64() int64 {
	return int64(c)
}

func (c ChatID) String() string {
	return strconv.FormatInt(int64(c), 10)
}
