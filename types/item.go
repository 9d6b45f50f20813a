package types

type Action string

const (
	PushItem    Action = "Push"
	PopItem     Action = "Pop"
	FrontItem   Action = "Front"
	BackItem    Action = "Back"
	SizeItem    Action = "Size"
	DumpItem    Action = "Dump"
	ListItem    Action = "List"
	DropItem    Action = "Drop"
	CopyItem    Action = "Copy"
	MoveItem    Action = "Move"
	CompareItem Action = "Compare"
)

// Item is one queue command as carried in a broker message body.
type Item struct {
	ID     string `json:"id,omitempty"`
	Action Action `json:"action"`
	Queue  string `json:"queue,omitempty"`
	Value  string `json:"value,omitempty"`
	Target string `json:"target,omitempty"`
}

// NeedsTarget reports whether the action works on a pair of queues.
func (a Action) NeedsTarget() bool {
	switch a {
	case CopyItem, MoveItem, CompareItem:
		return true
	}
	return false
}
